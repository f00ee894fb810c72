// Package newsletter оформляет подписки на рассылку и сообщает о них брокеру.
package newsletter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
)

// RoutingKeySubscribed — ключ события о новой подписке.
const RoutingKeySubscribed = "newsletter.subscribed"

// Repository сохраняет подписки.
type Repository interface {
	SubscribeNewsletter(ctx context.Context, in models.NewNewsletter) (*models.Newsletter, error)
}

// Notifier публикует доменные события.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Service — сервис подписок на рассылку.
type Service struct {
	repo     Repository
	notifier Notifier
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
	}
}

// Subscribe сохраняет подписку и публикует событие. Ошибка публикации
// только логируется.
func (s *Service) Subscribe(ctx context.Context, email string) (*models.Newsletter, error) {
	const op = "services.newsletter.Subscribe"

	n, err := s.repo.SubscribeNewsletter(ctx, models.NewNewsletter{Email: email})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("newsletter subscription created", slog.Int("id", n.ID))

	if err := s.notifier.Publish(ctx, RoutingKeySubscribed, n); err != nil {
		s.log.Warn("failed to publish newsletter event", sl.Err(err))
	}
	return n, nil
}
