// Package auth содержит бизнес-логику регистрации и входа пользователей.
// Сессий и токенов нет: вход только проверяет учётные данные.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/magabrotheeeer/course-storefront/internal/lib/password"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/models"
	"github.com/magabrotheeeer/course-storefront/internal/storage"
)

// RoutingKeySignedUp — ключ события о регистрации пользователя.
const RoutingKeySignedUp = "user.signed_up"

// ErrInvalidCredentials возвращается при неизвестном имени пользователя
// и при неверном пароле одинаково.
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя или storage.ErrNotFound.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// GetUserByEmail возвращает пользователя или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// CreateUser атомарно проверяет уникальность и сохраняет пользователя.
	CreateUser(ctx context.Context, user models.NewUser) (*models.User, error)
}

// Notifier публикует доменные события.
type Notifier interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// SignedUpEvent публикуется после успешной регистрации.
type SignedUpEvent struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Service отвечает за регистрацию и проверку учётных данных.
type Service struct {
	users    UserRepository
	notifier Notifier
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		notifier: notifier,
		log:      log,
	}
}

// хэш для сравнения, когда пользователь не найден: время ответа не зависит
// от существования имени.
var dummyHash = sync.OnceValue(func() string {
	h, err := password.GetHash("storefront-dummy-password")
	if err != nil {
		panic(err)
	}
	return h
})

// Signup регистрирует пользователя. Пароль хэшируется до сохранения.
// Занятые имя или email дают storage.ErrUsernameExists или storage.ErrEmailExists.
func (s *Service) Signup(ctx context.Context, username, email, rawPassword string) (*models.User, error) {
	const op = "services.auth.Signup"

	// быстрый отказ без хэширования; окончательная проверка внутри CreateUser
	if err := s.checkFree(ctx, username, email); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.NewUser{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user signed up", slog.Int("id", user.ID), slog.String("username", user.Username))

	event := SignedUpEvent{UserID: user.ID, Username: user.Username, Email: user.Email}
	if err := s.notifier.Publish(ctx, RoutingKeySignedUp, event); err != nil {
		s.log.Warn("failed to publish signup event", sl.Err(err))
	}

	return user, nil
}

func (s *Service) checkFree(ctx context.Context, username, email string) error {
	_, err := s.users.GetUserByUsername(ctx, username)
	switch {
	case err == nil:
		return storage.ErrUsernameExists
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}

	_, err = s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return storage.ErrEmailExists
	case !errors.Is(err, storage.ErrNotFound):
		return err
	}
	return nil
}

// Login проверяет имя и пароль и возвращает пользователя.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, storage.ErrNotFound) {
		_ = password.CompareHash(dummyHash(), rawPassword)
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}
	return user, nil
}
