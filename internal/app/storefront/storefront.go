package storefront

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/course-storefront/internal/config"
	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/payment/intent"
	"github.com/magabrotheeeer/course-storefront/internal/http/middlewarectx"
	"github.com/magabrotheeeer/course-storefront/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-storefront/internal/lib/sl"
	"github.com/magabrotheeeer/course-storefront/internal/paymentprovider"
	"github.com/magabrotheeeer/course-storefront/internal/ratelimit"
	authservice "github.com/magabrotheeeer/course-storefront/internal/services/auth"
	newsletterservice "github.com/magabrotheeeer/course-storefront/internal/services/newsletter"
	"github.com/magabrotheeeer/course-storefront/internal/storage/memory"
)

type notifier interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// App — HTTP-сервер витрины и внешние подключения, которые нужно закрыть при остановке.
type App struct {
	server *http.Server
	logger *slog.Logger
	amqp   *amqp.Connection
	redis  *redis.Client
}

// New собирает хранилище, сервисы и маршруты по конфигу.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.storefront.New"

	app := &App{logger: logger}

	store := memory.New()
	if cfg.Seed {
		if err := store.Seed(ctx); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		logger.Info("catalog seeded")
	}

	var events notifier = rabbitmq.Noop{}
	if cfg.RabbitMQ.URL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.Retries, cfg.Delay)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ch, err := rabbitmq.SetupChannel(conn, cfg.Exchange)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqp = conn
		events = rabbitmq.NewPublisher(ch, cfg.Exchange)
		logger.Info("publishing events", slog.String("exchange", cfg.Exchange))
	}

	var limiter middlewarectx.Limiter = ratelimit.NewMemory(cfg.RPS, cfg.Burst)
	if cfg.UseRedis {
		db, err := ratelimit.NewRedisClient(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.redis = db
		limiter = ratelimit.NewRedis(db, "auth", cfg.Burst, cfg.Window)
	}

	// интерфейс остаётся nil без ключа, иначе обработчик не увидит отсутствия провайдера
	var provider intent.ProviderClient
	if cfg.SecretKey != "" {
		provider = paymentprovider.NewClient(cfg.SecretKey, cfg.APIURL, cfg.Payment.Timeout)
	} else {
		logger.Warn("payment provider is not configured")
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, Deps{
		Store:          store,
		Auth:           authservice.NewService(store, events, logger),
		Newsletter:     newsletterservice.NewService(store, events, logger),
		Limiter:        limiter,
		Provider:       provider,
		Currency:       cfg.Currency,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
	})

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return app, nil
}

// Run обслуживает запросы до отмены ctx, затем останавливает сервер.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.amqp != nil {
		if err := a.amqp.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis connection", sl.Err(err))
		}
	}
}
