package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/course-storefront/internal/config"
)

// Redis — ограничитель с фиксированным окном на INCR/EXPIRE. Счётчики общие
// для всех экземпляров сервиса, подключённых к одному Redis.
type Redis struct {
	Db     *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// NewRedisClient подключается к Redis и проверяет соединение.
func NewRedisClient(ctx context.Context, cfg config.RedisConnection) (*redis.Client, error) {
	const op = "ratelimit.NewRedisClient"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return db, nil
}

// NewRedis создаёт ограничитель: не более limit запросов за window на ключ.
func NewRedis(db *redis.Client, prefix string, limit int, window time.Duration) *Redis {
	return &Redis{
		Db:     db,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow увеличивает счётчик ключа в текущем окне. INCR и TTL уходят одним
// конвейером; срок жизни выставляется, если у ключа его нет, так что
// неудавшийся EXPIRE чинится следующим запросом.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	const op = "ratelimit.Redis.Allow"
	k := fmt.Sprintf("rate_limit:%s:%s", r.prefix, key)

	var (
		incr *redis.IntCmd
		ttl  *redis.DurationCmd
	)
	_, err := r.Db.Pipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, k)
		ttl = p.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	// -1: ключ без срока жизни
	if ttl.Val() < 0 {
		if err := r.Db.Expire(ctx, k, r.window).Err(); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return incr.Val() <= r.limit, nil
}
