// Package ratelimit реализует ограничители частоты запросов по ключу
// (обычно IP клиента): в памяти процесса и в Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Memory — ограничитель token bucket на ключ, живущий в памяти процесса.
// Ключи, не обращавшиеся дольше idle, удаляются при очередном вызове,
// но не чаще раза в sweepEvery.
type Memory struct {
	mu         sync.Mutex
	limit      rate.Limit
	burst      int
	idle       time.Duration
	sweepEvery time.Duration
	lastSweep  time.Time
	visitors   map[string]*visitor
	now        func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewMemory создаёт ограничитель: rps запросов в секунду с запасом burst.
func NewMemory(rps float64, burst int) *Memory {
	return &Memory{
		limit:      rate.Limit(rps),
		burst:      burst,
		idle:       10 * time.Minute,
		sweepEvery: time.Minute,
		visitors:   make(map[string]*visitor),
		now:        time.Now,
	}
}

// Allow расходует один токен ключа key.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= m.sweepEvery {
		m.evict(now)
		m.lastSweep = now
	}

	v, ok := m.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(m.limit, m.burst)}
		m.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1), nil
}

func (m *Memory) evict(now time.Time) {
	for key, v := range m.visitors {
		if now.Sub(v.lastSeen) > m.idle {
			delete(m.visitors, key)
		}
	}
}
