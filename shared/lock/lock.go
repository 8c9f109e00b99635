package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	keyPrefix     = "lock:"
	roomPrefix    = "booking:lock:"
	retryInterval = 25 * time.Millisecond
)

var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key. Release must be called once the critical section ends.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// RoomKey is the key every writer of a room's status locks on.
func RoomKey(roomID string) string {
	return roomPrefix + roomID
}

// New returns a Redis lock when client is set, otherwise a process-local one.
func New(client *redis.Client, cfg *config.Config, otl otel.Otel) Locker {
	ttl := time.Duration(cfg.Booking.LockTTLSeconds) * time.Second
	wait := time.Duration(cfg.Booking.LockWaitSeconds) * time.Second

	if client == nil {
		return NewLocal(wait, otl)
	}

	return NewRedis(client, ttl, wait, otl)
}

type slot struct {
	ch   chan struct{}
	refs int
}

// localLocker keeps a slot only while some caller holds or waits on its key.
type localLocker struct {
	mu    sync.Mutex
	slots map[string]*slot
	wait  time.Duration
	otel  otel.Otel
}

func NewLocal(wait time.Duration, otl otel.Otel) Locker {
	return &localLocker{
		slots: map[string]*slot{},
		wait:  wait,
		otel:  otl,
	}
}

func (l *localLocker) join(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.slots[key] = s
	}

	s.refs++

	return s
}

func (l *localLocker) leave(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.slots, key)
	}
}

func (l *localLocker) Acquire(ctx context.Context, key string) (func(), error) {
	_, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".local.Acquire")
	defer scope.End()

	scope.SetAttribute("lock.key", key)

	s := l.join(key)

	timer := time.NewTimer(l.wait)
	defer timer.Stop()

	select {
	case s.ch <- struct{}{}:
		var once sync.Once

		return func() {
			once.Do(func() {
				<-s.ch
				l.leave(key, s)
			})
		}, nil
	case <-ctx.Done():
		l.leave(key, s)

		return nil, fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
	case <-timer.C:
		l.leave(key, s)

		return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
	}
}

var releaseScript = redis.NewScript(`
	-- KEYS[1] = lock key
	-- ARGV[1] = owner token
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	end
	return 0
`)

type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	otel   otel.Otel
}

func NewRedis(client *redis.Client, ttl, wait time.Duration, otl otel.Otel) Locker {
	return &redisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		otel:   otl,
	}
}

func (l *redisLocker) Acquire(ctx context.Context, key string) (release func(), err error) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelLockScopeName, constant.OtelLockScopeName+".redis.Acquire")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	redisKey := keyPrefix + key
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	scope.SetAttribute("lock.key", redisKey)

	for {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
		}

		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}

		if ok {
			break
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s", ErrNotAcquired, key)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", ErrNotAcquired, ctx.Err())
		case <-time.After(retryInterval):
		}
	}

	var once sync.Once

	return func() {
		once.Do(func() {
			err := releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{redisKey}, token).Err()
			if err != nil {
				log.Error().Err(err).Str("key", redisKey).Msg("failed to release lock")
			}
		})
	}, nil
}
