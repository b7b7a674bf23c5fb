// Package roomlock serialises booking attempts for one room across API
// instances. It narrows contention only; the transactional conflict
// re-check in the booking service remains the source of truth.
package roomlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var ErrLocked = errors.New("room is locked by another request")

type Locker interface {
	Acquire(ctx context.Context, roomID int64) (release func(), err error)
}

// NopLocker is used when no redis is configured.
type NopLocker struct{}

func (NopLocker) Acquire(context.Context, int64) (func(), error) {
	return func() {}, nil
}

const releaseScript = `if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`

type RedisLocker struct {
	client   redis.Cmdable
	ttl      time.Duration
	log      logrus.FieldLogger
	newToken func() string
}

func NewRedisLocker(client redis.Cmdable, ttl time.Duration, log logrus.FieldLogger) *RedisLocker {
	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		log:      log,
		newToken: uuid.NewString,
	}
}

func Key(roomID int64) string {
	return fmt.Sprintf("lock:room:%d", roomID)
}

func (l *RedisLocker) Acquire(ctx context.Context, roomID int64) (func(), error) {
	key := Key(roomID)
	token := l.newToken()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", key, err)
	}
	if !ok {
		return nil, ErrLocked
	}

	return func() {
		// The request context may already be done; release on a fresh one.
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := l.client.Eval(rctx, releaseScript, []string{key}, token).Err(); err != nil {
			l.log.WithError(err).WithField("key", key).Warn("room lock release failed")
		}
	}, nil
}
