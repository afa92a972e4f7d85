package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	throttleWindow = time.Minute
	throttleLimit  = 10
)

// LoginThrottle caps login attempts per client within a sliding window,
// backed by a Redis counter with expiry. Key format: login:<client>.
type LoginThrottle struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewLoginThrottle(client *redis.Client, logger zerolog.Logger) *LoginThrottle {
	return &LoginThrottle{client: client, logger: logger}
}

// Allow reports whether another attempt from this client is permitted.
// Redis being unreachable fails open: availability of login outweighs the
// throttle when the backing store is down.
func (t *LoginThrottle) Allow(ctx context.Context, clientKey string) bool {
	key := fmt.Sprintf("login:%s", clientKey)

	n, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		return true
	}
	if n == 1 {
		if err := t.client.Expire(ctx, key, throttleWindow).Err(); err != nil {
			t.logger.Warn().Err(err).Msg("login throttle expire failed")
		}
	}
	return n <= throttleLimit
}
