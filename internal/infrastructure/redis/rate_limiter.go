package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var _ ports.RateLimiter = (*RateLimiter)(nil)

// Ventana fija: el primer INCR de la ventana fija la expiración.
var fixedWindow = goredis.NewScript(`
	local n = redis.call('INCR', KEYS[1])
	if n == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return n
`)

// RateLimiter contador por clave compartido entre réplicas.
type RateLimiter struct {
	rdb *goredis.Client
}

func NewRateLimiter(rdb *goredis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

func (l *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	n, err := fixedWindow.Run(ctx, l.rdb, []string{keyPrefix + "rl:" + key}, window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return n <= int64(limit), nil
}
