package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// GenerationRateLimiter acota cuantas generaciones de matches puede pedir
// un perfil por ventana. Sin Redis configurado no se limita.
type GenerationRateLimiter interface {
	Allow(profileID string) bool
}

const redisGenerateAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisGenerationRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisGenerationRateLimiter(client *redis.Client, window time.Duration, max int) GenerationRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = 24 * time.Hour
	}
	if max <= 0 {
		max = 1
	}
	return &redisGenerationRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "match:gen:",
	}
}

func (l *redisGenerationRateLimiter) Allow(profileID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	normalized := strings.ToLower(strings.TrimSpace(profileID))
	if normalized == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	redisKey := l.prefix + normalized
	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 86400
	}
	count, err := l.client.Eval(ctx, redisGenerateAllowScript, []string{redisKey}, seconds).Int()
	if err != nil {
		// Redis caido no bloquea la generacion.
		return true
	}
	return count <= l.max
}
