package presence

import (
	"context"
	"log/slog"
	"time"

	"focuspit/config"
	"focuspit/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "presence:"

// redisPresence tracks online markers as TTL'd Redis keys. Clients heartbeat
// SetOnline; a key that expires means the user went offline without saying
// goodbye, which is the common case for a closed laptop.
type redisPresence struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisPresence creates a PresenceService backed by Redis.
func NewRedisPresence(cfg *config.RedisConfig, logger *slog.Logger) (service.PresenceService, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to redis")
	}

	return &redisPresence{client: client, logger: logger}, nil
}

// NewRedisPresenceWithClient wraps an existing client, used in tests.
func NewRedisPresenceWithClient(client *redis.Client, logger *slog.Logger) service.PresenceService {
	return &redisPresence{client: client, logger: logger}
}

func key(uid string) string {
	return keyPrefix + uid
}

func (p *redisPresence) SetOnline(ctx context.Context, uid string, ttl time.Duration) error {
	if err := p.client.Set(ctx, key(uid), "1", ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set online marker")
	}

	return nil
}

func (p *redisPresence) SetOffline(ctx context.Context, uid string) error {
	if err := p.client.Del(ctx, key(uid)).Err(); err != nil {
		return errors.Wrap(err, "failed to delete online marker")
	}

	return nil
}

func (p *redisPresence) IsOnline(ctx context.Context, uid string) (bool, error) {
	n, err := p.client.Exists(ctx, key(uid)).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to check online marker")
	}

	return n > 0, nil
}

func (p *redisPresence) OnlineStatus(ctx context.Context, uids []string) (map[string]bool, error) {
	status := make(map[string]bool, len(uids))
	if len(uids) == 0 {
		return status, nil
	}

	keys := make([]string, len(uids))
	for i, uid := range uids {
		keys[i] = key(uid)
	}

	values, err := p.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check online markers")
	}

	for i, uid := range uids {
		status[uid] = values[i] != nil
	}

	return status, nil
}

func (p *redisPresence) Close() error {
	return p.client.Close()
}
