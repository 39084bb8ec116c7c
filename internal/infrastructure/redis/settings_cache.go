package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var _ ports.SettingsCache = (*SettingsCache)(nil)

const settingsKey = keyPrefix + "settings"

// SettingsCache guarda el mapa de configuración como JSON en una sola clave.
type SettingsCache struct {
	rdb *goredis.Client
}

func NewSettingsCache(rdb *goredis.Client) *SettingsCache {
	return &SettingsCache{rdb: rdb}
}

func (c *SettingsCache) Get(ctx context.Context) (map[string]string, bool, error) {
	raw, err := c.rdb.Get(ctx, settingsKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var values map[string]string
	if err := json.Unmarshal(raw, &values); err != nil {
		// entrada corrupta: se trata como ausente y se repone en el próximo Set
		return nil, false, nil
	}
	return values, true, nil
}

func (c *SettingsCache) Set(ctx context.Context, values map[string]string, ttl time.Duration) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, settingsKey, raw, ttl).Err()
}

func (c *SettingsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, settingsKey).Err()
}
