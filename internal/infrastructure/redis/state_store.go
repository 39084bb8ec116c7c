package redis

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Marketplace-api/internal/application/ports"
)

var _ ports.StateStore = (*StateStore)(nil)

// StateStore states OAuth compartidos entre réplicas. GETDEL garantiza un solo uso.
type StateStore struct {
	rdb *goredis.Client
}

func NewStateStore(rdb *goredis.Client) *StateStore {
	return &StateStore{rdb: rdb}
}

func stateKey(state string) string { return keyPrefix + "oauth_state:" + state }

func (s *StateStore) Save(ctx context.Context, state string, ttl time.Duration) error {
	return s.rdb.Set(ctx, stateKey(state), "1", ttl).Err()
}

func (s *StateStore) Consume(ctx context.Context, state string) (bool, error) {
	err := s.rdb.GetDel(ctx, stateKey(state)).Err()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
