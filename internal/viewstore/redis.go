package viewstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/infra"
	"k8s.io/utils/clock"
)

// Сколько раз переигрываем WATCH/MULTI при конкурентной записи
const maxTxRetries = 10

// RedisStore хранит view как JSON под ключом blytz:views:{id} с TTL.
type RedisStore struct {
	rdb   *redis.Client
	ttl   time.Duration
	clock clock.PassiveClock
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration, clk clock.PassiveClock) *RedisStore {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &RedisStore{rdb: rdb, ttl: ttl, clock: clk}
}

func (s *RedisStore) Create(ctx context.Context, v *domain.ViewState) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("viewstore: marshal view: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, infra.GetViewKey(v.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("viewstore: create view: %w", err)
	}
	if !ok {
		return fmt.Errorf("viewstore: view %s already exists", v.ID)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.ViewState, error) {
	// GETEX продлевает TTL, как и в памяти
	data, err := s.rdb.GetEx(ctx, infra.GetViewKey(id), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrViewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("viewstore: get view: %w", err)
	}
	return decode(data)
}

func (s *RedisStore) Update(ctx context.Context, id string, fn UpdateFunc) (*domain.ViewState, error) {
	key := infra.GetViewKey(id)
	var result *domain.ViewState

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.ErrViewNotFound
		}
		if err != nil {
			return err
		}
		v, err := decode(data)
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		v.UpdatedAt = s.clock.Now()

		out, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("viewstore: marshal view: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, s.ttl)
			return nil
		})
		if err == nil {
			result = v
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			// Ключ поменяли между GET и EXEC, пробуем ещё раз
			continue
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}
	return nil, fmt.Errorf("viewstore: update view %s: too much contention", id)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, infra.GetViewKey(id)).Err(); err != nil {
		return fmt.Errorf("viewstore: delete view: %w", err)
	}
	return nil
}

func decode(data []byte) (*domain.ViewState, error) {
	var v domain.ViewState
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("viewstore: decode view: %w", err)
	}
	return &v, nil
}
