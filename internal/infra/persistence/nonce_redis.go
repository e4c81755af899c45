package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/scheduly/booking-core/internal/domain/booking"
)

const nonceKeyPrefix = "booking:nonce:"

// RedisNonces compartilha o registro de nonces entre instâncias.
// Entradas expiram por TTL; depois disso o índice único de nonce no
// banco continua sendo a última barreira contra duplicata.
type RedisNonces struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisNonces(client *redis.Client, ttl time.Duration) *RedisNonces {
	return &RedisNonces{client: client, ttl: ttl}
}

func (r *RedisNonces) Get(ctx context.Context, nonce string) (domain.Receipt, bool, error) {
	raw, err := r.client.Get(ctx, nonceKeyPrefix+nonce).Result()
	if err == redis.Nil {
		return domain.Receipt{}, false, nil
	}
	if err != nil {
		return domain.Receipt{}, false, err
	}

	var receipt domain.Receipt
	if err := json.Unmarshal([]byte(raw), &receipt); err != nil {
		return domain.Receipt{}, false, err
	}
	return receipt, true, nil
}

func (r *RedisNonces) Put(ctx context.Context, nonce string, receipt domain.Receipt) error {
	raw, err := json.Marshal(receipt)
	if err != nil {
		return err
	}

	// SETNX preserva o comprovante da primeira persistência.
	return r.client.SetNX(ctx, nonceKeyPrefix+nonce, raw, r.ttl).Err()
}

var _ NonceRegistry = (*RedisNonces)(nil)
var _ NonceRegistry = (*MemoryNonces)(nil)
