package ledger

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"guandan/internal/ports"
)

const walletKeyPrefix = "guandan:wallet:"

// RedisLedger stores balances in Redis so multiple server nodes settle
// against the same wallets.
type RedisLedger struct {
	client *redis.Client
	log    *logrus.Logger
}

// NewRedisLedger wraps an existing Redis client.
func NewRedisLedger(client *redis.Client, log *logrus.Logger) *RedisLedger {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RedisLedger{client: client, log: log}
}

func walletKey(userID string) string {
	return walletKeyPrefix + userID
}

// GetBalance retrieves the current coin balance for a user.
func (l *RedisLedger) GetBalance(ctx context.Context, userID string) (int64, error) {
	val, err := l.client.Get(ctx, walletKey(userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read wallet for user %s: %w", userID, err)
	}
	return val, nil
}

// UpdateBalances applies wallet changes. Balances are clamped at zero after
// each change, matching the in-memory backend.
func (l *RedisLedger) UpdateBalances(ctx context.Context, updates []ports.WalletUpdate) error {
	for _, update := range updates {
		if update.Amount == 0 {
			continue
		}
		key := walletKey(update.UserID)
		next, err := l.client.IncrBy(ctx, key, update.Amount).Result()
		if err != nil {
			return fmt.Errorf("failed to update wallet for user %s: %w", update.UserID, err)
		}
		if next < 0 {
			if err := l.client.Set(ctx, key, 0, 0).Err(); err != nil {
				return fmt.Errorf("failed to clamp wallet for user %s: %w", update.UserID, err)
			}
			next = 0
		}
		l.log.WithFields(logrus.Fields{
			"user_id": update.UserID,
			"amount":  update.Amount,
			"balance": next,
		}).Debug("wallet updated")
	}
	return nil
}

var _ ports.EconomyPort = (*RedisLedger)(nil)
