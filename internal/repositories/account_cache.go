package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AccountCacheRepository caches public account projections in Redis
type AccountCacheRepository struct {
	client redis.Cmdable
	exp    time.Duration // expiration duration for cached accounts
}

// NewAccountCacheRepository creates a new repository instance with the given TTL
func NewAccountCacheRepository(client redis.Cmdable, expiration time.Duration) *AccountCacheRepository {
	return &AccountCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func accountKey(id uuid.UUID) string {
	return fmt.Sprintf("account:%s", id)
}

// Get returns the cached account, or nil on a miss.
func (r *AccountCacheRepository) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	key := accountKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	logger.FromContext(ctx).Debugw("cache get",
		"key", key,
		"hit", err == nil,
		"error", err,
	)
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var account models.Account
	if err := json.Unmarshal(val, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Set caches the account with expiration
func (r *AccountCacheRepository) Set(ctx context.Context, account *models.Account) error {
	key := accountKey(account.UserID)

	val, err := json.Marshal(account)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, val, r.exp).Err()

	logger.FromContext(ctx).Debugw("cache set",
		"key", key,
		"ttl", r.exp,
		"error", err,
	)

	return err
}

// Delete drops the cached account, if any
func (r *AccountCacheRepository) Delete(ctx context.Context, id uuid.UUID) error {
	key := accountKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.FromContext(ctx).Debugw("cache delete",
		"key", key,
		"error", err,
	)

	return err
}
