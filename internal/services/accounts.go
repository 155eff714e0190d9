package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

// AccountService lists, fetches and deletes accounts.
type AccountService struct {
	reader      AccountReader
	writer      AccountWriter
	cache       AccountCache
	afterCommit CommitHook
}

// NewAccountService creates a new AccountService. cache may be nil.
func NewAccountService(reader AccountReader, writer AccountWriter, cache AccountCache) *AccountService {
	return &AccountService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		afterCommit: runNow,
	}
}

// WithAfterCommit makes cache invalidation wait for hook.
func (s *AccountService) WithAfterCommit(hook CommitHook) *AccountService {
	s.afterCommit = hook
	return s
}

// List returns every account, newest first.
func (s *AccountService) List(ctx context.Context) ([]models.Account, error) {
	rows, err := s.reader.ListAll(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to list accounts", "error", err)
		return nil, err
	}

	accounts := make([]models.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, *rows[i].Public())
	}
	return accounts, nil
}

// Get returns the account with the given id, reading through the cache.
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.FromContext(ctx).Warnw("failed to read cached account", "user_id", id, "error", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	row, err := s.reader.FindByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get account", "user_id", id, "error", err)
		return nil, err
	}
	if row == nil {
		return nil, ErrAccountNotFound
	}

	account := row.Public()
	if s.cache != nil {
		if err := s.cache.Set(ctx, account); err != nil {
			logger.FromContext(ctx).Warnw("failed to cache account", "user_id", id, "error", err)
		}
	}
	return account, nil
}

// Delete removes the account with the given id.
func (s *AccountService) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := s.writer.DeleteByID(ctx, id)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to delete account", "user_id", id, "error", err)
		return err
	}
	switch removed {
	case 0:
		return ErrAccountNotFound
	case 1:
	default:
		return fmt.Errorf("delete account %s: %d rows affected", id, removed)
	}

	invalidateAccount(ctx, s.cache, s.afterCommit, id)
	return nil
}

// CommitHook defers fn until the caller's transaction commits.
type CommitHook func(ctx context.Context, fn func(context.Context))

func runNow(ctx context.Context, fn func(context.Context)) { fn(ctx) }

// invalidateAccount drops the cached projection of id once the write that
// changed it is durable.
func invalidateAccount(ctx context.Context, cache AccountCache, afterCommit CommitHook, id uuid.UUID) {
	if cache == nil {
		return
	}
	afterCommit(ctx, func(ctx context.Context) {
		if err := cache.Delete(ctx, id); err != nil {
			logger.FromContext(ctx).Warnw("failed to invalidate cached account", "user_id", id, "error", err)
		}
	})
}
