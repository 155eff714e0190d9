package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/metrics"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// Error variables
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrUsernameTaken          = errors.New("username already taken")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountNotFound        = errors.New("account not found")
)

// AccountReader defines read-only operations for accounts.
type AccountReader interface {
	FindByEmailOrUsername(ctx context.Context, email, username string) ([]models.AccountDB, error) // Every account matching either value
	FindByEmail(ctx context.Context, email string) (*models.AccountDB, error)                      // nil when absent
	FindByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error)                         // nil when absent
	ListAll(ctx context.Context) ([]models.AccountDB, error)                                       // Newest first
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	Insert(ctx context.Context, account models.AccountDB) (*models.AccountDB, error) // Returns the stored row
	DeleteByID(ctx context.Context, id uuid.UUID) (int64, error)                     // Returns rows removed
	TouchLastLogin(ctx context.Context, id uuid.UUID) (time.Time, error)             // Returns the new timestamp
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Compare(ctx context.Context, hash, password string) (bool, error)
}

// AccountCache caches public account projections by id.
type AccountCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error) // nil on miss
	Set(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuthService handles registration and login.
type AuthService struct {
	reader  AccountReader
	writer  AccountWriter
	hasher  PasswordHasher
	cache   AccountCache
	metrics *metrics.AuthMetrics

	afterCommit CommitHook
}

// NewAuthService creates a new AuthService instance. cache and m may be nil.
func NewAuthService(
	reader AccountReader,
	writer AccountWriter,
	hasher PasswordHasher,
	cache AccountCache,
	m *metrics.AuthMetrics,
) *AuthService {
	return &AuthService{
		reader:  reader,
		writer:  writer,
		hasher:  hasher,
		cache:   cache,
		metrics: m,

		afterCommit: runNow,
	}
}

// WithAfterCommit makes cache invalidation wait for hook.
func (svc *AuthService) WithAfterCommit(hook CommitHook) *AuthService {
	svc.afterCommit = hook
	return svc
}

// Register creates an account from a validated payload.
func (svc *AuthService) Register(ctx context.Context, req models.RegisterRequest) (account *models.Account, err error) {
	start := time.Now()
	defer func() { svc.metrics.Observe(metrics.OpRegister, outcomeOf(err), time.Since(start)) }()

	existing, err := svc.reader.FindByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to check account exists", "err", err)
		return nil, err
	}
	if err := conflictOf(existing, req.Email, req.Username); err != nil {
		logger.FromContext(ctx).Infow("account already exists", "username", req.Username, "email", req.Email, "err", err)
		return nil, err
	}

	hash, err := svc.hasher.Hash(ctx, req.Password)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to hash password", "err", err)
		return nil, err
	}

	row, err := svc.writer.Insert(ctx, models.AccountDB{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Fullname:     req.Fullname,
		Phone:        req.Phone,
	})
	switch {
	case errors.Is(err, models.ErrDuplicateEmail):
		logger.FromContext(ctx).Infow("email taken concurrently", "email", req.Email)
		return nil, ErrEmailAlreadyRegistered
	case errors.Is(err, models.ErrDuplicateUsername):
		logger.FromContext(ctx).Infow("username taken concurrently", "username", req.Username)
		return nil, ErrUsernameTaken
	case err != nil:
		logger.FromContext(ctx).Errorw("failed to save account", "err", err)
		return nil, err
	}

	return row.Public(), nil
}

// Login verifies credentials and records the login time.
func (svc *AuthService) Login(ctx context.Context, req models.LoginRequest) (account *models.Account, err error) {
	start := time.Now()
	defer func() { svc.metrics.Observe(metrics.OpLogin, outcomeOf(err), time.Since(start)) }()

	row, err := svc.reader.FindByEmail(ctx, req.Email)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to get account", "err", err)
		return nil, err
	}

	// An empty hash makes the hasher burn a decoy comparison.
	var hash string
	if row != nil {
		hash = row.PasswordHash
	}
	ok, err := svc.hasher.Compare(ctx, hash, req.Password)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to compare password", "err", err)
		return nil, err
	}
	if row == nil || !ok {
		logger.FromContext(ctx).Infow("invalid credentials", "email", req.Email)
		return nil, ErrInvalidCredentials
	}

	lastLogin, err := svc.writer.TouchLastLogin(ctx, row.UserID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to update last login", "user_id", row.UserID, "err", err)
		return nil, err
	}
	row.LastLogin = &lastLogin

	invalidateAccount(ctx, svc.cache, svc.afterCommit, row.UserID)

	return row.Public(), nil
}

// conflictOf reports which unique field of the payload is already in use.
// An email collision is reported before a username collision.
func conflictOf(existing []models.AccountDB, email, username string) error {
	var usernameTaken bool
	for _, acc := range existing {
		if acc.Email == email {
			return ErrEmailAlreadyRegistered
		}
		if acc.Username == username {
			usernameTaken = true
		}
	}
	if usernameTaken {
		return ErrUsernameTaken
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrEmailAlreadyRegistered), errors.Is(err, ErrUsernameTaken):
		return metrics.OutcomeConflict
	case errors.Is(err, ErrInvalidCredentials):
		return metrics.OutcomeRejected
	case errors.Is(err, ErrAccountNotFound):
		return metrics.OutcomeNotFound
	default:
		return metrics.OutcomeError
	}
}
