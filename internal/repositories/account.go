package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/sbilibin2017/gw-user-accounts/internal/models"
)

const accountColumns = `user_id, username, email, password_hash, fullname, phone, created_at, last_login`

// Names of the unique constraints created by the users migration.
const (
	uniqueViolation          = "23505"
	emailUniqueConstraint    = "users_email_key"
	usernameUniqueConstraint = "users_username_key"
)

// TxGetter returns the transaction bound to ctx, or nil.
type TxGetter func(ctx context.Context) *sqlx.Tx

func executor(ctx context.Context, db *sqlx.DB, txGetter TxGetter) sqlx.ExtContext {
	if txGetter != nil {
		if tx := txGetter(ctx); tx != nil {
			return tx
		}
	}
	return db
}

func logQuery(ctx context.Context, query string, args []any, result any, err error) {
	logger.FromContext(ctx).Debugw("db query",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", result,
		"error", err,
	)
}

// AccountReadRepository handles account read operations
type AccountReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountReadRepository(db *sqlx.DB, txGetter TxGetter) *AccountReadRepository {
	return &AccountReadRepository{db: db, txGetter: txGetter}
}

// FindByEmailOrUsername returns every account whose email or username matches.
func (r *AccountReadRepository) FindByEmailOrUsername(ctx context.Context, email, username string) ([]models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users
		WHERE email = $1 OR username = $2
	`

	var accounts []models.AccountDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &accounts, query, email, username)

	logQuery(ctx, query, []any{email, username}, len(accounts), err)

	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindByEmail returns the account with the given email, or nil.
func (r *AccountReadRepository) FindByEmail(ctx context.Context, email string) (*models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users
		WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

// FindByID returns the account with the given id, or nil.
func (r *AccountReadRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users
		WHERE user_id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *AccountReadRepository) getOne(ctx context.Context, query string, arg any) (*models.AccountDB, error) {
	var account models.AccountDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &account, query, arg)

	var found any
	if err == nil {
		found = account.UserID
	}
	logQuery(ctx, query, []any{arg}, found, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAll returns every account ordered newest first.
func (r *AccountReadRepository) ListAll(ctx context.Context) ([]models.AccountDB, error) {
	const query = `
		SELECT ` + accountColumns + `
		FROM users
		ORDER BY created_at DESC, user_id
	`

	var accounts []models.AccountDB
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &accounts, query)

	logQuery(ctx, query, nil, len(accounts), err)

	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// AccountWriteRepository handles account write operations
type AccountWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewAccountWriteRepository(db *sqlx.DB, txGetter TxGetter) *AccountWriteRepository {
	return &AccountWriteRepository{db: db, txGetter: txGetter}
}

// Insert stores a new account and returns it with its generated id and
// creation time. Unique constraint violations become models.ErrDuplicateEmail
// or models.ErrDuplicateUsername.
func (r *AccountWriteRepository) Insert(ctx context.Context, account models.AccountDB) (*models.AccountDB, error) {
	const query = `
		INSERT INTO users (username, email, password_hash, fullname, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING user_id, created_at
	`

	row := struct {
		UserID    uuid.UUID `db:"user_id"`
		CreatedAt time.Time `db:"created_at"`
	}{}
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &row, query,
		account.Username, account.Email, account.PasswordHash, account.Fullname, account.Phone)

	// the hash is never logged
	logQuery(ctx, query, []any{account.Username, account.Email, account.Fullname, account.Phone}, row.UserID, err)

	if err != nil {
		return nil, duplicateOf(err)
	}

	account.UserID = row.UserID
	account.CreatedAt = row.CreatedAt
	return &account, nil
}

// DeleteByID removes the account with the given id and reports how many rows were removed.
func (r *AccountWriteRepository) DeleteByID(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `DELETE FROM users WHERE user_id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if err == nil {
		rowsAffected, err = res.RowsAffected()
	}

	logQuery(ctx, query, []any{id}, rowsAffected, err)

	return rowsAffected, err
}

// TouchLastLogin stamps the account's last login with the current time.
func (r *AccountWriteRepository) TouchLastLogin(ctx context.Context, id uuid.UUID) (time.Time, error) {
	const query = `
		UPDATE users
		SET last_login = NOW()
		WHERE user_id = $1
		RETURNING last_login
	`

	var lastLogin time.Time
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &lastLogin, query, id)

	logQuery(ctx, query, []any{id}, lastLogin, err)

	return lastLogin, err
}

func duplicateOf(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case emailUniqueConstraint:
		return fmt.Errorf("%w: %s", models.ErrDuplicateEmail, pgErr.Detail)
	case usernameUniqueConstraint:
		return fmt.Errorf("%w: %s", models.ErrDuplicateUsername, pgErr.Detail)
	default:
		return err
	}
}
