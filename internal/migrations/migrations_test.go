package migrations

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsUsersSchema(t *testing.T) {
	data, err := fs.ReadFile(FS, "00001_create_users.sql")
	require.NoError(t, err)

	schema := string(data)
	assert.Contains(t, schema, "-- +goose Up")
	assert.Contains(t, schema, "CONSTRAINT users_username_key UNIQUE (username)")
	assert.Contains(t, schema, "CONSTRAINT users_email_key UNIQUE (email)")
}

func TestUp(t *testing.T) {
	orig := gooseUp
	defer func() { gooseUp = orig }()

	var gotDir string
	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, Up(context.Background(), nil))
	assert.Equal(t, ".", gotDir)

	gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, Up(context.Background(), nil), "boom")
}
