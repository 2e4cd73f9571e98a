package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE files (id INTEGER PRIMARY KEY, name TEXT NOT NULL, is_public INTEGER NOT NULL DEFAULT 0)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO files(name) VALUES ('docs')`)
	require.NoError(t, err)
	return db
}

func publicCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM files WHERE is_public = 1`).Scan(&n))
	return n
}

func publish(ctx context.Context, tx DBTX) error {
	_, err := tx.ExecContext(ctx, `UPDATE files SET is_public = 1`)
	return err
}

func TestWithTx(t *testing.T) {
	tests := []struct {
		name       string
		fn         func(ctx context.Context, tx DBTX) error
		wantErr    bool
		wantPublic int
	}{
		{name: "commit", fn: publish, wantPublic: 1},
		{
			name: "rollback on error",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := publish(ctx, tx); err != nil {
					return err
				}
				return errors.New("boom")
			},
			wantErr: true,
		},
		{
			name: "read inside the transaction",
			fn: func(ctx context.Context, tx DBTX) error {
				if err := publish(ctx, tx); err != nil {
					return err
				}
				var n int
				if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM files WHERE is_public = 1`).Scan(&n); err != nil {
					return err
				}
				if n != 1 {
					return errors.New("update not visible")
				}
				return nil
			},
			wantPublic: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := openSQLite(t)

			err := WithTx(context.Background(), db, nil, tt.fn)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantPublic, publicCount(t, db))
		})
	}
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openSQLite(t)

	assert.PanicsWithValue(t, "kaput", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_ = publish(ctx, tx)
			panic("kaput")
		})
	})
	assert.Equal(t, 0, publicCount(t, db))
}

func TestWithTx_ClosedDB(t *testing.T) {
	db := openSQLite(t)
	require.NoError(t, db.Close())

	called := false
	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})
	assert.ErrorContains(t, err, "begin tx")
	assert.False(t, called)
}
