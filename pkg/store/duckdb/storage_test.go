package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesRecordTables(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "duckdb-test-*")
	require.NoError(t, err)

	defer func() {
		err := os.RemoveAll(tmpDir)
		if err != nil {
			t.Errorf("failed to cleanup test directory: %v", err)
		}
	}()

	db, err := NewDB(Settings{
		DbPath: filepath.Join(tmpDir, "test.db"),
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO admissions (id, name, department, admission_date, status) VALUES (?, ?, ?, ?, ?)`,
		"adm-001", "Omar Haddad", "Neurology", "2024-02-10", "active",
	)
	require.NoError(t, err)

	for _, table := range []string{"admissions", "consultations", "appointments"} {
		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count)
		require.NoError(t, err, table)
		if table == "admissions" {
			assert.Equal(t, 1, count)
		} else {
			assert.Zero(t, count)
		}
	}
}

func TestTransactionContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetTransaction(ctx))

	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	assert.Same(t, tx, GetTransaction(WithTransaction(ctx, tx)))
}

func TestInTransaction(t *testing.T) {
	ctx := context.Background()
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	insert := func(ctx context.Context, id string) error {
		stmt, err := Conn(ctx, db).PrepareContext(ctx, `INSERT INTO appointments (id, patient_name) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		_, err = stmt.ExecContext(ctx, id, "Ali Mansour")
		return err
	}

	t.Run("commit", func(t *testing.T) {
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			require.NotNil(t, GetTransaction(ctx))
			return insert(ctx, "apt-1")
		})
		require.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		err := InTransaction(ctx, db, func(ctx context.Context) error {
			if err := insert(ctx, "apt-2"); err != nil {
				return err
			}
			return assert.AnError
		})
		assert.ErrorIs(t, err, assert.AnError)
	})

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM appointments").Scan(&count))
	assert.Equal(t, 1, count)
}
