package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at INTEGER NOT NULL DEFAULT 0
);`)
	require.NoError(t, err)
	return db
}

func sampleRecord() Record {
	return Record{
		Token: "header.payload.sig",
		User:  models.User{ID: "u1", Email: "a@b.com", Name: "Alice"},
	}
}

// exerciseStore runs the shared contract against any Store implementation.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	rec, err := s.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, rec)

	tok, err := s.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.SetCredential(ctx, sampleRecord()))

	rec, err = s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, sampleRecord(), *rec)

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "header.payload.sig", tok)

	require.NoError(t, s.ClearCredential(ctx))
	require.NoError(t, s.ClearCredential(ctx))

	tok, err = s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	email, err := s.LastEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email, "last email survives logout")
}

func TestSQLiteStore_Contract(t *testing.T) {
	exerciseStore(t, NewSQLiteStore(setupDB(t)))
}

func TestMemoryStore_Contract(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore_CorruptRecord(t *testing.T) {
	db := setupDB(t)
	_, err := db.Exec(`INSERT INTO metadata(key, value) VALUES ('user', 'not json')`)
	require.NoError(t, err)

	_, err = NewSQLiteStore(db).Token(context.Background())
	require.ErrorContains(t, err, "decode credential record")
}

func TestSQLiteStore_SetCredentialRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO metadata`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewSQLiteStore(db).SetCredential(context.Background(), sampleRecord())
	require.ErrorContains(t, err, "last_email")
	require.NoError(t, mock.ExpectationsWereMet())
}
