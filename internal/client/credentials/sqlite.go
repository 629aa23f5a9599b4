package credentials

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fittrack/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/dbx"
)

const lastEmailKey = "last_email"

// SQLiteStore keeps the credential record in the local metadata table.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) repo(db dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(db)
}

func (s *SQLiteStore) Load(ctx context.Context) (*Record, error) {
	rec, err := s.repo(s.db).Get(ctx, common.CredentialKey)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}

	var out Record
	if err := json.Unmarshal(rec.Value, &out); err != nil {
		return nil, fmt.Errorf("decode credential record: %w", err)
	}
	return &out, nil
}

func (s *SQLiteStore) Token(ctx context.Context) (string, error) {
	rec, err := s.Load(ctx)
	if err != nil || rec == nil {
		return "", err
	}
	return rec.Token, nil
}

// SetCredential stores rec and remembers its email in one transaction.
func (s *SQLiteStore) SetCredential(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode credential record: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)
		if err := repo.Set(ctx, common.CredentialKey, data); err != nil {
			return err
		}
		if rec.User.Email == "" {
			return nil
		}
		return repo.Set(ctx, lastEmailKey, []byte(rec.User.Email))
	})
}

func (s *SQLiteStore) ClearCredential(ctx context.Context) error {
	return s.repo(s.db).Delete(ctx, common.CredentialKey)
}

func (s *SQLiteStore) LastEmail(ctx context.Context) (string, error) {
	rec, err := s.repo(s.db).Get(ctx, lastEmailKey)
	if err != nil || rec == nil {
		return "", err
	}
	return string(rec.Value), nil
}
