package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

var _ adaptor.CredentialRepository = (*CredentialSQLiteRepository)(nil)

// CredentialSQLiteRepository persists the singleton pair in a one-row
// table. Secrets go through the configured cipher before hitting disk.
type CredentialSQLiteRepository struct {
	db     *sqlx.DB
	cipher secretCipher
}

func NewCredentialSQLiteRepository(db *sqlx.DB, encryptionKey []byte) (*CredentialSQLiteRepository, error) {
	cipher, err := newSecretCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	return &CredentialSQLiteRepository{db: db, cipher: cipher}, nil
}

func (r *CredentialSQLiteRepository) Get(ctx context.Context) (*model.Credential, error) {
	var cred model.Credential
	err := r.db.GetContext(ctx, &cred,
		"SELECT api_key, api_secret FROM credentials WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	opened, err := r.cipher.open(cred)
	if err != nil {
		return nil, err
	}
	return &opened, nil
}

func (r *CredentialSQLiteRepository) Set(ctx context.Context, cred model.Credential) error {
	sealed, err := r.cipher.seal(cred)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO credentials (id, api_key, api_secret, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			api_key = excluded.api_key,
			api_secret = excluded.api_secret,
			updated_at = CURRENT_TIMESTAMP
	`, sealed.APIKey, sealed.APISecret)
	return err
}
