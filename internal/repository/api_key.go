package repository

import (
	"honeypot-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type APIKeyRepository interface {
	CreateKey(key *models.APIKey) error
	KeyExists(key string) (bool, error)
	CountKeys() (int, error)
}

type apiKeyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAPIKeyRepository(db *sqlx.DB, logger *zap.Logger) APIKeyRepository {
	return &apiKeyRepository{db: db, logger: logger}
}

func (r *apiKeyRepository) CreateKey(key *models.APIKey) error {
	query := `INSERT INTO api_keys (key, description) VALUES ($1, $2) RETURNING id, created_at`
	return r.db.QueryRowx(query, key.Key, key.Description).StructScan(key)
}

func (r *apiKeyRepository) KeyExists(key string) (bool, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM api_keys WHERE key = $1`, key)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *apiKeyRepository) CountKeys() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM api_keys`)
	return count, err
}
