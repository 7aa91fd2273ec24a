package repository

import (
	"honeypot-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type IntelligenceRepository interface {
	SaveIntelligence(intel *models.Intelligence) error
	GetByConversation(conversationID int64) ([]*models.Intelligence, error)
	CountAll() (int, error)
}

type intelligenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewIntelligenceRepository(db *sqlx.DB, logger *zap.Logger) IntelligenceRepository {
	return &intelligenceRepository{db: db, logger: logger}
}

func (r *intelligenceRepository) SaveIntelligence(intel *models.Intelligence) error {
	query := `INSERT INTO intelligence (conversation_id, type, value, confidence)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.db.QueryRowx(query, intel.ConversationID, intel.Type, intel.Value, intel.Confidence).StructScan(intel)
}

func (r *intelligenceRepository) GetByConversation(conversationID int64) ([]*models.Intelligence, error) {
	var intel []*models.Intelligence
	query := `SELECT id, conversation_id, type, value, confidence, created_at FROM intelligence WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.db.Select(&intel, query, conversationID)
	if err != nil {
		return nil, err
	}
	return intel, nil
}

func (r *intelligenceRepository) CountAll() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM intelligence`)
	return count, err
}
