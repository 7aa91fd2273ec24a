package repository

import (
	"database/sql"

	"honeypot-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ScamTypeCount is a single row of the top-scam-types aggregation.
type ScamTypeCount struct {
	Type  string `db:"scam_type" json:"type"`
	Count int    `db:"count" json:"count"`
}

type ConversationRepository interface {
	GetByExternalID(externalID string) (*models.Conversation, error)
	GetByID(id int64) (*models.Conversation, error)
	GetAll() ([]*models.Conversation, error)
	Create(conv *models.Conversation) error
	UpdateDetection(id int64, scamScore int, scamType *string) error
	Delete(id int64) error
	CountAll() (int, error)
	CountByStatus(status string) (int, error)
	CountScamDetected() (int, error)
	TopScamTypes(limit int) ([]ScamTypeCount, error)
}

type conversationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewConversationRepository(db *sqlx.DB, logger *zap.Logger) ConversationRepository {
	return &conversationRepository{db: db, logger: logger}
}

func (r *conversationRepository) GetByExternalID(externalID string) (*models.Conversation, error) {
	var conv models.Conversation
	query := `SELECT id, external_id, title, scam_score, scam_detected, scam_type, status, created_at, updated_at FROM conversations WHERE external_id = $1`
	err := r.db.Get(&conv, query, externalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Conversation not found
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetByID(id int64) (*models.Conversation, error) {
	var conv models.Conversation
	query := `SELECT id, external_id, title, scam_score, scam_detected, scam_type, status, created_at, updated_at FROM conversations WHERE id = $1`
	err := r.db.Get(&conv, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

func (r *conversationRepository) GetAll() ([]*models.Conversation, error) {
	var convs []*models.Conversation
	query := `SELECT id, external_id, title, scam_score, scam_detected, scam_type, status, created_at, updated_at FROM conversations ORDER BY updated_at DESC`
	err := r.db.Select(&convs, query)
	if err != nil {
		return nil, err
	}
	return convs, nil
}

func (r *conversationRepository) Create(conv *models.Conversation) error {
	query := `INSERT INTO conversations (external_id, title, scam_score, scam_detected, scam_type, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, external_id, title, scam_score, scam_detected, scam_type, status, created_at, updated_at`
	return r.db.QueryRowx(query, conv.ExternalID, conv.Title, conv.ScamScore, conv.ScamDetected,
		conv.ScamType, conv.Status).StructScan(conv)
}

func (r *conversationRepository) UpdateDetection(id int64, scamScore int, scamType *string) error {
	query := `UPDATE conversations SET scam_detected = TRUE, scam_score = $1, scam_type = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(query, scamScore, scamType, id)
	return err
}

// Delete removes a conversation and all its messages and intelligence.
// The cascade is explicit rather than left to the foreign keys so the memory
// driver behaves identically. Deleting an unknown id is a no-op.
func (r *conversationRepository) Delete(id int64) error {
	if _, err := r.db.Exec(`DELETE FROM intelligence WHERE conversation_id = $1`, id); err != nil {
		return err
	}
	if _, err := r.db.Exec(`DELETE FROM messages WHERE conversation_id = $1`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(`DELETE FROM conversations WHERE id = $1`, id)
	return err
}

func (r *conversationRepository) CountAll() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM conversations`)
	return count, err
}

func (r *conversationRepository) CountByStatus(status string) (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM conversations WHERE status = $1`, status)
	return count, err
}

func (r *conversationRepository) CountScamDetected() (int, error) {
	var count int
	err := r.db.Get(&count, `SELECT COUNT(*) FROM conversations WHERE scam_detected = TRUE`)
	return count, err
}

// TopScamTypes ties are broken by type name ascending so the ordering is
// deterministic.
func (r *conversationRepository) TopScamTypes(limit int) ([]ScamTypeCount, error) {
	var rows []ScamTypeCount
	query := `
		SELECT scam_type, COUNT(*) as count
		FROM conversations
		WHERE scam_type IS NOT NULL
		GROUP BY scam_type
		ORDER BY count DESC, scam_type ASC
		LIMIT $1
	`
	err := r.db.Select(&rows, query, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
