package repository

import (
	"honeypot-backend/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type MessageRepository interface {
	SaveMessage(msg *models.Message) error
	GetByConversation(conversationID int64) ([]*models.Message, error)
}

type messageRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewMessageRepository(db *sqlx.DB, logger *zap.Logger) MessageRepository {
	return &messageRepository{db: db, logger: logger}
}

func (r *messageRepository) SaveMessage(msg *models.Message) error {
	query := `INSERT INTO messages (conversation_id, role, content, metadata)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	return r.db.QueryRowx(query, msg.ConversationID, msg.Role, msg.Content, msg.Metadata).StructScan(msg)
}

// GetByConversation returns all messages of a conversation in creation order.
func (r *messageRepository) GetByConversation(conversationID int64) ([]*models.Message, error) {
	var msgs []*models.Message
	query := `SELECT id, conversation_id, role, content, metadata, created_at FROM messages WHERE conversation_id = $1 ORDER BY created_at ASC, id ASC`
	err := r.db.Select(&msgs, query, conversationID)
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
