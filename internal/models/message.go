package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Message roles. "scammer" is inbound, "agent" is our reply, "system" is internal.
const (
	RoleScammer = "scammer"
	RoleAgent   = "agent"
	RoleSystem  = "system"
)

// Message represents a message stored in the 'messages' table.
// Messages are immutable once created; CreatedAt is the ordering key.
type Message struct {
	ID             int64          `db:"id" json:"id"`
	ConversationID int64          `db:"conversation_id" json:"conversationId"`
	Role           string         `db:"role" json:"role"`
	Content        string         `db:"content" json:"content"` // Raw text, untrusted on render
	Metadata       types.JSONText `db:"metadata" json:"metadata,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"createdAt"`
}
