package models

import "time"

// Conversation represents a honeypot conversation stored in the 'conversations' table.
// ExternalID correlates inbound messages from the calling system; at most one
// conversation exists per external id (unique index).
type Conversation struct {
	ID           int64     `db:"id" json:"id"`
	ExternalID   string    `db:"external_id" json:"external_id"`
	Title        string    `db:"title" json:"title"`
	ScamScore    int       `db:"scam_score" json:"scamScore"`
	ScamDetected bool      `db:"scam_detected" json:"scamDetected"`
	ScamType     *string   `db:"scam_type" json:"scamType"` // Nullable until first detection
	Status       string    `db:"status" json:"status"`      // "active" or "completed"
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}
