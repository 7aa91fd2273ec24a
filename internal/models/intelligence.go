package models

import "time"

// Stored intelligence types.
const (
	IntelUPI         = "upi"
	IntelBankAccount = "bank_account"
	IntelURL         = "url"
	IntelPhone       = "phone"
	IntelWallet      = "wallet"
)

// Intelligence represents an extracted indicator stored in the 'intelligence' table.
// Rows are immutable and not deduplicated: re-analysis of a thread accumulates
// duplicate values, which is a known limitation.
type Intelligence struct {
	ID             int64     `db:"id" json:"id"`
	ConversationID int64     `db:"conversation_id" json:"conversationId"`
	Type           string    `db:"type" json:"type"`
	Value          string    `db:"value" json:"value"`
	Confidence     int       `db:"confidence" json:"confidence"` // 0-100
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
