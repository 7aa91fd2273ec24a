package models

import "time"

// APIKey represents a bearer key stored in the 'api_keys' table.
type APIKey struct {
	ID          int64     `db:"id" json:"id"`
	Key         string    `db:"key" json:"key"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
