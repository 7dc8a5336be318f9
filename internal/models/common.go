package models

import "time"

// AuditFields mirrors the timestamp columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"updated_at"`
}
