package jobs

import (
	"encoding/json"
	"time"
)

// Job states. A job moves PENDING -> RUNNING -> SUCCEEDED | FAILED; the
// worker that claimed it is the only writer of its terminal state.
const (
	StatusPending   = "PENDING"
	StatusRunning   = "RUNNING"
	StatusSucceeded = "SUCCEEDED"
	StatusFailed    = "FAILED"
)

type Job struct {
	ID string `gorm:"primaryKey"`

	Kind     string `gorm:"type:text;not null;index"` // analyze/investment/risk/verify
	Query    string `gorm:"type:text;not null"`
	Filename string `gorm:"type:text;not null"`
	Payload  []byte `gorm:"type:bytea;not null"`

	Status string `gorm:"index;not null;default:'PENDING'"`

	// Result is set iff Status == SUCCEEDED; LastError iff Status == FAILED.
	Result    json.RawMessage `gorm:"type:jsonb"`
	LastError *string         `gorm:"type:text"`

	LockedBy *string    `gorm:"type:text"`
	LockedAt *time.Time `gorm:"type:timestamptz"`

	CreatedAt time.Time `gorm:"not null;default:now()"`
	UpdatedAt time.Time `gorm:"not null;default:now()"`
}
