// Package document stores uploaded financial documents so they can be
// listed, inspected and re-analyzed without re-uploading.
package document

import (
	"time"

	"github.com/lib/pq"
)

type Document struct {
	ID          string `gorm:"primaryKey"`
	Name        string `gorm:"type:text;not null"`
	Size        int64  `gorm:"not null"`
	ContentType string `gorm:"type:text;not null;default:''"`
	Content     []byte `gorm:"type:bytea;not null"`

	// JobIDs accumulates the analysis jobs fanned out over this document.
	JobIDs pq.StringArray `gorm:"type:text[];not null;default:'{}'"`

	// listing order is served by the descending index created in db
	UploadedAt time.Time `gorm:"not null;default:now()"`
}
