package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Export status constants
const (
	ExportStatusPending = "pending" // Created, extraction in progress
	ExportStatusReady   = "ready"   // Paired artifact written and bundled
	ExportStatusFailed  = "failed"  // Extraction or bundling failed
)

// Export represents one server-side copy of a paired snippet export:
// a merged audio clip plus the matching Cabrillo log subset.
type Export struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Selection identity
	ContestName string `json:"contest_name" gorm:"not null;index;size:200"`
	StartIndex  int    `json:"start_index" gorm:"not null"` // First contact sequence index (inclusive)
	EndIndex    int    `json:"end_index" gorm:"not null"`   // Last contact sequence index (inclusive)

	// Resolved timeline range in seconds
	StartOffset float64 `json:"start_offset"`
	EndOffset   float64 `json:"end_offset"`

	// Bundle information (zero values until extraction completes)
	BundleFilename string  `json:"bundle_filename,omitempty" gorm:"size:255"`
	Duration       float64 `json:"duration,omitempty"`
	SizeBytes      int64   `json:"size_bytes,omitempty"`

	Status       string `json:"status" gorm:"default:pending;size:20;index"`
	ErrorMessage string `json:"error_message,omitempty" gorm:"size:500"`
}

// BeforeCreate generates a UUID before creating a new export
func (e *Export) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = ExportStatusPending
	}
	return nil
}

// TableName returns the table name for the Export model
func (Export) TableName() string {
	return "exports"
}

// ContactCount returns how many contacts the selection covers
func (e *Export) ContactCount() int {
	return e.EndIndex - e.StartIndex + 1
}
