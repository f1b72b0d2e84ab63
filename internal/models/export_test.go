package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Export{}))
	return db
}

func TestExportBeforeCreate(t *testing.T) {
	db := newTestDB(t)

	export := &Export{
		ContestName: "cq-ww-cw-2024",
		StartIndex:  3,
		EndIndex:    7,
	}
	require.NoError(t, db.Create(export).Error)

	assert.NotEmpty(t, export.UUID)
	assert.Equal(t, ExportStatusPending, export.Status)
}

func TestExportUUIDPreserved(t *testing.T) {
	db := newTestDB(t)

	export := &Export{
		UUID:        "fixed-uuid",
		ContestName: "cq-ww-cw-2024",
		Status:      ExportStatusReady,
	}
	require.NoError(t, db.Create(export).Error)

	assert.Equal(t, "fixed-uuid", export.UUID)
	assert.Equal(t, ExportStatusReady, export.Status)
}

func TestExportContactCount(t *testing.T) {
	export := &Export{StartIndex: 5, EndIndex: 5}
	assert.Equal(t, 1, export.ContactCount())

	export = &Export{StartIndex: 0, EndIndex: 9}
	assert.Equal(t, 10, export.ContactCount())
}
