package database

import (
	"path/filepath"
	"testing"

	"github.com/contestreplay/replay-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	tests := []struct {
		name    string
		dbPath  string
		wantErr bool
	}{
		{
			name:    "successful connection with in-memory database",
			dbPath:  ":memory:",
			wantErr: false,
		},
		{
			name:    "successful connection with file database",
			dbPath:  filepath.Join(t.TempDir(), "test.db"),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := Initialize(tt.dbPath, false)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotNil(t, conn)
			assert.NotNil(t, conn.DB)

			if conn != nil {
				conn.Close()
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	assert.NoError(t, conn.HealthCheck())
}

func TestHealthCheckAfterClose(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)

	require.NoError(t, conn.Close())
	assert.Error(t, conn.HealthCheck())
}

func TestAutoMigrate(t *testing.T) {
	conn, err := Initialize(":memory:", false)
	require.NoError(t, err)
	defer conn.Close()

	err = conn.AutoMigrate(&models.Export{})
	require.NoError(t, err)

	assert.True(t, conn.Migrator().HasTable(&models.Export{}))
}
