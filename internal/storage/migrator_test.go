package storage

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMigrator_ListsEmbeddedMigrations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	m, err := NewMigrator(db, zap.NewNop())
	require.NoError(t, err)

	sources := m.Sources()
	require.NotEmpty(t, sources)
	assert.Equal(t, int64(1), sources[0].Version)
	assert.Contains(t, sources[0].Path, "00001_create_calculations.sql")
	for i := 1; i < len(sources); i++ {
		assert.Greater(t, sources[i].Version, sources[i-1].Version)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewMigrator_RequiresDB(t *testing.T) {
	_, err := NewMigrator(nil, zap.NewNop())
	assert.Error(t, err)
}
