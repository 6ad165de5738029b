package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/forum-news-api/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*database.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return database.Wrap(sqlDB, zerolog.Nop()), mock
}
