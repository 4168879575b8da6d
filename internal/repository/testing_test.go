package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"servic/internal/pkg/testdb"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, Migrate(db))
	return db
}
