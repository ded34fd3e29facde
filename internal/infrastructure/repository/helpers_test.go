package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/rafflehub/rafflehub/internal/domain/raffle"
	"github.com/rafflehub/rafflehub/internal/infrastructure/lock"
	"github.com/rafflehub/rafflehub/internal/infrastructure/persistence/models"
	"github.com/rafflehub/rafflehub/internal/shared/logger"
)

var testNow = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func testRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseBackoff: time.Millisecond, MaxBackoff: 5 * time.Millisecond}
}

func newTestRaffleRepo(db *gorm.DB) *RaffleRepositoryImpl {
	return NewRaffleRepository(db, lock.NewKeyedLocker(time.Second), testRetry(), logger.NewDiscardLogger())
}

// createActiveRaffle stores a raffle that already passed approval.
func createActiveRaffle(t *testing.T, repo *RaffleRepositoryImpl, total int) *raffle.Raffle {
	t.Helper()
	r, err := raffle.NewRaffle(1, 1, int64(total)*50, total, false, "", testNow)
	require.NoError(t, err)
	_, err = r.Submit(testNow)
	require.NoError(t, err)
	_, err = r.Approve(testNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), r))
	return r
}
