package tests

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"
)

func TestPingWithRetry_SucceedsAfterFailures(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	cfg := config.DBConfig{ConnectRetries: 3, RetryDelay: time.Millisecond}
	err = config.PingWithRetry(context.Background(), db, cfg, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPingWithRetry_GivesUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	pingErr := errors.New("connection refused")
	mock.ExpectPing().WillReturnError(pingErr)
	mock.ExpectPing().WillReturnError(pingErr)

	cfg := config.DBConfig{ConnectRetries: 2, RetryDelay: time.Millisecond}
	err = config.PingWithRetry(context.Background(), db, cfg, logger.NewNop())
	require.Error(t, err)
	require.ErrorIs(t, err, pingErr)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyPool_DoesNotPanicOnZeroValues(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	config.ApplyPool(db, config.DBConfig{})
	config.ApplyPool(db, config.DBConfig{MaxOpenConns: 5, MaxIdleConns: 2, ConnMaxLifetime: time.Minute})

	require.Equal(t, 5, db.Stats().MaxOpenConnections)
}

// Интеграционный тест с настоящей DB
func TestOpenDB_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	db, err := config.OpenDB(context.Background(),
		config.DBConfig{DSN: dsn, ConnectRetries: 3, RetryDelay: 100 * time.Millisecond},
		config.MigrationsConfig{Enabled: false},
		logger.NewNop(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var x int
	err = db.QueryRow("SELECT 1").Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)
}
