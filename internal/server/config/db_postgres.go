package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avast/retry-go/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"

	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v4/stdlib"
)

// OpenDB открывает пул соединений с PostgreSQL (драйвер pgx),
// дожидается доступности базы и, если включено, применяет миграции.
//
// Возвращённый *sql.DB закрывает вызывающая сторона.
func OpenDB(ctx context.Context, cfg DBConfig, mig MigrationsConfig, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Error("error to connect db", zap.Error(err))
		return nil, err
	}
	ApplyPool(db, cfg)

	if err := PingWithRetry(ctx, db, cfg, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	if mig.Enabled {
		if err := Migrate(db, mig.Path, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// ApplyPool переносит настройки пула из конфига. Нулевые значения не трогаем.
func ApplyPool(db *sql.DB, cfg DBConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// PingWithRetry проверяет доступность базы, повторяя попытки:
// при старте в docker-compose postgres часто поднимается позже сервера.
func PingWithRetry(ctx context.Context, db *sql.DB, cfg DBConfig, log *logger.Logger) error {
	attempts := cfg.ConnectRetries
	if attempts == 0 {
		attempts = 1
	}

	err := retry.Do(
		func() error { return db.PingContext(ctx) },
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(cfg.RetryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Warn("failed ping to database",
				zap.Uint("attempt", attempt),
				zap.Error(err),
			)
		}),
	)
	if err != nil {
		log.Error("error check db connection", zap.Error(err))
		return fmt.Errorf("ping to database: %w", err)
	}
	return nil
}

// Migrate применяет миграции из sourceURL (например file://migrations/postgres).
// Если миграции уже применены, migrate.ErrNoChange ошибкой не считается.
func Migrate(db *sql.DB, sourceURL string, log *logger.Logger) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Error("error creating migration driver", zap.Error(err))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		log.Error("error creating migrations", zap.Error(err))
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error("error applying migrations", zap.Error(err))
		return err
	}

	log.Info("migrations applied successfully")
	return nil
}
