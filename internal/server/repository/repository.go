// Package repository содержит реализации слоя доступа к данным (Repository layer).
//
// Репозитории инкапсулируют работу с БД и не содержат бизнес-логики.
// Все ошибки приводятся к доменным ошибкам из internal/shared/errors.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"

	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

// pgUniqueViolation — код ошибки PostgreSQL при нарушении уникальности.
const pgUniqueViolation = "23505"

// Option настраивает репозиторий.
type Option func(*base)

// WithQueryTimeout ограничивает время каждого запроса к БД.
// Нулевое значение — без ограничения (действует только контекст запроса).
func WithQueryTimeout(d time.Duration) Option {
	return func(b *base) {
		b.timeout = d
	}
}

// base — общая часть всех репозиториев.
type base struct {
	db      *sql.DB
	timeout time.Duration
}

func newBase(db *sql.DB, opts []Option) base {
	b := base{db: db}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b base) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, b.timeout)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// internal оборачивает ошибку драйвера в ErrInternal, сохраняя текст причины для логов.
func internal(err error) error {
	return fmt.Errorf("%w: %v", serr.ErrInternal, err)
}

// nullString — пустой указатель превращается в NULL.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
