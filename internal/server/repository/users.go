package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

// UsersRepository — хранилище учётных записей (PostgreSQL).
// Уникальность email обеспечивается индексом в БД, а не проверкой перед вставкой.
type UsersRepository struct {
	base
}

func NewUsersRepository(db *sql.DB, opts ...Option) *UsersRepository {
	return &UsersRepository{base: newBase(db, opts)}
}

// Create сохраняет пользователя. email должен быть уже нормализован.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят
//   - ErrInternal — ошибка базы данных
func (r *UsersRepository) Create(ctx context.Context, name, email, passwordHash string) (models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	u := models.User{Name: name, Email: email, PasswordHash: passwordHash}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, password_hash)
		 VALUES ($1,$2,$3)
		 RETURNING id, created_at`,
		name, email, passwordHash,
	).Scan(&u.ID, &u.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, serr.ErrAlreadyExists
		}
		return models.User{}, internal(err)
	}

	return u, nil
}

// GetByEmail ищет пользователя по нормализованному email.
//
// Ошибки:
//   - ErrNotFound — пользователя нет
//   - ErrInternal — ошибка базы данных
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email=$1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, internal(err)
	}

	return u, nil
}
