package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

const noteColumns = `id, owner_id, title, description, tag, created_at, updated_at`

// NotesRepository реализует доступ к хранилищу заметок (PostgreSQL).
//
// Запросы изменения и удаления всегда ограничены owner_id.
type NotesRepository struct {
	base
}

// NewNotesRepository создаёт новый экземпляр NotesRepository.
func NewNotesRepository(db *sql.DB, opts ...Option) *NotesRepository {
	return &NotesRepository{base: newBase(db, opts)}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Description, &n.Tag, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// Create сохраняет новую заметку. id и временные метки выставляет БД.
//
// Ошибки:
//   - ErrInternal — ошибка базы данных
func (r *NotesRepository) Create(ctx context.Context, ownerID uuid.UUID, title, description, tag string) (models.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	n, err := scanNote(r.db.QueryRowContext(ctx, `
		INSERT INTO notes (owner_id, title, description, tag)
		VALUES ($1, $2, $3, $4)
		RETURNING `+noteColumns,
		ownerID, title, description, tag,
	))
	if err != nil {
		return models.Note{}, internal(err)
	}
	return n, nil
}

// GetByID возвращает заметку по id без учёта владельца.
// Проверка владельца — ответственность сервисного слоя.
//
// Ошибки:
//   - ErrNotFound — заметки нет
//   - ErrInternal — ошибка базы данных
func (r *NotesRepository) GetByID(ctx context.Context, noteID uuid.UUID) (models.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	n, err := scanNote(r.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = $1`,
		noteID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, internal(err)
	}
	return n, nil
}

// ListByOwner возвращает все заметки пользователя в порядке создания.
// Если заметок нет — пустой слайс, не nil.
func (r *NotesRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+noteColumns+`
		FROM notes
		WHERE owner_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, internal(err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, internal(err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, internal(err)
	}

	return notes, nil
}

// Update частично обновляет заметку владельца: nil-поля патча остаются прежними.
// updated_at выставляется всегда.
//
// Ошибки:
//   - ErrNotFound — заметки нет или она принадлежит другому пользователю
//   - ErrInternal — ошибка базы данных
func (r *NotesRepository) Update(ctx context.Context, ownerID, noteID uuid.UUID, patch models.NotePatch) (models.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	n, err := scanNote(r.db.QueryRowContext(ctx, `
		UPDATE notes
		SET title = COALESCE($3, title),
		    description = COALESCE($4, description),
		    tag = COALESCE($5, tag),
		    updated_at = now()
		WHERE id = $1 AND owner_id = $2
		RETURNING `+noteColumns,
		noteID, ownerID,
		nullString(patch.Title),
		nullString(patch.Description),
		nullString(patch.Tag),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, internal(err)
	}
	return n, nil
}

// Delete удаляет заметку владельца и возвращает её последнее состояние.
//
// Ошибки:
//   - ErrNotFound — заметки нет или она принадлежит другому пользователю
//   - ErrInternal — ошибка базы данных
func (r *NotesRepository) Delete(ctx context.Context, ownerID, noteID uuid.UUID) (models.Note, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	n, err := scanNote(r.db.QueryRowContext(ctx, `
		DELETE FROM notes
		WHERE id = $1 AND owner_id = $2
		RETURNING `+noteColumns,
		noteID, ownerID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Note{}, serr.ErrNotFound
		}
		return models.Note{}, internal(err)
	}
	return n, nil
}
