package tests

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/repository"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/utils"
)

var noteCols = []string{"id", "owner_id", "title", "description", "tag", "created_at", "updated_at"}

func TestNotesRepository_Create_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	owner := uuid.New()
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`INSERT INTO notes`).
		WithArgs(owner.String(), "Groceries", "milk, eggs", "General").
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(id.String(), owner.String(), "Groceries", "milk, eggs", "General", now, now))

	n, err := repo.Create(context.Background(), owner, "Groceries", "milk, eggs", "General")
	require.NoError(t, err)
	require.Equal(t, id, n.ID)
	require.Equal(t, owner, n.OwnerID)
	require.Equal(t, "General", n.Tag)
	require.Equal(t, now, n.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotesRepository_Create_InternalError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	mock.ExpectQuery(`INSERT INTO notes`).WillReturnError(errors.New("db error"))

	_, err = repo.Create(context.Background(), uuid.New(), "t", "d", "General")
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestNotesRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	owner := uuid.New()
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM notes WHERE id`).
		WithArgs(id.String()).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(id.String(), owner.String(), "t", "d", "Work", now, now))

	n, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, owner, n.OwnerID)
	require.Equal(t, "Work", n.Tag)

	mock.ExpectQuery(`SELECT (.+) FROM notes WHERE id`).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotesRepository_ListByOwner_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	owner := uuid.New()
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Minute)

	mock.ExpectQuery(`SELECT (.+) FROM notes\s+WHERE owner_id = \$1\s+ORDER BY created_at ASC`).
		WithArgs(owner.String()).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(uuid.NewString(), owner.String(), "first", "d1", "General", first, first).
			AddRow(uuid.NewString(), owner.String(), "second", "d2", "Work", second, second))

	notes, err := repo.ListByOwner(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	require.Equal(t, "first", notes[0].Title)
	require.Equal(t, "second", notes[1].Title)

	require.NoError(t, mock.ExpectationsWereMet())
}

// у пользователя нет заметок — пустой список, а не nil
func TestNotesRepository_ListByOwner_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM notes`).
		WillReturnRows(sqlmock.NewRows(noteCols))

	notes, err := repo.ListByOwner(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, notes)
	require.Empty(t, notes)
}

func TestNotesRepository_ListByOwner_RowError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	rows := sqlmock.NewRows(noteCols).
		AddRow(uuid.NewString(), uuid.NewString(), "t", "d", "General", time.Now(), time.Now()).
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(`SELECT (.+) FROM notes`).WillReturnRows(rows)

	_, err = repo.ListByOwner(context.Background(), uuid.New())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestNotesRepository_Update_Partial(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	owner := uuid.New()
	id := uuid.New()
	now := time.Now().UTC()

	// меняем только заголовок: description и tag уходят как NULL и остаются прежними
	mock.ExpectQuery(`UPDATE notes\s+SET title = COALESCE\(\$3, title\)`).
		WithArgs(id.String(), owner.String(), "new title", nil, nil).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(id.String(), owner.String(), "new title", "old description", "General", now, now))

	n, err := repo.Update(context.Background(), owner, id, models.NotePatch{Title: utils.Ptr("new title")})
	require.NoError(t, err)
	require.Equal(t, "new title", n.Title)
	require.Equal(t, "old description", n.Description)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotesRepository_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	mock.ExpectQuery(`UPDATE notes`).WillReturnError(sql.ErrNoRows)

	_, err = repo.Update(context.Background(), uuid.New(), uuid.New(), models.NotePatch{Tag: utils.Ptr("x")})
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestNotesRepository_Delete_OK(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	owner := uuid.New()
	id := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`DELETE FROM notes\s+WHERE id = \$1 AND owner_id = \$2`).
		WithArgs(id.String(), owner.String()).
		WillReturnRows(sqlmock.NewRows(noteCols).
			AddRow(id.String(), owner.String(), "t", "d", "General", now, now))

	n, err := repo.Delete(context.Background(), owner, id)
	require.NoError(t, err)
	require.Equal(t, id, n.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotesRepository_Delete_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewNotesRepository(db)

	mock.ExpectQuery(`DELETE FROM notes`).WillReturnError(sql.ErrNoRows)
	_, err = repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, serr.ErrNotFound)

	mock.ExpectQuery(`DELETE FROM notes`).WillReturnError(sql.ErrConnDone)
	_, err = repo.Delete(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, serr.ErrInternal)
}
