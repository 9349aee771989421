package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/utils"
)

// NotesService — бизнес-логика заметок.
// Каждая операция выполняется от имени вызывающего пользователя;
// изменять и удалять можно только свои заметки.
type NotesService struct {
	repo   NotesRepo
	limits config.NotesConfig
}

// NewNotesService создаёт NotesService. Нулевые лимиты заменяются значениями по умолчанию.
func NewNotesService(repo NotesRepo, limits config.NotesConfig) *NotesService {
	if limits.DefaultTag == "" {
		limits.DefaultTag = models.DefaultTag
	}
	if limits.MaxTitleLen <= 0 {
		limits.MaxTitleLen = 200
	}
	if limits.MaxDescriptionLen <= 0 {
		limits.MaxDescriptionLen = 10000
	}
	if limits.MaxTagLen <= 0 {
		limits.MaxTagLen = 50
	}
	return &NotesService{repo: repo, limits: limits}
}

// NoteInput — поля заметки от клиента.
type NoteInput struct {
	Title       string
	Description string
	Tag         string
}

// Create создаёт заметку для ownerID.
//
// title и description обязательны (после обрезки пробелов),
// пустой tag заменяется на метку по умолчанию.
func (s *NotesService) Create(ctx context.Context, ownerID uuid.UUID, in NoteInput) (models.Note, error) {
	if ownerID == uuid.Nil {
		return models.Note{}, serr.ErrUserIDEmpty
	}

	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	tag := strings.TrimSpace(in.Tag)

	if title == "" {
		return models.Note{}, fmt.Errorf("%w: title is required", serr.ErrInvalidInput)
	}
	if description == "" {
		return models.Note{}, fmt.Errorf("%w: description is required", serr.ErrInvalidInput)
	}
	if tag == "" {
		tag = s.limits.DefaultTag
	}
	if err := s.checkLimits(&title, &description, &tag); err != nil {
		return models.Note{}, err
	}

	return s.repo.Create(ctx, ownerID, title, description, tag)
}

// List возвращает заметки пользователя в порядке создания.
func (s *NotesService) List(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error) {
	if ownerID == uuid.Nil {
		return nil, serr.ErrUserIDEmpty
	}
	return s.repo.ListByOwner(ctx, ownerID)
}

// Authorize проверяет, что заметка существует и принадлежит callerID.
//
// Ошибки:
//   - ErrNotFound — заметки нет
//   - ErrForbidden — заметка чужая
func (s *NotesService) Authorize(ctx context.Context, callerID, noteID uuid.UUID) (models.Note, error) {
	if callerID == uuid.Nil {
		return models.Note{}, serr.ErrUserIDEmpty
	}
	if noteID == uuid.Nil {
		return models.Note{}, serr.ErrNoteIDEmpty
	}

	n, err := s.repo.GetByID(ctx, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if n.OwnerID != callerID {
		return models.Note{}, serr.ErrForbidden
	}
	return n, nil
}

// Update частично обновляет заметку, уже прошедшую Authorize.
// Меняются только непустые поля; если менять нечего, заметка возвращается как есть.
func (s *NotesService) Update(ctx context.Context, note models.Note, in NoteInput) (models.Note, error) {
	patch := models.NotePatch{
		Title:       utils.NonEmpty(in.Title),
		Description: utils.NonEmpty(in.Description),
		Tag:         utils.NonEmpty(in.Tag),
	}
	if patch.Empty() {
		return note, nil
	}
	if err := s.checkLimits(patch.Title, patch.Description, patch.Tag); err != nil {
		return models.Note{}, err
	}

	return s.repo.Update(ctx, note.OwnerID, note.ID, patch)
}

// Delete удаляет заметку, уже прошедшую Authorize, и возвращает её.
func (s *NotesService) Delete(ctx context.Context, note models.Note) (models.Note, error) {
	return s.repo.Delete(ctx, note.OwnerID, note.ID)
}

func (s *NotesService) checkLimits(title, description, tag *string) error {
	if title != nil && utf8.RuneCountInString(*title) > s.limits.MaxTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", serr.ErrInvalidInput, s.limits.MaxTitleLen)
	}
	if description != nil && utf8.RuneCountInString(*description) > s.limits.MaxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", serr.ErrInvalidInput, s.limits.MaxDescriptionLen)
	}
	if tag != nil && utf8.RuneCountInString(*tag) > s.limits.MaxTagLen {
		return fmt.Errorf("%w: tag must be at most %d characters", serr.ErrInvalidInput, s.limits.MaxTagLen)
	}
	return nil
}
