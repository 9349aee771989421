// Package service содержит бизнес-логику приложения (iNotebook).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Notes  NotesRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Auth   *AuthService
	Notes  *NotesService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен NotesService (лимиты полей и метка по умолчанию).
func NewServices(repos Repositories, hasher crypto.PasswordHasher, tokens TokenIssuer, cfg *config.Config) *Services {
	return &Services{
		Auth:   NewAuthService(repos.Users, hasher, tokens),
		Notes:  NewNotesService(repos.Notes, cfg.Notes),
		Health: NewHealthService(repos.Health),
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей (нужен для auth/register/login).
type UsersRepo interface {
	Create(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// NotesRepo — репозиторий заметок.
type NotesRepo interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description, tag string) (models.Note, error)
	GetByID(ctx context.Context, noteID uuid.UUID) (models.Note, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Note, error)
	Update(ctx context.Context, ownerID, noteID uuid.UUID, patch models.NotePatch) (models.Note, error)
	Delete(ctx context.Context, ownerID, noteID uuid.UUID) (models.Note, error)
}

// TokenIssuer выпускает токен сессии для пользователя.
type TokenIssuer interface {
	Issue(subjectID string) (crypto.Token, error)
}
