// Package api реализует HTTP-слой сервера iNotebook.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения;
//   - проверку владельца заметки перед изменением и удалением.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	smodels "github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
// Вынес Content-Type и JSON для удобства
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок;
//   - Gate: проверка токена сессии для защищённых маршрутов.
//
// Методы Handler используются роутером для обработки HTTP-запросов.
type Handler struct {
	Svc  *service.Services
	Log  *logger.Logger
	Gate *middleware.AuthGate
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.Logger, gate *middleware.AuthGate) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		Svc:  svc,
		Log:  log,
		Gate: gate,
	}
}

// Вспомогательная функция вывода ошибки
func WriteError(w http.ResponseWriter, status int, err error) {
	WriteJSON(w, status, models.ErrorResponse{
		Error: err.Error(),
	})
}

// WriteJSON пишет v как JSON с заданным статусом.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса. Пустое или битое тело — ErrBadJSON,
// превышение лимита BodyLimit — ErrPayloadTooLarge.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.ErrPayloadTooLarge
		}
		return serr.ErrBadJSON
	}
	return nil
}

// fail маппит доменную ошибку в HTTP-ответ.
//
// Тексты ошибок валидации отдаются клиенту как есть,
// внутренние причины только пишутся в лог.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, serr.ErrBadJSON),
		errors.Is(err, serr.ErrInvalidInput),
		errors.Is(err, serr.ErrInvalidCredentials),
		errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrPayloadTooLarge):
		WriteError(w, http.StatusRequestEntityTooLarge, serr.ErrPayloadTooLarge)
	case errors.Is(err, serr.ErrUnauthorized),
		errors.Is(err, serr.ErrUserIDEmpty),
		serr.IsTokenError(err):
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
	case errors.Is(err, serr.ErrForbidden):
		WriteError(w, http.StatusForbidden, serr.ErrForbidden)
	case errors.Is(err, serr.ErrNotFound), errors.Is(err, serr.ErrNoteIDEmpty):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	default:
		h.Log.Error(op+" failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
		)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

func toUserDTO(u smodels.User) models.User {
	return models.User{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}

func toNoteDTO(n smodels.Note) models.Note {
	return models.Note{
		ID:          n.ID.String(),
		OwnerID:     n.OwnerID.String(),
		Title:       n.Title,
		Description: n.Description,
		Tag:         n.Tag,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toAuthResponse(s service.Session) models.AuthResponse {
	return models.AuthResponse{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		User:      toUserDTO(s.User),
	}
}
