// Package middleware содержит HTTP middleware сервера.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// ctxKey используется как тип ключа для хранения значений в context.Context.
// Отдельный тип предотвращает коллизии ключей между пакетами.
type ctxKey string

// userIDKey — ключ контекста, под которым хранится ID аутентифицированного пользователя.
const userIDKey ctxKey = "user_id"

// DefaultTokenHeader — заголовок, в котором клиент передаёт токен сессии.
const DefaultTokenHeader = "x-auth-token"

// TokenVerifier проверяет токен и возвращает subject (ID пользователя).
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthGate пропускает к защищённым маршрутам только запросы с валидным токеном.
//
// Любая ошибка проверки отдаёт клиенту одинаковый 401 {"error":"unauthorized"},
// а конкретная причина пишется в лог на уровне WARN.
type AuthGate struct {
	verifier TokenVerifier
	header   string
	log      *logger.Logger
}

// NewAuthGate создаёт AuthGate. Пустой header заменяется на x-auth-token.
func NewAuthGate(verifier TokenVerifier, header string, log *logger.Logger) *AuthGate {
	header = strings.TrimSpace(header)
	if header == "" {
		header = DefaultTokenHeader
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &AuthGate{verifier: verifier, header: header, log: log}
}

// UserIDFromContext извлекает userID аутентифицированного пользователя из контекста.
//
// Возвращает:
//   - userID
//   - false, если пользователь не аутентифицирован
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// ContextWithUserID кладёт userID в контекст.
func ContextWithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// Authenticate достаёт токен из запроса и возвращает ID пользователя.
//
// Ошибки:
//   - ErrTokenMissing — заголовка нет или он пустой
//   - ошибки TokenVerifier (ErrTokenMalformed, ErrTokenSignature, ErrTokenExpired, ErrTokenClaims)
//   - ErrTokenClaims — subject не UUID
func (g *AuthGate) Authenticate(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get(g.header)
	if strings.EqualFold(g.header, "Authorization") {
		raw = ExtractBearer(raw)
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, serr.ErrTokenMissing
	}

	sub, err := g.verifier.Verify(raw)
	if err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(sub)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", serr.ErrTokenClaims)
	}
	return id, nil
}

// Middleware возвращает HTTP middleware для защищённых маршрутов.
//
// Middleware:
//   - читает токен из заголовка (по умолчанию x-auth-token)
//   - проверяет его через TokenVerifier
//   - сохраняет userID в context.Context
//
// В случае ошибки возвращает HTTP 401 Unauthorized и не вызывает next.
func (g *AuthGate) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := g.Authenticate(r)
			if err != nil {
				g.log.Warn("authentication failed",
					zap.String("reason", reason(err)),
					zap.String("method", r.Method),
					zap.String("uri", r.RequestURI),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeUnauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithUserID(r.Context(), userID)))
		})
	}
}

// ExtractBearer извлекает токен из заголовка Authorization.
//
// Ожидаемый формат:
//
//	Authorization: Bearer <token>
//
// Возвращает пустую строку, если формат некорректен.
func ExtractBearer(h string) string {
	h = strings.TrimSpace(h)
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// reason — короткая причина отказа для лога. Сам токен в лог не попадает.
func reason(err error) string {
	switch {
	case errors.Is(err, serr.ErrTokenMissing):
		return "missing credential"
	case errors.Is(err, serr.ErrTokenMalformed):
		return "malformed token"
	case errors.Is(err, serr.ErrTokenSignature):
		return "signature mismatch"
	case errors.Is(err, serr.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, serr.ErrTokenClaims):
		return "invalid claims"
	default:
		return "verification failed"
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.ErrorResponse{Error: serr.ErrUnauthorized.Error()})
}
