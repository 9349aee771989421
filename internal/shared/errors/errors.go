// Package errors содержит общие доменные ошибки приложения.
//
// Эти ошибки используются в service и repository слоях,
// оборачиваются через %w и маппятся на HTTP-статусы в api слое.
package errors

import "errors"

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Неверные учётные данные
	ErrInvalidCredentials = errors.New("invalid credentials")
	// Получена непредвиденная ошибка
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Неавторизован
	ErrUnauthorized = errors.New("unauthorized")
	// Авторизован, но ресурс чужой
	ErrForbidden = errors.New("forbidden")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Тело запроса превышает лимит
	ErrPayloadTooLarge = errors.New("payload too large")
)

// ошибки проверки токена сессии
var (
	ErrTokenMissing   = errors.New("missing credential")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenClaims    = errors.New("token claims invalid")
)

// только для заметок
var (
	ErrUserIDEmpty = errors.New("user id cannot be empty")
	ErrNoteIDEmpty = errors.New("note id cannot be empty")
)

// IsTokenError сообщает, относится ли ошибка к проверке токена.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMissing) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenClaims)
}
