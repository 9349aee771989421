// Package models содержит модели HTTP API, общие для сервера и CLI-клиента.
package models

import "time"

// User — публичное представление пользователя. Хэш пароля сюда не попадает.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Note — плоская модель заметки, используемая в HTTP API.
//
// Поля:
//   - ID: уникальный идентификатор заметки (UUID в виде строки)
//   - OwnerID: идентификатор владельца, неизменяем после создания
//   - Tag: метка заметки, по умолчанию "General"
//   - CreatedAt/UpdatedAt: серверное время создания и изменения
type Note struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterRequest — тело запроса регистрации.
//
// Используется в:
//
//	POST /register
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest — тело запроса входа.
//
// Используется в:
//
//	POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse — ответ на регистрацию и вход.
//
// Token передаётся в заголовке x-auth-token при обращении к /notes.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}

// CreateNoteRequest — запрос на создание заметки.
//
// Используется в:
//
//	POST /notes
//
// Tag опционален, пустое значение заменяется на "General".
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag,omitempty"`
}

// UpdateNoteRequest — частичное обновление заметки.
//
// Используется в:
//
//	PUT /notes/{id}
//
// Пустые поля не изменяются.
type UpdateNoteRequest struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Tag         string `json:"tag,omitempty"`
}

// DeleteNoteResponse — ответ на удаление заметки, содержит удалённую заметку.
type DeleteNoteResponse struct {
	Success string `json:"success"`
	Note    Note   `json:"note"`
}

// HealthResponse — ответ health-check.
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse — стандартный формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}
