// Методы клиента для регистрации, входа и health-check.
package api

import (
	"context"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// Register регистрирует пользователя и возвращает токен сессии.
//
// Метод отправляет POST запрос на /register.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON(ctx, "/register", models.RegisterRequest{Name: name, Email: email, Password: password}, &resp, "")
	return resp, err
}

// Login выполняет вход пользователя и получает токен сессии.
//
// Метод отправляет POST запрос на /login.
func (c *Client) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.PostJSON(ctx, "/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Health проверяет доступность сервера.
func (c *Client) Health(ctx context.Context) (models.HealthResponse, error) {
	var resp models.HealthResponse
	err := c.GetJSON(ctx, "/health", &resp, "")
	return resp, err
}
