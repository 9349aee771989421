// HTTP-хендлеры регистрации и логина
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// Register обрабатывает регистрацию пользователя и сразу выдаёт токен.
//
// Ответы:
//   - 201 Created: регистрация успешна;
//   - 400 Bad Request: неверный JSON, невалидные данные или email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Register
// @Description  Creates a user account and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.RegisterRequest true "Register request"
// @Success      201 {object} models.AuthResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input, bad JSON or email already registered"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "register", err)
		return
	}

	sess, err := h.Svc.Auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}

	WriteJSON(w, http.StatusCreated, toAuthResponse(sess))
}

// Login обрабатывает вход пользователя.
//
// Ответы:
//   - 200 OK: успешный вход;
//   - 400 Bad Request: неверный JSON, невалидные данные или неверные учётные данные;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Login
// @Description  Authenticates a user by email and password and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body models.LoginRequest true "Login request"
// @Success      200 {object} models.AuthResponse
// @Failure      400 {object} models.ErrorResponse "Invalid input or invalid credentials"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "login", err)
		return
	}

	sess, err := h.Svc.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	WriteJSON(w, http.StatusOK, toAuthResponse(sess))
}
