// Package http реализует маршрутизацию HTTP-слоя сервера iNotebook.
//
// Пакет отвечает за:
//   - регистрацию HTTP-маршрутов и настройку роутера (chi);
//   - логирование выполнения HTTP-запросов;
//   - порядок проверок для заметок: AuthGate -> NoteOwnership -> хендлер.
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/api"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"
)

// Options — настройки роутера из секции server.
type Options struct {
	// TrustProxy включает chi RealIP (X-Forwarded-For / X-Real-IP).
	TrustProxy bool
	// MaxBodyBytes — лимит тела запроса, 0 — без лимита.
	MaxBodyBytes int64
	// AccessLog — логгер access-лога. nil — файловый логгер по умолчанию.
	AccessLog *logger.Logger
}

// NewRouter создаёт и настраивает HTTP-роутер сервера.
//
// Роутер использует chi.Router и регистрирует:
//   - публичные эндпоинты /register и /login (и /api/auth/*);
//   - защищённые эндпоинты /notes (и /api/notes);
//   - /health и /swagger/*.
func NewRouter(h *api.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	// логирование всех запросов
	r.Use(middleware.LoggerMiddleware(opts.AccessLog))
	r.Use(chimw.Recoverer)
	r.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusNotFound, fmt.Errorf("route %s not found", r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		api.WriteError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method))
	})

	// добавляем swagger
	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/health", h.Health)

	// Публичные пути
	mountAuth(r, h)
	r.Route("/api/auth", func(r chi.Router) {
		mountAuth(r, h)
	})

	// защищены пути
	r.Group(func(r chi.Router) {
		// проверка токена сессии
		r.Use(h.Gate.Middleware())

		r.Route("/notes", func(r chi.Router) {
			mountNotes(r, h)
		})
		r.Route("/api/notes", func(r chi.Router) {
			mountNotes(r, h)

			// старые пути клиента
			r.Get("/fetchallnotes", h.ListNotes)
			r.Post("/addnote", h.CreateNote)
			r.With(h.NoteOwnership).Put("/updatenote/{id}", h.UpdateNote)
			r.With(h.NoteOwnership).Delete("/deletenote/{id}", h.DeleteNote)
		})
	})

	return r
}

func mountAuth(r chi.Router, h *api.Handler) {
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
}

func mountNotes(r chi.Router, h *api.Handler) {
	r.Get("/", h.ListNotes)
	r.Post("/", h.CreateNote)
	// сначала проверка владельца, потом изменение
	r.With(h.NoteOwnership).Put("/{id}", h.UpdateNote)
	r.With(h.NoteOwnership).Delete("/{id}", h.DeleteNote)
}
