package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	smodels "github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
)

type noteCtxKey struct{}

// NoteOwnership — middleware для маршрутов /notes/{id}.
//
// Работает после AuthGate:
//   - {id} не UUID — 400;
//   - заметки нет — 404;
//   - заметка чужая — 403 без содержимого заметки;
//   - иначе заметка кладётся в контекст и вызывается next.
func (h *Handler) NoteOwnership(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
			return
		}

		noteID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, fmt.Errorf("%w: invalid note id", serr.ErrInvalidInput))
			return
		}

		note, err := h.Svc.Notes.Authorize(r.Context(), userID, noteID)
		if err != nil {
			if errors.Is(err, serr.ErrForbidden) {
				h.Log.Warn("note access denied",
					zap.String("user_id", userID.String()),
					zap.String("note_id", noteID.String()),
					zap.String("method", r.Method),
				)
			}
			h.fail(w, r, "authorize note", err)
			return
		}

		ctx := context.WithValue(r.Context(), noteCtxKey{}, note)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// noteFromContext возвращает заметку, проверенную NoteOwnership.
func noteFromContext(ctx context.Context) (smodels.Note, bool) {
	n, ok := ctx.Value(noteCtxKey{}).(smodels.Note)
	return n, ok
}
