// HTTP-хендлеры заметок
package api

import (
	"net/http"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// DeletedMessage — значение поля success в ответе на удаление.
const DeletedMessage = "Note has been deleted"

// ListNotes возвращает все заметки текущего пользователя.
//
// Пользователь определяется по токену (AuthGate).
// Заметки других пользователей в выборку не попадают.
//
// @Summary      List notes
// @Description  Returns all notes of the authenticated user in creation order.
// @Tags         notes
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200 {array}  models.Note
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	notes, err := h.Svc.Notes.List(r.Context(), userID)
	if err != nil {
		h.fail(w, r, "list notes", err)
		return
	}

	resp := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		resp = append(resp, toNoteDTO(n))
	}
	WriteJSON(w, http.StatusOK, resp)
}

// CreateNote создаёт заметку текущего пользователя.
//
// Владелец всегда берётся из токена, а не из тела запроса.
//
// @Summary      Create note
// @Description  Creates a note owned by the authenticated user. Tag defaults to "General".
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        request body models.CreateNoteRequest true "Create note request"
// @Success      200 {object} models.Note
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req models.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "create note", err)
		return
	}

	note, err := h.Svc.Notes.Create(r.Context(), userID, service.NoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		h.fail(w, r, "create note", err)
		return
	}

	WriteJSON(w, http.StatusOK, toNoteDTO(note))
}

// UpdateNote частично обновляет заметку. Пустые поля не изменяются.
// Вызывается только после NoteOwnership.
//
// @Summary      Update note
// @Description  Partially updates a note of the authenticated user. Empty fields are left unchanged.
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id path string true "Note ID"
// @Param        request body models.UpdateNoteRequest true "Update note request"
// @Success      200 {object} models.Note
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      403 {object} models.ErrorResponse "Note belongs to another user"
// @Failure      404 {object} models.ErrorResponse "Note not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /notes/{id} [put]
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	note, ok := noteFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	var req models.UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, "update note", err)
		return
	}

	updated, err := h.Svc.Notes.Update(r.Context(), note, service.NoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		h.fail(w, r, "update note", err)
		return
	}

	WriteJSON(w, http.StatusOK, toNoteDTO(updated))
}

// DeleteNote удаляет заметку и возвращает её в ответе.
// Вызывается только после NoteOwnership.
//
// @Summary      Delete note
// @Description  Deletes a note of the authenticated user and returns the deleted note.
// @Tags         notes
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id path string true "Note ID"
// @Success      200 {object} models.DeleteNoteResponse
// @Failure      400 {object} models.ErrorResponse "Invalid note id"
// @Failure      401 {object} models.ErrorResponse "Unauthorized"
// @Failure      403 {object} models.ErrorResponse "Note belongs to another user"
// @Failure      404 {object} models.ErrorResponse "Note not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /notes/{id} [delete]
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	note, ok := noteFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, serr.ErrUnauthorized)
		return
	}

	deleted, err := h.Svc.Notes.Delete(r.Context(), note)
	if err != nil {
		h.fail(w, r, "delete note", err)
		return
	}

	WriteJSON(w, http.StatusOK, models.DeleteNoteResponse{
		Success: DeletedMessage,
		Note:    toNoteDTO(deleted),
	})
}
