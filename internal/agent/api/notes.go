package api

import (
	"context"
	"net/url"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// ListNotes возвращает заметки владельца токена.
func (c *Client) ListNotes(ctx context.Context, token string) ([]models.Note, error) {
	var resp []models.Note
	err := c.GetJSON(ctx, "/notes", &resp, token)
	return resp, err
}

// CreateNote создаёт заметку.
func (c *Client) CreateNote(ctx context.Context, token string, req models.CreateNoteRequest) (models.Note, error) {
	var resp models.Note
	err := c.PostJSON(ctx, "/notes", req, &resp, token)
	return resp, err
}

// UpdateNote частично обновляет заметку id. Пустые поля req сервер не меняет.
func (c *Client) UpdateNote(ctx context.Context, token, id string, req models.UpdateNoteRequest) (models.Note, error) {
	var resp models.Note
	err := c.PutJSON(ctx, "/notes/"+url.PathEscape(id), req, &resp, token)
	return resp, err
}

// DeleteNote удаляет заметку id и возвращает удалённую заметку.
func (c *Client) DeleteNote(ctx context.Context, token, id string) (models.DeleteNoteResponse, error) {
	var resp models.DeleteNoteResponse
	err := c.DeleteJSON(ctx, "/notes/"+url.PathEscape(id), &resp, token)
	return resp, err
}
