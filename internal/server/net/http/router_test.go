package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/server/api"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/middleware"
	smodels "github.com/IvanChernomyrdin/go-inotebook/internal/server/models"
	"github.com/IvanChernomyrdin/go-inotebook/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-inotebook/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// memUsers — in-memory UsersRepo.
type memUsers struct {
	mu      sync.Mutex
	byEmail map[string]smodels.User
}

func (m *memUsers) Create(_ context.Context, name, email, hash string) (smodels.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[email]; ok {
		return smodels.User{}, serr.ErrAlreadyExists
	}
	u := smodels.User{ID: uuid.New(), Name: name, Email: email, PasswordHash: hash, CreatedAt: time.Now()}
	m.byEmail[email] = u
	return u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (smodels.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byEmail[email]
	if !ok {
		return smodels.User{}, serr.ErrNotFound
	}
	return u, nil
}

// memNotes — in-memory NotesRepo.
type memNotes struct {
	mu    sync.Mutex
	seq   int
	notes map[uuid.UUID]smodels.Note
	order map[uuid.UUID]int
}

func (m *memNotes) Create(_ context.Context, ownerID uuid.UUID, title, description, tag string) (smodels.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	n := smodels.Note{
		ID: uuid.New(), OwnerID: ownerID,
		Title: title, Description: description, Tag: tag,
		CreatedAt: now, UpdatedAt: now,
	}
	m.seq++
	m.notes[n.ID] = n
	m.order[n.ID] = m.seq
	return n, nil
}

func (m *memNotes) GetByID(_ context.Context, id uuid.UUID) (smodels.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok {
		return smodels.Note{}, serr.ErrNotFound
	}
	return n, nil
}

func (m *memNotes) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]smodels.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]smodels.Note, 0)
	for _, n := range m.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *memNotes) Update(_ context.Context, ownerID, id uuid.UUID, p smodels.NotePatch) (smodels.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return smodels.Note{}, serr.ErrNotFound
	}
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Description != nil {
		n.Description = *p.Description
	}
	if p.Tag != nil {
		n.Tag = *p.Tag
	}
	n.UpdatedAt = time.Now()
	m.notes[id] = n
	return n, nil
}

func (m *memNotes) Delete(_ context.Context, ownerID, id uuid.UUID) (smodels.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.notes[id]
	if !ok || n.OwnerID != ownerID {
		return smodels.Note{}, serr.ErrNotFound
	}
	delete(m.notes, id)
	return n, nil
}

type okHealth struct{}

func (okHealth) Ping(context.Context) error { return nil }

func newTestRouter(t *testing.T) (http.Handler, *memNotes) {
	t.Helper()

	cfg := &config.Config{
		Notes: config.NotesConfig{DefaultTag: smodels.DefaultTag, MaxTitleLen: 200, MaxDescriptionLen: 10000, MaxTagLen: 50},
	}

	hasher, err := crypto.NewPasswordHasher("bcrypt", 4, crypto.Argon2Params{})
	require.NoError(t, err)
	tokens, err := crypto.NewTokenManager(crypto.JWTConfig{
		Issuer:     "inotebook",
		Audience:   "inotebook-clients",
		SigningKey: "router-test-signing-key-0123456789abcdef",
		TTL:        time.Hour,
	})
	require.NoError(t, err)

	notes := &memNotes{notes: map[uuid.UUID]smodels.Note{}, order: map[uuid.UUID]int{}}
	svc := service.NewServices(service.Repositories{
		Users:  &memUsers{byEmail: map[string]smodels.User{}},
		Notes:  notes,
		Health: okHealth{},
	}, hasher, tokens, cfg)

	log := logger.NewNop()
	gate := middleware.NewAuthGate(tokens, middleware.DefaultTokenHeader, log)
	h := api.NewHandler(svc, log, gate)

	return NewRouter(h, Options{MaxBodyBytes: 1 << 20, AccessLog: log}), notes
}

func do(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.DefaultTokenHeader, token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func register(t *testing.T, router http.Handler, name, email, password string) models.AuthResponse {
	t.Helper()

	rr := do(t, router, http.MethodPost, "/register", "", models.RegisterRequest{Name: name, Email: email, Password: password})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func TestRouter_NotesFlow(t *testing.T) {
	router, notes := newTestRouter(t)

	ana := register(t, router, "Ana", "a@x.com", "Str0ng!pass")
	assert.Equal(t, "a@x.com", ana.User.Email)

	// повторная регистрация того же email
	rr := do(t, router, http.MethodPost, "/register", "", models.RegisterRequest{Name: "Ana", Email: "A@X.com", Password: "Str0ng!pass"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, router, http.MethodPost, "/login", "", models.LoginRequest{Email: "a@x.com", Password: "Str0ng!pass"})
	require.Equal(t, http.StatusOK, rr.Code)
	var login models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &login))
	assert.Equal(t, ana.User.ID, login.User.ID)

	rr = do(t, router, http.MethodPost, "/login", "", models.LoginRequest{Email: "a@x.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// создание заметки, метка по умолчанию
	rr = do(t, router, http.MethodPost, "/notes", login.Token, models.CreateNoteRequest{Title: "Groceries", Description: "milk, eggs"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))
	assert.Equal(t, smodels.DefaultTag, note.Tag)
	assert.Equal(t, ana.User.ID, note.OwnerID)

	// чужой пользователь не может удалить заметку
	ben := register(t, router, "Ben", "b@x.com", "An0ther!pass")
	rr = do(t, router, http.MethodDelete, "/notes/"+note.ID, ben.Token, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.JSONEq(t, `{"error":"forbidden"}`, rr.Body.String())
	_, err := notes.GetByID(context.Background(), uuid.MustParse(note.ID))
	require.NoError(t, err)

	rr = do(t, router, http.MethodPut, "/notes/"+note.ID, ben.Token, models.UpdateNoteRequest{Title: "hacked"})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Ben видит только свои заметки
	rr = do(t, router, http.MethodGet, "/notes", ben.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	// без токена
	rr = do(t, router, http.MethodGet, "/notes", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"error":"unauthorized"}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/notes", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	// владелец обновляет
	rr = do(t, router, http.MethodPut, "/notes/"+note.ID, ana.Token, models.UpdateNoteRequest{Tag: "Shopping"})
	require.Equal(t, http.StatusOK, rr.Code)
	var updated models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Groceries", updated.Title)
	assert.Equal(t, "Shopping", updated.Tag)

	// владелец удаляет
	rr = do(t, router, http.MethodDelete, "/notes/"+note.ID, ana.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var del models.DeleteNoteResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &del))
	assert.Equal(t, api.DeletedMessage, del.Success)
	assert.Equal(t, note.ID, del.Note.ID)

	rr = do(t, router, http.MethodDelete, "/notes/"+note.ID, ana.Token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, router, http.MethodDelete, "/notes/not-a-uuid", ana.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRouter_APIPrefixRoutes(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "Str0ng!pass"})
	require.Equal(t, http.StatusCreated, rr.Code)
	var auth models.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auth))

	rr = do(t, router, http.MethodPost, "/api/notes/addnote", auth.Token, models.CreateNoteRequest{Title: "t", Description: "d", Tag: "Work"})
	require.Equal(t, http.StatusOK, rr.Code)
	var note models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &note))

	rr = do(t, router, http.MethodGet, "/api/notes/fetchallnotes", auth.Token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var list []models.Note
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Work", list[0].Tag)

	rr = do(t, router, http.MethodPut, "/api/notes/updatenote/"+note.ID, auth.Token, models.UpdateNoteRequest{Title: "t2"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, router, http.MethodDelete, "/api/notes/"+note.ID, auth.Token, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouter_HealthAndNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = do(t, router, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"route /nope not found"}`, rr.Body.String())
}

func TestRouter_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t)

	big := make([]byte, 2<<20)
	for i := range big {
		big[i] = 'a'
	}
	rr := do(t, router, http.MethodPost, "/register", "", models.RegisterRequest{Name: string(big), Email: "a@x.com", Password: "Str0ng!pass"})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}
