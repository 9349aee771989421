package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/api"
	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-inotebook/internal/agent/config"
	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// пароль с пробелами по краям, сервер принимает его как есть
const spacedPassword = "  spaced pass  "

// fakeServer — минимальная имитация сервера iNotebook.
type fakeServer struct {
	mu    sync.Mutex
	notes []models.Note
	calls []string
}

func (f *fakeServer) record(r *http.Request) {
	f.mu.Lock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()

	f := &fakeServer{}
	auth := models.AuthResponse{
		Token:     "tok-1",
		ExpiresAt: time.Now().Add(time.Hour).UTC(),
		User:      models.User{ID: "u1", Name: "Ana", Email: "a@x.com"},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "taken@x.com" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "already exists"})
			return
		}
		writeJSON(w, http.StatusCreated, auth)
	})
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Password != "Str0ng!pass" && req.Password != spacedPassword {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, auth)
	})
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
	})
	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.Header.Get(api.TokenHeader) != "tok-1" {
			writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "unauthorized"})
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, f.notes)
		case http.MethodPost:
			var req models.CreateNoteRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			tag := req.Tag
			if tag == "" {
				tag = "General"
			}
			n := models.Note{ID: "n1", OwnerID: "u1", Title: req.Title, Description: req.Description, Tag: tag, UpdatedAt: time.Now()}
			f.notes = append(f.notes, n)
			writeJSON(w, http.StatusOK, n)
		}
	})
	mux.HandleFunc("/notes/", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		id := r.URL.Path[len("/notes/"):]
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, n := range f.notes {
			if n.ID != id {
				continue
			}
			switch r.Method {
			case http.MethodPut:
				var req models.UpdateNoteRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				if req.Tag != "" {
					n.Tag = req.Tag
				}
				f.notes[i] = n
				writeJSON(w, http.StatusOK, n)
			case http.MethodDelete:
				f.notes = append(f.notes[:i], f.notes[i+1:]...)
				writeJSON(w, http.StatusOK, models.DeleteNoteResponse{Success: "Note has been deleted", Note: n})
			}
			return
		}
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func newApp(t *testing.T, serverURL string) *cli.App {
	t.Helper()
	return &cli.App{
		ServerURL: serverURL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     &config.Credentials{},
	}
}

func loggedIn(t *testing.T, serverURL string) *cli.App {
	t.Helper()
	app := newApp(t, serverURL)
	app.Creds = &config.Credentials{Token: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	return app
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// nil заставит cobra читать os.Args
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}
