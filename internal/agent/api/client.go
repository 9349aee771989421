// Package api содержит HTTP-клиент для взаимодействия с сервером iNotebook.
//
// Клиент инкапсулирует базовый URL сервера и настроенный http.Client,
// предоставляя методы для отправки JSON-запросов (POST/GET/PUT/DELETE)
// с авторизацией через заголовок x-auth-token.
//
// Особенности:
//   - baseURL нормализуется (обрезаются завершающие "/").
//   - По умолчанию добавляется заголовок Accept: application/json.
//   - Заголовок Content-Type: application/json добавляется только при наличии тела запроса.
//   - При ответах 204 No Content тело не читается и это считается успехом.
//   - Пустое тело ответа (EOF при декодировании) не считается ошибкой.
//   - При ошибочных ответах (не 2xx) возвращается *APIError с кодом и текстом ошибки сервера.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/models"
)

// TokenHeader — заголовок, в котором сервер ждёт токен сессии.
const TokenHeader = "x-auth-token"

// Client реализует HTTP-клиент для общения с сервером iNotebook.
//
// Поля:
//   - baseURL: базовый адрес сервера без завершающего слэша.
//   - http: настроенный http.Client (таймаут, транспорт, TLS).
type Client struct {
	baseURL string
	http    *http.Client
}

// Option настраивает Client.
type Option func(*Client)

// WithTimeout задаёт таймаут запросов (по умолчанию 10 секунд).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithInsecureTLS отключает проверку TLS сертификата сервера.
//
// ВНИМАНИЕ: делает TLS уязвимым для MITM. Только для локальной разработки
// с самоподписанным сертификатом.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.http.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // только для dev
		}
	}
}

// WithHTTPClient подменяет http.Client целиком (например, httptest.Server.Client()).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient создаёт новый HTTP-клиент для общения с сервером.
//
// Параметры:
//   - baseURL: базовый адрес сервера (например: "http://127.0.0.1:8080").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// APIError — ответ сервера с кодом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server responded %d: %s", e.StatusCode, e.Message)
}

// IsStatus сообщает, что err — APIError с данным кодом.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// readAPIError читает тело ответа сервера и собирает *APIError.
//
// Поведение:
//   - если тело — {"error": "..."}, берётся текст ошибки;
//   - иначе берётся тело как есть;
//   - если тело пустое — используется res.Status.
func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(res.Body)

	var er models.ErrorResponse
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &er); err == nil && er.Error != "" {
		msg = er.Error
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{StatusCode: res.StatusCode, Message: msg}
}

// decodeJSONOrOK декодирует JSON из r в resp.
// resp == nil и пустое тело (io.EOF) ошибкой не считаются.
func decodeJSONOrOK(r io.Reader, resp any) error {
	if resp == nil {
		return nil
	}
	err := json.NewDecoder(r).Decode(resp)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// do выполняет запрос к серверу.
//
// Параметры:
//   - req: объект для сериализации в JSON. Если req == nil, тело не отправляется
//     и Content-Type не устанавливается.
//   - resp: указатель для декодирования JSON-ответа, может быть nil.
//   - token: токен сессии. Если непустой, добавляется заголовок x-auth-token.
func (c *Client) do(ctx context.Context, method, path string, req, resp any, token string) error {
	var body io.Reader
	if req != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(req); err != nil {
			return err
		}
		body = &buf
	}

	r, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	r.Header.Set("Accept", "application/json")
	if req != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set(TokenHeader, token)
	}

	res, err := c.http.Do(r)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}

	// 204/пустое тело — ок
	if res.StatusCode == http.StatusNoContent {
		return nil
	}

	return decodeJSONOrOK(res.Body, resp)
}

// PostJSON выполняет POST-запрос к серверу, сериализуя req в JSON.
func (c *Client) PostJSON(ctx context.Context, path string, req, resp any, token string) error {
	return c.do(ctx, http.MethodPost, path, req, resp, token)
}

// GetJSON выполняет GET-запрос к серверу и декодирует JSON-ответ.
func (c *Client) GetJSON(ctx context.Context, path string, resp any, token string) error {
	return c.do(ctx, http.MethodGet, path, nil, resp, token)
}

// PutJSON выполняет PUT-запрос к серверу, сериализуя req в JSON.
func (c *Client) PutJSON(ctx context.Context, path string, req, resp any, token string) error {
	return c.do(ctx, http.MethodPut, path, req, resp, token)
}

// DeleteJSON выполняет DELETE-запрос к серверу и декодирует JSON-ответ.
func (c *Client) DeleteJSON(ctx context.Context, path string, resp any, token string) error {
	return c.do(ctx, http.MethodDelete, path, nil, resp, token)
}
