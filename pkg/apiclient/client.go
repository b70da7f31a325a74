// Package apiclient предоставляет HTTP-клиент для REST API сервиса заметок.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"notehive/pkg/noteview"
)

const defaultTimeout = 10 * time.Second

// APIError представляет ошибку, возвращенную сервером.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.Status, e.Message)
}

// Credentials содержит данные для входа.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair содержит пару токенов, выданную сервером.
type TokenPair struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Client - клиент REST API сервиса заметок.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	accessToken string
}

// Option настраивает клиент при создании.
type Option func(*Client)

// WithHTTPClient задает используемый http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithAccessToken задает access-токен для авторизованных запросов.
func WithAccessToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// New создает клиент API с указанным базовым адресом сервера.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Login выполняет вход и сохраняет полученный access-токен
// для последующих запросов.
func (c *Client) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	var tokens TokenPair
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", nil, creds, &tokens); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	c.accessToken = tokens.AccessToken
	return &tokens, nil
}

// ListNotes возвращает все видимые заметки пользователя.
// Снимок предназначен для клиентской фильтрации через пакет noteview.
func (c *Client) ListNotes(ctx context.Context) ([]noteview.Note, error) {
	var notes []noteview.Note
	if err := c.do(ctx, http.MethodGet, "/api/notes/", nil, nil, &notes); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// do выполняет запрос к API и декодирует ответ.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}
	return &APIError{Status: resp.StatusCode, Message: payload.Error}
}
