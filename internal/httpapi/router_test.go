package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authentities "notehive/internal/auth/domain/entities"
	authdomain "notehive/internal/auth/domain/services"
	"notehive/internal/httpapi"
	"notehive/internal/notes/app"
	"notehive/internal/notes/domain/entities"
)

const (
	validToken = "valid-token"
	testUserID = "user-123"
)

var errUnknownToken = errors.New("unknown token")

// stubTokenService пропускает только заранее известный токен.
type stubTokenService struct{}

func (s *stubTokenService) IssueAccessToken(_ context.Context, _, _ string) (string, time.Time, error) {
	return validToken, time.Now().Add(15 * time.Minute), nil
}

func (s *stubTokenService) IssueRefreshToken(_ context.Context, _ string) (string, time.Time, error) {
	return "refresh-token", time.Now().Add(24 * time.Hour), nil
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (string, error) {
	if token == validToken {
		return testUserID, nil
	}
	return "", errUnknownToken
}

// stubAuthUseCase отдает заранее заданные результаты.
type stubAuthUseCase struct {
	loginErr error
}

func (s *stubAuthUseCase) Register(_ context.Context, _, username, _ string) (*authdomain.TokenPair, error) {
	return &authdomain.TokenPair{UserID: testUserID, Username: username, AccessToken: validToken}, nil
}

func (s *stubAuthUseCase) Login(_ context.Context, _, _ string) (*authdomain.TokenPair, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &authdomain.TokenPair{UserID: testUserID, AccessToken: validToken}, nil
}

func (s *stubAuthUseCase) RefreshTokens(_ context.Context, _ string) (*authdomain.TokenPair, error) {
	return &authdomain.TokenPair{UserID: testUserID, AccessToken: validToken}, nil
}

func (s *stubAuthUseCase) Logout(_ context.Context, _ string) error {
	return nil
}

type stubUserUseCase struct{}

func (s *stubUserUseCase) GetUserProfile(_ context.Context, userID string) (*authentities.User, error) {
	return &authentities.User{ID: userID, Email: "test@example.com", Username: "testuser"}, nil
}

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, noteID, userID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) List(ctx context.Context, userID string, filter *entities.NoteFilter) ([]*entities.Note, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) Update(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	args := m.Called(ctx, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteRepository) SoftDelete(ctx context.Context, noteID, userID string) error {
	return m.Called(ctx, noteID, userID).Error(0)
}

func newTestApp(t *testing.T, noteRepo *mockNoteRepository, authStub *stubAuthUseCase) *fiber.App {
	t.Helper()

	fiberApp := fiber.New()
	httpapi.SetupRouter(fiberApp, authStub, &stubUserUseCase{}, app.NewNoteUseCase(noteRepo), &stubTokenService{})
	return fiberApp
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, target, token string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	require.NoError(t, resp.Body.Close())
}

func TestHealthEndpoint(t *testing.T) {
	fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})

	resp := doRequest(t, fiberApp, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestNotesRequireAuthentication(t *testing.T) {
	fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})

	t.Run("без токена", func(t *testing.T) {
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("с неизвестным токеном", func(t *testing.T) {
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/", "bad-token", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestListNotesHandler(t *testing.T) {
	t.Run("пустой список возвращается как []", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("List", mock.Anything, testUserID, mock.Anything).
			Return([]*entities.Note{}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/", validToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.JSONEq(t, "[]", string(body))
	})

	t.Run("параметры запроса превращаются в фильтр", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("List", mock.Anything, testUserID, mock.MatchedBy(func(f *entities.NoteFilter) bool {
			return f.Pinned != nil && *f.Pinned &&
				f.Archived != nil && !*f.Archived &&
				f.Tag == "work" && f.Search == "milk"
		})).Return([]*entities.Note{}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodGet,
			"/api/notes/?pinned=true&archived=false&tag=work&search=milk", validToken, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		noteRepo.AssertExpectations(t)
	})

	t.Run("отсутствующие булевы параметры не попадают в фильтр", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("List", mock.Anything, testUserID, mock.MatchedBy(func(f *entities.NoteFilter) bool {
			return f.Pinned == nil && f.Archived == nil
		})).Return([]*entities.Note{}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/", validToken, nil)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		noteRepo.AssertExpectations(t)
	})
}

func TestGetNoteHandler(t *testing.T) {
	t.Run("несуществующая заметка дает 404", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("GetByID", mock.Anything, "missing", testUserID).Return(nil, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/missing", validToken, nil)

		require.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "note not found", body["error"])
	})

	t.Run("существующая заметка возвращается", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("GetByID", mock.Anything, "note-1", testUserID).Return(&entities.Note{
			ID:     "note-1",
			UserID: testUserID,
			Title:  "Shopping list",
		}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodGet, "/api/notes/note-1", validToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "note-1", body["id"])
		assert.Equal(t, "Shopping list", body["title"])
	})
}

func TestCreateNoteHandler(t *testing.T) {
	t.Run("успешное создание дает 201", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("Create", mock.Anything, mock.MatchedBy(func(n *entities.Note) bool {
			return n.UserID == testUserID && n.Title == "Shopping list"
		})).Return(&entities.Note{ID: "note-1", UserID: testUserID, Title: "Shopping list"}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodPost, "/api/notes/", validToken, map[string]any{
			"title":   "Shopping list",
			"content": "Milk, bread",
		})

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		noteRepo.AssertExpectations(t)
	})

	t.Run("отсутствие обязательных полей дает 400", func(t *testing.T) {
		fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodPost, "/api/notes/", validToken, map[string]any{
			"content": "Milk, bread",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateNoteHandler(t *testing.T) {
	t.Run("обновление несуществующей заметки дает 404", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("GetByID", mock.Anything, "missing", testUserID).Return(nil, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodPut, "/api/notes/missing", validToken, map[string]any{
			"pinned": true,
		})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("пустой заголовок при обновлении дает 400", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("GetByID", mock.Anything, "note-1", testUserID).Return(&entities.Note{
			ID:      "note-1",
			UserID:  testUserID,
			Title:   "Old title",
			Content: "Content",
		}, nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodPut, "/api/notes/note-1", validToken, map[string]any{
			"title": "   ",
		})

		require.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "title cannot be empty", body["error"])
	})

	t.Run("обновление доступно только через PUT", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodPatch, "/api/notes/note-1", validToken, map[string]any{
			"pinned": true,
		})

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		noteRepo.AssertNotCalled(t, "GetByID")
	})
}

func TestDeleteNoteHandler(t *testing.T) {
	t.Run("успешное удаление возвращает подтверждение", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("SoftDelete", mock.Anything, "note-1", testUserID).Return(nil).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodDelete, "/api/notes/note-1", validToken, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "note deleted successfully", body["message"])
	})

	t.Run("чужая заметка дает 404", func(t *testing.T) {
		noteRepo := new(mockNoteRepository)
		noteRepo.On("SoftDelete", mock.Anything, "note-1", testUserID).
			Return(entities.ErrNoteNotFound).Once()

		fiberApp := newTestApp(t, noteRepo, &stubAuthUseCase{})
		resp := doRequest(t, fiberApp, http.MethodDelete, "/api/notes/note-1", validToken, nil)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("неверные учетные данные дают 401", func(t *testing.T) {
		fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{
			loginErr: authdomain.ErrInvalidCredentials,
		})

		resp := doRequest(t, fiberApp, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "test@example.com",
			"password": "wrongpass1",
		})

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("успешный вход возвращает токены", func(t *testing.T) {
		fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})

		resp := doRequest(t, fiberApp, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email":    "test@example.com",
			"password": "password123",
		})

		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, validToken, body["access_token"])
	})

	t.Run("невалидное тело запроса дает 400", func(t *testing.T) {
		fiberApp := newTestApp(t, new(mockNoteRepository), &stubAuthUseCase{})

		resp := doRequest(t, fiberApp, http.MethodPost, "/api/auth/login", "", map[string]any{
			"email": "not-an-email",
		})

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
