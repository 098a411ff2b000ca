package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sociallink-app/backend/internal/router"
	"github.com/sociallink-app/backend/pkg/config"
	"github.com/sociallink-app/backend/validators"
)

type testServer struct {
	e         *echo.Echo
	db        *gorm.DB
	uploadDir string
}

// newTestServer wires the full router against an isolated in-memory
// database, so tests exercise middleware, error mapping and handlers the
// way a real request does.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(uuid.NewString(), "-", ""))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	cfg := &config.Config{
		Port:           "0",
		Env:            "test",
		JWTSecret:      "test-secret",
		TokenTTLHours:  1,
		UploadDir:      t.TempDir(),
		AllowedOrigins: []string{"http://localhost"},
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	logger := zap.NewNop()
	router.SetupMiddleware(e, cfg, logger)
	router.SetupRoutes(e, db, cfg, logger)

	return &testServer{e: e, db: db, uploadDir: cfg.UploadDir}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, name, email string) (string, uint) {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/auth/register", "", echo.Map{
		"name":     name,
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func (s *testServer) createPost(t *testing.T, token, content string) uint {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/posts", token, echo.Map{"content": content})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.ID
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
