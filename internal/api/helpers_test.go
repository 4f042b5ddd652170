package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"church/internal/auth"
	"church/internal/config"
	"church/internal/entity"
	"church/internal/metrics"
	"church/internal/model"
	"church/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testPassword = "correct-horse"

type testServer struct {
	t       *testing.T
	repo    model.Repository
	handler *HTTPHandler
	router  *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.Config{
		DBType:               model.DBTypeSQLite,
		DBPath:               fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		JWTSecret:            "test-secret",
		JWTIssuer:            "church",
		JWTExpirationMinutes: 60,
		CORSAllowOrigins:     []string{"*"},
		StoragePublicBaseURL: "/files",
		MediaMaxUploadMB:     1,
	}

	repo, err := model.InitRepository(&cfg)
	require.NoError(t, err)

	media, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	handler, err := NewHTTPHandler(cfg, repo, media, metrics.NewHTTPMetrics("church-test"))
	require.NoError(t, err)

	return &testServer{t: t, repo: repo, handler: handler, router: NewRouter(handler)}
}

func (s *testServer) createUser(email, role string) *entity.DbUser {
	s.t.Helper()
	hash, err := auth.HashPassword(testPassword)
	require.NoError(s.t, err)

	user := &entity.DbUser{
		Email:        email,
		FirstName:    "Test",
		LastName:     role,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(s.t, s.repo.CreateUser(context.Background(), user))
	return user
}

func (s *testServer) login(email string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": testPassword})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())
	return decodeJSON[entity.AuthResponse](s.t, w).Token
}

// userWithToken creates an account with role and signs it in.
func (s *testServer) userWithToken(email, role string) (*entity.DbUser, string) {
	s.t.Helper()
	user := s.createUser(email, role)
	return user, s.login(email)
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return s.send(req, token)
}

func (s *testServer) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	require.Equal(t, code, decodeJSON[APIError](t, w).Code)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
