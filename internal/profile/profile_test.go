package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"PouchCell/internal/auth"
	"PouchCell/internal/repo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubUsers struct {
	user repo.User
	err  error
}

func (s stubUsers) CreateUser(context.Context, string, string, string) (int, error) {
	return 0, errors.New("not supported")
}

func (s stubUsers) GetByLogin(_ context.Context, login string) (repo.User, error) {
	if s.err != nil {
		return repo.User{}, s.err
	}
	if login != s.user.Login {
		return repo.User{}, repo.ErrNotFound
	}
	return s.user, nil
}

func serve(t *testing.T, users repo.Users, sess *auth.Session) *httptest.ResponseRecorder {
	t.Helper()
	svc := &auth.Service{Key: []byte("test-key"), Users: users, Log: zap.NewNop()}
	h := &ProfileHandler{Users: users, Log: zap.NewNop()}

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	if sess != nil {
		token, err := svc.Token(*sess, time.Now())
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "session_token", Value: token})
	}
	w := httptest.NewRecorder()
	svc.Middleware(http.HandlerFunc(h.GetProfile)).ServeHTTP(w, req)
	return w
}

func TestGetProfile(t *testing.T) {
	users := stubUsers{user: repo.User{ID: 7, Login: "anna", Email: "anna@example.com", PasswordHash: "secret"}}

	w := serve(t, users, &auth.Session{UserID: 7, Login: "anna"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "secret")

	var got profileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.Equal(t, profileResponse{ID: 7, Login: "anna", Email: "anna@example.com"}, got)
}

func TestGetProfileErrors(t *testing.T) {
	users := stubUsers{user: repo.User{ID: 7, Login: "anna"}}

	t.Run("no session", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, serve(t, users, nil).Code)
	})
	t.Run("deleted account", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(t, users, &auth.Session{UserID: 3, Login: "boris"}).Code)
	})
	t.Run("login reused by another id", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, serve(t, users, &auth.Session{UserID: 9, Login: "anna"}).Code)
	})
	t.Run("repository failure", func(t *testing.T) {
		broken := stubUsers{err: errors.New("connection reset")}
		assert.Equal(t, http.StatusInternalServerError, serve(t, broken, &auth.Session{UserID: 7, Login: "anna"}).Code)
	})
}

func TestGetProfileWithoutMiddleware(t *testing.T) {
	h := &ProfileHandler{Users: stubUsers{}, Log: zap.NewNop()}
	w := httptest.NewRecorder()
	h.GetProfile(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
