package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	cell "PouchCell/internal/calc/cell"
	config "PouchCell/internal/config"
	repo "PouchCell/internal/repo"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type noUsers struct{}

func (noUsers) CreateUser(context.Context, string, string, string) (int, error) { return 1, nil }
func (noUsers) GetByLogin(context.Context, string) (repo.User, error) {
	return repo.User{}, repo.ErrNotFound
}

func newRouter(users repo.Users) http.Handler {
	d := deps{
		cfg:       config.Config{RateLimitRPS: 100, RateLimitBurst: 100, TokenKey: "k"},
		logger:    zap.NewNop(),
		constants: cell.DefaultConstants(),
		users:     users,
	}
	r := mux.NewRouter()
	HandleList(r, d)
	return CORS(r)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, path, strings.NewReader(body)))
	return w
}

func TestPublicToolRoutes(t *testing.T) {
	h := newRouter(nil)

	w := do(h, http.MethodPost, "/api/tools/cell/calc", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var res cell.Result
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.InDelta(t, 9.72, res.CapacityAh, 1e-9)

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/tools/cell/defaults", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/tools/cell/breakdown", `{}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/tools/cell/report/pdf", `{}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPost, "/api/tools/cell/workbook/export", `{}`).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(h, http.MethodGet, "/api/tools/cell/calc", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/login", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/user/profile", "").Code)
}

func TestSecuredToolRoutes(t *testing.T) {
	h := newRouter(noUsers{})

	assert.Equal(t, http.StatusNotFound, do(h, http.MethodPost, "/api/tools/cell/calc", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/user/tools/cell/calc", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodPost, "/api/login", `{"login":"a","password":"b"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/user/profile", "").Code)
}

func TestCORSPreflight(t *testing.T) {
	w := do(newRouter(nil), http.MethodOptions, "/api/tools/cell/calc", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoadConstants(t *testing.T) {
	c, err := loadConstants("")
	require.NoError(t, err)
	assert.Equal(t, cell.DefaultConstants(), c)

	_, err = loadConstants(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestServeGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	server := &http.Server{Handler: newRouter(nil)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, server, func() error { return server.Serve(ln) }, zap.NewNop())
	}()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	resp, err := client.Get("http://" + ln.Addr().String() + "/api/tools/cell/defaults")
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}

func TestServeListenError(t *testing.T) {
	server := &http.Server{}
	err := serve(context.Background(), server, func() error { return errors.New("bind failed") }, zap.NewNop())
	assert.EqualError(t, err, "bind failed")
}

func TestEveryRequestIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	d := deps{
		cfg:       config.Config{RateLimitRPS: 100, RateLimitBurst: 100},
		logger:    zap.NewNop(),
		constants: cell.DefaultConstants(),
	}
	r := mux.NewRouter()
	HandleList(r, d)
	h := newHandler(r, zap.New(core))

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodPost, "/api/tools/cell/calc", http.StatusOK},
		{http.MethodGet, "/api/tools/cell/unknown", http.StatusNotFound},
		{http.MethodGet, "/api/tools/cell/calc", http.StatusMethodNotAllowed},
		{http.MethodOptions, "/api/tools/cell/calc", http.StatusNoContent},
	}
	for _, tt := range tests {
		require.Equal(t, tt.status, do(h, tt.method, tt.path, `{}`).Code, tt.path)
	}

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, len(tests))
	for i, tt := range tests {
		fields := entries[i].ContextMap()
		assert.Equal(t, tt.method, fields["method"])
		assert.Equal(t, tt.path, fields["path"])
		assert.EqualValues(t, tt.status, fields["status"])
	}
}
