package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danishayman/bobo-game-awards-sub000/config"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/errorx"
	"github.com/danishayman/bobo-game-awards-sub000/pkg/xcontext"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Flag  bool   `json:"flag"`
}

type echoResponse struct {
	Name   string `json:"name"`
	Count  int    `json:"count"`
	Flag   bool   `json:"flag"`
	UserID string `json:"user_id"`
}

func echo(ctx context.Context, req *echoRequest) (*echoResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.VotingEnded, "Voting has ended")
	}

	return &echoResponse{
		Name:   req.Name,
		Count:  req.Count,
		Flag:   req.Flag,
		UserID: xcontext.RequestUserID(ctx),
	}, nil
}

func newTestRouter() *Router {
	ctx := xcontext.WithConfigs(context.Background(), config.Default())
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte("secret")))
	return New(ctx, time.Second)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	m := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestRouter_GET(t *testing.T) {
	r := newTestRouter()
	closed := false
	r.AddCloser(func(ctx context.Context) { closed = true })
	r.Before(func(ctx context.Context) (context.Context, error) {
		return xcontext.WithRequestUserID(ctx, "user1"), nil
	})
	GET(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo?name=foo&count=3&flag=true", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	require.Equal(t, float64(0), resp["code"])
	require.Equal(t, map[string]any{
		"name":    "foo",
		"count":   float64(3),
		"flag":    true,
		"user_id": "user1",
	}, resp["data"])
	require.True(t, closed)
}

func TestRouter_POST(t *testing.T) {
	r := newTestRouter()
	POST(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"bar","count":2}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "bar", decode(t, rec)["data"].(map[string]any)["name"])

	rec = httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decode(t, rec)["reason"])

	rec = httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_POST_BodyTooLarge(t *testing.T) {
	ctx := xcontext.WithConfigs(context.Background(), config.Default())
	cfg := xcontext.Configs(ctx)
	cfg.ApiServer.MaxBodySize = 32
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte("secret")))

	r := New(ctx, time.Second)
	POST(r, "/echo", echo)

	body := `{"name":"` + strings.Repeat("a", 64) + `"}`
	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Request body too large (at most 32 bytes)", decode(t, rec)["error"])

	rec = httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":"ok"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Error(t *testing.T) {
	r := newTestRouter()
	var gotErr error
	r.AddCloser(func(ctx context.Context) { gotErr = xcontext.Error(ctx) })
	GET(r, "/echo", echo)

	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/echo", nil))

	require.Equal(t, http.StatusForbidden, rec.Code)
	resp := decode(t, rec)
	require.Equal(t, float64(errorx.VotingEnded), resp["code"])
	require.Equal(t, "VOTING_ENDED", resp["reason"])
	require.Equal(t, "Voting has ended", resp["error"])
	require.True(t, errorx.Is(gotErr, errorx.VotingEnded))
}

func TestRouter_BranchMiddleware(t *testing.T) {
	r := newTestRouter()
	branch := r.Branch()
	branch.Before(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.Unauthenticated, "You need to authenticate before")
	})
	GET(branch, "/private", echo)
	GET(r, "/public", echo)

	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/private?name=a", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/public?name=a", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownError(t *testing.T) {
	r := newTestRouter()
	GET(r, "/fail", func(ctx context.Context, req *echoRequest) (*echoResponse, error) {
		return nil, context.DeadlineExceeded
	})

	rec := httptest.NewRecorder()
	r.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, errorx.Unknown.Message, decode(t, rec)["error"])
}
