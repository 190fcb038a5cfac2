package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/metrics"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

var testCORS = config.CORS{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS", "PATCH"},
	AllowedHeaders: []string{"Content-Type", "Authorization", "true"},
	MaxAge:         3600,
}

func ok(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"route": name, "id": r.PathValue("id")})
	}
}

func testRoutes() Routes {
	return Routes{
		ListCategories:    ok("list_categories"),
		CategoryQuestions: ok("category_questions"),
		ListQuestions:     ok("list_questions"),
		GetQuestion:       ok("get_question"),
		CreateQuestion:    ok("create_question"),
		SearchQuestions:   ok("search_questions"),
		UpdateQuestion:    ok("update_question"),
		DeleteQuestion:    ok("delete_question"),
		DrawQuiz:          ok("draw_quiz"),
	}
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func routeOf(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouterDispatch(t *testing.T) {
	h := NewRouter(testCORS, zerolog.New(io.Discard), testRoutes(), Options{})

	cases := []struct {
		method, target, route, id string
	}{
		{http.MethodGet, "/categories", "list_categories", ""},
		{http.MethodGet, "/categories/3/questions", "category_questions", "3"},
		{http.MethodGet, "/questions?page=2", "list_questions", ""},
		{http.MethodGet, "/questions/7", "get_question", "7"},
		{http.MethodPost, "/questions", "create_question", ""},
		{http.MethodPost, "/questions/search", "search_questions", ""},
		{http.MethodPatch, "/questions/7", "update_question", "7"},
		{http.MethodDelete, "/questions/7", "delete_question", "7"},
		{http.MethodPost, "/quizzes", "draw_quiz", ""},
	}
	for _, tc := range cases {
		rec := serve(h, tc.method, tc.target)
		require.Equal(t, http.StatusOK, rec.Code, "%s %s", tc.method, tc.target)
		body := routeOf(t, rec)
		assert.Equal(t, tc.route, body["route"])
		assert.Equal(t, tc.id, body["id"])
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	h := NewRouter(testCORS, zerolog.New(io.Discard), testRoutes(), Options{})

	rec := serve(h, http.MethodGet, "/nope")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp httperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, http.StatusNotFound, resp.Error)
	assert.Equal(t, "resource not found", resp.Message)
}

func TestRouterWrongMethod(t *testing.T) {
	h := NewRouter(testCORS, zerolog.New(io.Discard), testRoutes(), Options{})

	for _, tc := range []struct{ method, target string }{
		{http.MethodPost, "/categories"},
		{http.MethodDelete, "/questions"},
		{http.MethodPut, "/questions/1"},
		{http.MethodGet, "/quizzes"},
		{http.MethodPost, "/categories/1/questions"},
	} {
		rec := serve(h, tc.method, tc.target)
		require.Equal(t, http.StatusMethodNotAllowed, rec.Code, "%s %s", tc.method, tc.target)
		var resp httperrors.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "method not allowed", resp.Message)
		assert.Equal(t, httperrors.ErrCodeMethodNotAllowed, resp.Code)
	}
}

func TestCORSHeaders(t *testing.T) {
	h := NewRouter(testCORS, zerolog.New(io.Discard), testRoutes(), Options{})

	rec := serve(h, http.MethodGet, "/categories")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Content-Type,Authorization,true", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "GET,POST,DELETE,OPTIONS,PATCH", rec.Header().Get("Access-Control-Allow-Methods"))

	rec = serve(h, http.MethodGet, "/nope")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = serve(h, http.MethodOptions, "/questions/3")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
}

func TestCORSRestrictedOrigins(t *testing.T) {
	cors := testCORS
	cors.AllowedOrigins = []string{"https://trivia.example.com"}
	h := NewRouter(cors, zerolog.New(io.Discard), testRoutes(), Options{})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "https://trivia.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://trivia.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealthz(t *testing.T) {
	h := NewRouter(testCORS, zerolog.New(io.Discard), Routes{}, Options{})

	rec := serve(h, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPing(t *testing.T) {
	healthy := Options{Checks: []Check{
		{Name: "postgres", Ping: func(context.Context) error { return nil }},
		{Name: "redis", Ping: func(context.Context) error { return nil }},
	}}
	rec := serve(NewRouter(testCORS, zerolog.New(io.Discard), Routes{}, healthy), http.MethodGet, "/v1/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pong":true}`, rec.Body.String())

	broken := Options{Checks: []Check{
		{Name: "postgres", Ping: func(context.Context) error { return nil }},
		{Name: "redis", Ping: func(context.Context) error { return errors.New("dial tcp: connection refused") }},
	}}
	rec = serve(NewRouter(testCORS, zerolog.New(io.Discard), Routes{}, broken), http.MethodGet, "/v1/ping")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	var resp httperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, httperrors.ErrCodeUpstreamError, resp.Code)
	assert.Equal(t, "redis unavailable", resp.Detail)
}

func TestRequestIDAndLogger(t *testing.T) {
	var sawLogger bool
	routes := Routes{ListCategories: func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())
		sawLogger = logger.GetLevel() != zerolog.Disabled
		w.WriteHeader(http.StatusOK)
	}}
	h := NewRouter(testCORS, zerolog.New(io.Discard), routes, Options{})

	rec := serve(h, http.MethodGet, "/categories")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
	assert.True(t, sawLogger)

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestPanicRecovered(t *testing.T) {
	routes := Routes{ListCategories: func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}}
	h := NewRouter(testCORS, zerolog.New(io.Discard), routes, Options{})

	rec := serve(h, http.MethodGet, "/categories")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMetricsEndpointAndInstrumentation(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	h := NewRouter(testCORS, zerolog.New(io.Discard), testRoutes(), Options{Metrics: m, Gatherer: reg})

	serve(h, http.MethodGet, "/questions/4")
	serve(h, http.MethodGet, "/questions/5")
	serve(h, http.MethodGet, "/missing")

	rec := serve(h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `trivia_http_requests_total{method="GET",route="GET /questions/{id}",status="200"} 2`), body)
	assert.True(t, strings.Contains(body, `trivia_http_requests_total{method="GET",route="/",status="404"} 1`), body)
}
