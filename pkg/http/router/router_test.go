package router

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	da "github.com/lintang-b-s/tollrate/pkg/datastructure"
	"github.com/lintang-b-s/tollrate/pkg/engine"
	http_server "github.com/lintang-b-s/tollrate/pkg/http/server"
	"github.com/lintang-b-s/tollrate/pkg/toll"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubTollService struct{}

func (stubTollService) ComputeTolls(ctx context.Context, edges []da.Edge, reference *da.ID,
	band *float64, spans []toll.SpanSpec) (*engine.Result, error) {
	panic("toll engine crashed")
}

func (stubTollService) Schedule() []toll.Span {
	return toll.FullWeekSchedule()
}

func newHandler(useRateLimit bool) http.Handler {
	cfg := http_server.Config{Port: 0, UseRateLimit: useRateLimit, RateLimitRPS: 0.001, RateLimitBurst: 2}
	return NewAPI(zap.NewNop()).Handler(cfg, stubTollService{})
}

func TestHeartbeat(t *testing.T) {
	rr := httptest.NewRecorder()
	newHandler(false).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, ".", rr.Body.String())
}

func TestEnforceJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tolls", bytes.NewBufferString("id_start,id_end"))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	newHandler(false).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rr.Code)
}

func TestRecoverPanic(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/tolls",
		bytes.NewBufferString(`{"edges":[{"id_start":1,"id_end":2,"distance":1}]}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	newHandler(false).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestRequestID(t *testing.T) {
	h := newHandler(false)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, rr.Header().Get(requestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	req.Header.Set(requestIDHeader, "abc")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "abc", rr.Header().Get(requestIDHeader))
}

func TestRateLimit(t *testing.T) {
	h := newHandler(true)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/schedule", nil))
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRealIP(t *testing.T) {
	testCases := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "10.0.0.9"}, want: "10.0.0.9"},
		{name: "invalid", headers: map[string]string{"X-Real-IP": "nope"}, want: ""},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, realIP(req))
		})
	}
}
