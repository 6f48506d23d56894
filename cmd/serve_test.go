package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/venturelens/internal/cache"
	"github.com/sells-group/venturelens/internal/config"
	"github.com/sells-group/venturelens/internal/decide"
	"github.com/sells-group/venturelens/internal/research"
	"github.com/sells-group/venturelens/internal/score"
	"github.com/sells-group/venturelens/internal/signals"
)

// offlineEnv wires the pipeline with no credentials: deterministic
// placeholder data everywhere, no network.
func offlineEnv() *validationEnv {
	researcher := research.New(nil, cache.NewMemory(), config.ResearchConfig{MaxConcurrentDetails: 3, CacheTTLHours: 24})
	analyzer := signals.New(nil, cache.NewMemory(), config.SignalsConfig{MarketTTLDays: 7, PainTTLDays: 3})
	scoring := score.DefaultConfig()
	return &validationEnv{
		Research: researcher,
		Signals:  analyzer,
		Decide:   decide.New(nil, "", researcher, analyzer, scoring),
		Scoring:  scoring,
	}
}

func doRequest(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(offlineEnv()).ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestValidateEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/v1/validate", `{"idea":"AI-powered todo app for developers"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"decision":"MAYBE"`)
	assert.Contains(t, body, `"success":true`)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestValidateEndpointRejectsShortIdea(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/v1/validate", `{"idea":"an app"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestValidateEndpointRejectsBadJSON(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/v1/validate", `{"idea":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestAnalyzeEndpoint(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/v1/analyze", `{"idea":"AI-powered todo app for developers"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"scores"`)
	assert.Contains(t, body, `"marketAnalysis"`)
	assert.Contains(t, body, `"customerPain"`)
	assert.Contains(t, body, `"competitorAnalysis"`)
}

func TestAnalyzeEndpointWithProduct(t *testing.T) {
	rec := doRequest(t, http.MethodPost, "/v1/analyze",
		`{"idea":"AI-powered todo app for developers","productName":"DevDo","differentiator":"terminal-native with offline sync"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Estimated entry success")
}

func TestUnknownRouteIs404(t *testing.T) {
	rec := doRequest(t, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDrainOnSignalFinishesInFlightRequests(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	release := make(chan struct{})
	srv := &http.Server{Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		<-release
		w.WriteHeader(http.StatusOK)
	})}
	go func() { _ = srv.Serve(ln) }()

	ctx, cancel := context.WithCancel(context.Background())
	drained := make(chan struct{})
	go func() {
		drainOnSignal(ctx, srv, 2*time.Second)
		close(drained)
	}()

	status := make(chan int, 1)
	go func() {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			status <- 0
			return
		}
		defer resp.Body.Close()
		status <- resp.StatusCode
	}()

	// Let the request reach the handler, then trigger shutdown while it is
	// still in flight.
	time.Sleep(50 * time.Millisecond)
	cancel()
	time.Sleep(50 * time.Millisecond)
	close(release)

	assert.Equal(t, http.StatusOK, <-status)
	select {
	case <-drained:
	case <-time.After(3 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}
