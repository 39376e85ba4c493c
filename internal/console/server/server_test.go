package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xela07ax/blytz-console/internal/connectors"
	"github.com/xela07ax/blytz-console/internal/console/handler"
	"github.com/xela07ax/blytz-console/internal/console/service"
	"github.com/xela07ax/blytz-console/internal/console/view"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/infra"
	"github.com/xela07ax/blytz-console/internal/viewstore"
	"go.uber.org/zap"
	testingclock "k8s.io/utils/clock/testing"
)

type testEnv struct {
	srv   *ConsoleServer
	clock *testingclock.FakeClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &infra.Config{
		Server:    infra.ServerConfig{CORSOrigins: []string{"https://blytz.cloud"}},
		RateLimit: infra.RateLimitConfig{SignupPerMinute: 5},
		Metrics:   infra.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	logger := zap.NewNop()
	clk := testingclock.NewFakeClock(time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC))
	reg := prometheus.NewRegistry()
	metrics := engine.NewMetrics(reg)

	store := viewstore.NewMemoryStore(clk, time.Hour, logger)
	backend := connectors.NewSimulatedBackend(clk, map[string]time.Duration{
		domain.ActionAgentToggle:  800 * time.Millisecond,
		domain.ActionSignupSubmit: 1500 * time.Millisecond,
		domain.ActionSettingsSave: 800 * time.Millisecond,
	})
	runner := engine.NewActionRunner(backend, metrics, logger)
	t.Cleanup(func() { _ = runner.Shutdown(context.Background()) })

	renderer, err := view.NewRenderer()
	require.NoError(t, err)
	gen := effects.NewGenerator(nil)

	views := service.NewViewService(store, metrics, clk, logger)
	srv := NewConsoleServer(cfg, logger, metrics, reg,
		handler.NewPageHandler(views, renderer, gen, 4*time.Second, logger),
		handler.NewAgentHandler(service.NewAgentService(store, runner, nil, clk, logger), logger),
		handler.NewFormHandler(service.NewFormService(store, runner, nil, clk, logger), logger),
		handler.NewEffectsHandler(gen),
	)
	return &testEnv{srv: srv, clock: clk}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.srv.ServeHTTP(rec, req)
	return rec
}

var viewIDPattern = regexp.MustCompile(`data-view-id="([0-9a-f-]+)"`)

func (e *testEnv) mount(t *testing.T, path string) string {
	t.Helper()
	rec := e.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := viewIDPattern.FindStringSubmatch(rec.Body.String())
	require.Len(t, m, 2)
	return m[1]
}

func (e *testEnv) step(t *testing.T, d time.Duration) {
	t.Helper()
	require.Eventually(t, e.clock.HasWaiters, time.Second, time.Millisecond)
	e.clock.Step(d)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestPagesRender(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/", "/dashboard", "/dashboard/agents", "/dashboard/marketplace", "/dashboard/billing", "/dashboard/settings"} {
		rec := env.do(t, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"), path)
		assert.NotEmpty(t, rec.Header().Get("X-Trace-ID"), path)
	}
	assert.Equal(t, http.StatusNotFound, env.do(t, http.MethodGet, "/nope", "").Code)
}

func TestReloadIsFreshMount(t *testing.T) {
	env := newTestEnv(t)
	first := env.mount(t, "/dashboard")

	require.Equal(t, http.StatusAccepted, env.do(t, http.MethodPost, "/api/views/"+first+"/agent/toggle", "").Code)
	env.step(t, 800*time.Millisecond)
	require.Eventually(t, func() bool {
		view := decode[domain.AgentView](t, env.do(t, http.MethodGet, "/api/views/"+first+"/agent", ""))
		return view.Agent.Status == domain.StatusStopped
	}, time.Second, time.Millisecond)

	// Перезагрузка: новый view снова с running
	second := env.mount(t, "/dashboard")
	assert.NotEqual(t, first, second)
	view := decode[domain.AgentView](t, env.do(t, http.MethodGet, "/api/views/"+second+"/agent", ""))
	assert.Equal(t, domain.StatusRunning, view.Agent.Status)
}

func TestAgentToggleFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.mount(t, "/dashboard")

	rec := env.do(t, http.MethodPost, "/api/views/"+id+"/agent/toggle", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	view := decode[domain.AgentView](t, rec)
	assert.True(t, view.Pending)

	rec = env.do(t, http.MethodPost, "/api/views/"+id+"/agent/toggle", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "action_pending", decode[map[string]string](t, rec)["error"])

	env.step(t, 800*time.Millisecond)
	require.Eventually(t, func() bool {
		view := decode[domain.AgentView](t, env.do(t, http.MethodGet, "/api/views/"+id+"/agent", ""))
		return !view.Pending && view.Agent.Status == domain.StatusStopped
	}, time.Second, time.Millisecond)
}

func TestSignupFlowRedirectsOnce(t *testing.T) {
	env := newTestEnv(t)
	id := env.mount(t, "/")

	form := url.Values{
		"email":          {"alice@example.com"},
		"assistant_name": {"Helper"},
		"telegram_token": {"123456:ABC"},
		"instructions":   {"Be nice"},
	}
	req := httptest.NewRequest(http.MethodPost, "/api/views/"+id+"/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	env.step(t, 1500*time.Millisecond)
	var redirects []string
	require.Eventually(t, func() bool {
		status := decode[domain.SignupView](t, env.do(t, http.MethodGet, "/api/views/"+id+"/signup", ""))
		if status.Redirect != "" {
			redirects = append(redirects, status.Redirect)
		}
		return !status.Submitting
	}, time.Second, time.Millisecond)

	status := decode[domain.SignupView](t, env.do(t, http.MethodGet, "/api/views/"+id+"/signup", ""))
	if status.Redirect != "" {
		redirects = append(redirects, status.Redirect)
	}
	assert.Equal(t, []string{"/dashboard"}, redirects)
}

func TestSignupValidationAndRateLimit(t *testing.T) {
	env := newTestEnv(t)
	id := env.mount(t, "/")

	rec := env.do(t, http.MethodPost, "/api/views/"+id+"/signup", `{"email":"bad","assistant_name":"a","telegram_token":"t","instructions":"i"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decode[map[string]string](t, rec)["error"])

	for i := 0; i < 4; i++ {
		assert.Equal(t, http.StatusBadRequest, env.do(t, http.MethodPost, "/api/views/"+id+"/signup", `{}`).Code)
	}
	rec = env.do(t, http.MethodPost, "/api/views/"+id+"/signup", `{}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]string](t, rec)["error"])
}

func TestSettingsFlow(t *testing.T) {
	env := newTestEnv(t)
	id := env.mount(t, "/dashboard/settings")

	rec := env.do(t, http.MethodPatch, "/api/views/"+id+"/settings", `{"field":"assistant_name","value":"Jarvis"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jarvis", decode[domain.SettingsView](t, rec).Form.AssistantName)

	rec = env.do(t, http.MethodPatch, "/api/views/"+id+"/settings", `{"field":"email","value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/views/"+id+"/settings", "")
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.True(t, decode[domain.SettingsView](t, rec).Submitting)

	env.step(t, 800*time.Millisecond)
	require.Eventually(t, func() bool {
		v := decode[domain.SettingsView](t, env.do(t, http.MethodGet, "/api/views/"+id+"/settings", ""))
		return !v.Submitting && v.Form.AssistantName == "Jarvis"
	}, time.Second, time.Millisecond)
}

func TestUnmountDiscardsView(t *testing.T) {
	env := newTestEnv(t)
	id := env.mount(t, "/dashboard/agents")

	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodPost, "/api/views/"+id+"/unmount", "").Code)
	assert.Equal(t, http.StatusNoContent, env.do(t, http.MethodPost, "/api/views/"+id+"/unmount", "").Code)

	rec := env.do(t, http.MethodGet, "/api/views/"+id+"/agent", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "view_not_found", decode[map[string]string](t, rec)["error"])
}

func TestMarketplaceAPI(t *testing.T) {
	env := newTestEnv(t)
	templates := decode[[]domain.MarketplaceTemplate](t, env.do(t, http.MethodGet, "/api/marketplace/templates", ""))
	require.Len(t, templates, 4)

	popular := 0
	for _, tpl := range templates {
		if tpl.Popular {
			popular++
		}
	}
	assert.Equal(t, 1, popular)
}

func TestEffectsAPI(t *testing.T) {
	env := newTestEnv(t)
	assert.Len(t, decode[[]effects.Sparkle](t, env.do(t, http.MethodGet, "/api/effects/sparkles", "")), 12)
	assert.Len(t, decode[[]effects.Star](t, env.do(t, http.MethodGet, "/api/effects/stars", "")), 25)
	assert.Len(t, decode[[]effects.Orb](t, env.do(t, http.MethodGet, "/api/effects/orbs", "")), 4)

	req := httptest.NewRequest(http.MethodGet, "/api/effects/sparkles", nil)
	req.Header.Set("Sec-CH-Prefers-Reduced-Motion", "reduce")
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestReducedMotionLanding(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/?motion=reduce", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "fx-particle")
}

func TestFirstVisitReducedMotionHiddenByStylesheet(t *testing.T) {
	env := newTestEnv(t)
	// Firefox и Safari не шлют client hint, cookie ещё нет
	body := env.do(t, http.MethodGet, "/", "").Body.String()
	require.Contains(t, body, "fx-particle")
	assert.Contains(t, body, `href="/static/app.css"`)

	css := env.do(t, http.MethodGet, "/static/app.css", "").Body.String()
	idx := strings.Index(css, "@media (prefers-reduced-motion: reduce)")
	require.NotEqual(t, -1, idx)
	assert.Contains(t, css[idx:], ".fx-particle { display: none; }")
}

func TestMenuQueryOpensOverlay(t *testing.T) {
	env := newTestEnv(t)
	body := env.do(t, http.MethodGet, "/dashboard/billing?menu=open", "").Body.String()
	assert.Contains(t, body, "menu-open")
	assert.Contains(t, body, `class="nav-link active"`)
}

func TestHealthMetricsAndStatic(t *testing.T) {
	env := newTestEnv(t)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/health", "").Code)

	env.mount(t, "/dashboard")
	rec := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `console_views_mounted_total{page="overview"} 1`)

	rec = env.do(t, http.MethodGet, "/static/app.js", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sendBeacon")
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/marketplace/templates", nil)
	req.Header.Set("Origin", "https://blytz.cloud")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	env.srv.ServeHTTP(rec, req)

	assert.Equal(t, "https://blytz.cloud", rec.Header().Get("Access-Control-Allow-Origin"))
}
