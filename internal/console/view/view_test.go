package view

import (
	"context"
	"io/fs"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/a-h/templ/safehtml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
	"github.com/xela07ax/blytz-console/internal/mockdata"
)

func renderPage(t *testing.T, data *PageData) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	c, err := r.Page(data)
	require.NoError(t, err)

	var b strings.Builder
	require.NoError(t, c.Render(context.Background(), &b))
	return b.String()
}

func dashboardData(page domain.Page, path string) *PageData {
	agent := mockdata.Agent()
	return &PageData{
		Title:        "Dashboard",
		ViewID:       "view-1",
		Page:         page,
		Layout:       domain.Layout{Path: path},
		Nav:          mockdata.NavItems(),
		Agent:        agent,
		Overview:     domain.Overview{Agent: agent, Activity: mockdata.Activity(), Plan: mockdata.Plan()},
		Billing:      mockdata.Billing(),
		Templates:    mockdata.Templates(),
		Settings:     mockdata.Settings(),
		DemoURL:      mockdata.DemoURL,
		BotFatherURL: mockdata.BotFatherURL,
	}
}

func landingData(reduced bool) *PageData {
	g := effects.NewGenerator(rand.NewPCG(1, 1))
	return &PageData{
		Title:           "Deploy your AI Assistant",
		ViewID:          "view-landing",
		Page:            domain.PageLanding,
		ReducedMotion:   reduced,
		Sparkles:        g.Sparkles(),
		Stars:           g.Stars(),
		Orbs:            effects.Orbs(),
		SparkleInterval: 4000,
		Features:        mockdata.Features(),
		Highlights:      mockdata.Highlights(),
		Integrations:    mockdata.Integrations(),
		BotFatherURL:    mockdata.BotFatherURL,
	}
}

func TestMarketplaceShowsOnePopularBadge(t *testing.T) {
	out := renderPage(t, dashboardData(domain.PageMarketplace, domain.RouteMarketplace))

	assert.Equal(t, 4, strings.Count(out, `class="template-card `))
	assert.Equal(t, 1, strings.Count(out, `badge--popular`))
	assert.Equal(t, 1, strings.Count(out, "gradient-card--glow"))
	assert.Equal(t, 4, strings.Count(out, `data-action="deploy-template"`))
}

func TestOverviewFormatsNumbers(t *testing.T) {
	out := renderPage(t, dashboardData(domain.PageOverview, domain.RouteDashboard))

	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "$29.00")
	assert.Contains(t, out, "Stop Agent")
	assert.Contains(t, out, `data-view-id="view-1"`)
	assert.Equal(t, 4, strings.Count(out, `class="activity-item `))
}

func TestToggleButtonStates(t *testing.T) {
	data := dashboardData(domain.PageAgents, domain.RouteAgents)
	data.Agent.Status = domain.StatusStopped
	assert.Contains(t, renderPage(t, data), "Start Agent")

	data.AgentPending = true
	out := renderPage(t, data)
	assert.Contains(t, out, `disabled aria-busy="true"`)
	assert.NotContains(t, out, "Start Agent")
}

func TestSidebarActiveLinkAndOverlay(t *testing.T) {
	data := dashboardData(domain.PageBilling, domain.RouteBilling)
	out := renderPage(t, data)

	assert.Equal(t, 1, strings.Count(out, `aria-current="page"`))
	assert.Contains(t, out, `href="/dashboard/billing" data-role="nav-link" class="nav-link active"`)
	assert.Contains(t, out, `data-role="overlay" aria-label="Close menu" hidden`)
	assert.NotContains(t, out, "menu-open")

	data.Layout.OpenMenu()
	out = renderPage(t, data)
	assert.Contains(t, out, "dashboard menu-open")
	assert.NotContains(t, out, `aria-label="Close menu" hidden`)
}

func TestLandingRendersEffects(t *testing.T) {
	out := renderPage(t, landingData(false))

	assert.Equal(t, 12, strings.Count(out, "fx-particle sparkle"))
	assert.Equal(t, 25, strings.Count(out, "fx-particle star"))
	assert.Equal(t, 4, strings.Count(out, "fx-particle orb"))
	assert.Contains(t, out, `data-interval="4000"`)
	assert.Contains(t, out, "https://t.me/botfather")
}

func TestLandingReducedMotionRendersNoParticles(t *testing.T) {
	out := renderPage(t, landingData(true))

	assert.NotContains(t, out, "fx-particle")
	assert.Equal(t, 3, strings.Count(out, `data-reduced="true"`))
	assert.Contains(t, out, `data-reduced-motion="true"`)
}

// Без client hint и cookie первый рендер содержит частицы: их прячут стили и скрипт.
func TestStaticAssetsHideParticlesForReducedMotion(t *testing.T) {
	css, err := fs.ReadFile(Static(), "app.css")
	require.NoError(t, err)

	const media = "@media (prefers-reduced-motion: reduce) {"
	start := strings.Index(string(css), media)
	require.NotEqual(t, -1, start)
	block := string(css)[start:]
	block = block[:strings.Index(block, "\n}")]
	assert.Contains(t, block, ".fx-particle { display: none; }")

	js, err := fs.ReadFile(Static(), "app.js")
	require.NoError(t, err)
	assert.Contains(t, string(js), "motionQuery.addEventListener('change', applyMotion)")
	assert.Contains(t, string(js), "el.replaceChildren()")
	assert.Contains(t, string(js), "stopSparkles()")
}

func TestParticleStylesAreEscaped(t *testing.T) {
	list := []effects.Sparkle{
		{ID: 1, X: 10, Y: 20, Delay: 1, Color: "rgba(251, 191, 36, 0.9)"},
		{ID: 2, X: 30, Y: 40, Delay: 2, Color: `red;" onmouseover="alert(1)`},
	}
	var b strings.Builder
	require.NoError(t, Sparkles(list, false, 4000).Render(context.Background(), &b))
	out := b.String()

	assert.Contains(t, out, `style="left:10.00%;top:20.00%;color:rgba(251, 191, 36, 0.9);animation-delay:1.00s"`)
	assert.Contains(t, out, "color:"+safehtml.InnocuousPropertyValue)
	assert.NotContains(t, out, "onmouseover")

	b.Reset()
	orbs := []effects.Orb{{ID: 1, X: 10, Y: 20, Size: 300, Duration: 20, Color: "url(javascript:x)"}}
	require.NoError(t, FloatingOrbs(orbs, false).Render(context.Background(), &b))
	assert.NotContains(t, b.String(), "javascript")
}

func TestMarqueeRendersItemsTwice(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Marquee([]string{"OpenClaw", "<Telegram>"}, 0, "up").Render(context.Background(), &b))
	out := b.String()

	assert.Equal(t, 2, strings.Count(out, "OpenClaw"))
	assert.Equal(t, 2, strings.Count(out, "&lt;Telegram&gt;"))
	assert.Contains(t, out, "--marquee-duration: 40s")
	assert.Contains(t, out, `data-direction="left"`)
	assert.Equal(t, 1, strings.Count(out, `aria-hidden="true"`))
}

func TestShimmerButtonDisabled(t *testing.T) {
	var b strings.Builder
	require.NoError(t, ShimmerButton("", "Deploy Now", true).Render(context.Background(), &b))
	assert.Equal(t, `<button type="button" class="shimmer-button" disabled aria-disabled="true"><span class="shimmer-button-label">Deploy Now</span></button>`, b.String())
}

func TestRendererRejectsUnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	_, err = r.Page(&PageData{Page: "missing"})
	assert.Error(t, err)
	assert.Equal(t, "1,234", r.Number(1234))
}
