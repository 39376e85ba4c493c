package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/blytz-console/internal/console/view"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
	"github.com/xela07ax/blytz-console/internal/mockdata"
	"go.uber.org/zap"
)

type ViewService interface {
	Mount(ctx context.Context, page domain.Page) (*domain.ViewState, error)
	Unmount(ctx context.Context, viewID string) error
	Overview(v *domain.ViewState) domain.Overview
	Billing() domain.Billing
	Marketplace() []domain.MarketplaceTemplate
}

type PageRenderer interface {
	Page(data *view.PageData) (templ.Component, error)
}

// PageHandler рисует страницы. Каждый GET = монтирование нового view.
type PageHandler struct {
	views           ViewService
	renderer        PageRenderer
	effects         *effects.Generator
	sparkleInterval time.Duration
	logger          *zap.Logger
}

func NewPageHandler(views ViewService, renderer PageRenderer, gen *effects.Generator, sparkleInterval time.Duration, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		views:           views,
		renderer:        renderer,
		effects:         gen,
		sparkleInterval: sparkleInterval,
		logger:          logger.Named("page-handler"),
	}
}

func (h *PageHandler) Routes(r chi.Router) {
	r.Get(domain.RouteLanding, h.page(domain.PageLanding, "Deploy your AI Assistant"))
	r.Get(domain.RouteDashboard, h.page(domain.PageOverview, "Overview"))
	r.Get(domain.RouteAgents, h.page(domain.PageAgents, "My Agents"))
	r.Get(domain.RouteMarketplace, h.page(domain.PageMarketplace, "Marketplace"))
	r.Get(domain.RouteBilling, h.page(domain.PageBilling, "Billing"))
	r.Get(domain.RouteSettings, h.page(domain.PageSettings, "Settings"))
}

func (h *PageHandler) page(page domain.Page, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, err := h.views.Mount(r.Context(), page)
		if err != nil {
			h.logger.Error("mount failed", zap.String("page", string(page)), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		data := h.pageData(r, v, title)
		c, err := h.renderer.Page(data)
		if err != nil {
			h.logger.Error("render failed", zap.String("page", string(page)), zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		// Состояние страницы живёт только в этом view, кэшировать нельзя
		w.Header().Set("Cache-Control", "no-store")
		w.Header().Set("Accept-CH", "Sec-CH-Prefers-Reduced-Motion")
		w.Header().Add("Vary", "Sec-CH-Prefers-Reduced-Motion")
		templ.Handler(c).ServeHTTP(w, r)
	}
}

func (h *PageHandler) pageData(r *http.Request, v *domain.ViewState, title string) *view.PageData {
	layout := domain.Layout{Path: r.URL.Path}
	// Без JS меню открывается ссылкой ?menu=open
	if r.URL.Query().Get("menu") == "open" {
		layout.OpenMenu()
	}

	data := &view.PageData{
		Title:           title,
		ViewID:          v.ID,
		Page:            v.Page,
		Layout:          layout,
		Nav:             mockdata.NavItems(),
		ReducedMotion:   effects.PrefersReducedMotion(r),
		SparkleInterval: h.sparkleInterval.Milliseconds(),
		Agent:           v.Agent,
		AgentPending:    v.AgentPending,
		Settings:        v.Settings,
		BotFatherURL:    mockdata.BotFatherURL,
		DemoURL:         mockdata.DemoURL,
	}

	switch v.Page {
	case domain.PageLanding:
		if !data.ReducedMotion {
			data.Sparkles = h.effects.Sparkles()
			data.Stars = h.effects.Stars()
			data.Orbs = effects.Orbs()
		}
		data.Features = mockdata.Features()
		data.Highlights = mockdata.Highlights()
		data.Integrations = mockdata.Integrations()
	case domain.PageOverview:
		data.Overview = h.views.Overview(v)
	case domain.PageBilling:
		data.Billing = h.views.Billing()
	case domain.PageMarketplace:
		data.Templates = h.views.Marketplace()
	}
	return data
}

// Unmount вызывается скриптом на pagehide (sendBeacon). Всегда 204.
func (h *PageHandler) Unmount(w http.ResponseWriter, r *http.Request) {
	if err := h.views.Unmount(r.Context(), chi.URLParam(r, "viewID")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Templates: каталог маркетплейса для API.
func (h *PageHandler) Templates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Marketplace())
}
