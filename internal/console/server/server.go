package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/xela07ax/blytz-console/internal/console/handler"
	"github.com/xela07ax/blytz-console/internal/console/view"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/infra"
	"go.uber.org/zap"
)

type ConsoleServer struct {
	router *chi.Mux
	logger *zap.Logger
	cfg    *infra.Config

	metrics  *engine.Metrics
	gatherer prometheus.Gatherer
	signupRL *engine.IPRateLimiter

	// Обработчики
	pageHandler    *handler.PageHandler    // страницы + unmount
	agentHandler   *handler.AgentHandler   // /api/views/{id}/agent
	formHandler    *handler.FormHandler    // /api/views/{id}/signup, /settings
	effectsHandler *handler.EffectsHandler // /api/effects
}

// NewConsoleServer инициализирует сервер консоли со всеми зависимостями
func NewConsoleServer(
	cfg *infra.Config,
	logger *zap.Logger,
	metrics *engine.Metrics,
	gatherer prometheus.Gatherer,
	pageH *handler.PageHandler,
	agentH *handler.AgentHandler,
	formH *handler.FormHandler,
	effectsH *handler.EffectsHandler,
) *ConsoleServer {
	s := &ConsoleServer{
		router:         chi.NewRouter(),
		logger:         logger.Named("console-server"),
		cfg:            cfg,
		metrics:        metrics,
		gatherer:       gatherer,
		signupRL:       engine.NewIPRateLimiter(cfg.RateLimit.SignupPerMinute),
		pageHandler:    pageH,
		agentHandler:   agentH,
		formHandler:    formH,
		effectsHandler: effectsH,
	}

	s.routes()
	return s
}

func (s *ConsoleServer) routes() {
	r := s.router

	// --- 1. Глобальные инфраструктурные Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(engine.TracingMiddleware)
	r.Use(engine.RequestLogger(s.logger, s.metrics))
	r.Use(middleware.Recoverer)

	// --- 2. Служебные роуты ---
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	if s.cfg.Metrics.Enabled {
		r.Handle(s.cfg.Metrics.Path, promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(view.Static()))))

	// --- 3. Страницы ---
	s.pageHandler.Routes(r)

	// --- 4. JSON API ---
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins: s.cfg.Server.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
			AllowedHeaders: []string{"Content-Type", "X-Trace-ID"},
			ExposedHeaders: []string{"X-Trace-ID"},
		}).Handler)

		r.Route("/effects", s.effectsHandler.Routes)
		r.Get("/marketplace/templates", s.pageHandler.Templates)

		// Состояние конкретной смонтированной страницы
		r.Route("/views/{viewID}", func(r chi.Router) {
			r.Post("/unmount", s.pageHandler.Unmount)
			s.agentHandler.Routes(r)
			s.formHandler.SignupRoutes(r, s.signupRL.Middleware("signup", s.metrics))
			s.formHandler.SettingsRoutes(r)
		})
	})
}

// Routes — список зарегистрированных маршрутов (для команды `console routes`).
func (s *ConsoleServer) Routes() chi.Routes {
	return s.router
}

// ServeHTTP позволяет использовать ConsoleServer как стандартный http.Handler
func (s *ConsoleServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
