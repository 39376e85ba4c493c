package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/blytz-console/internal/effects"
)

type EffectsHandler struct {
	gen *effects.Generator
}

func NewEffectsHandler(gen *effects.Generator) *EffectsHandler {
	return &EffectsHandler{gen: gen}
}

func (h *EffectsHandler) Routes(r chi.Router) {
	r.Get("/sparkles", h.Sparkles)
	r.Get("/stars", h.Stars)
	r.Get("/orbs", h.Orbs)
}

// Sparkles: при reduced motion пустой список, частиц не рисуем.
func (h *EffectsHandler) Sparkles(w http.ResponseWriter, r *http.Request) {
	if effects.PrefersReducedMotion(r) {
		writeJSON(w, http.StatusOK, []effects.Sparkle{})
		return
	}
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, h.gen.Sparkles())
}

func (h *EffectsHandler) Stars(w http.ResponseWriter, r *http.Request) {
	if effects.PrefersReducedMotion(r) {
		writeJSON(w, http.StatusOK, []effects.Star{})
		return
	}
	writeJSON(w, http.StatusOK, h.gen.Stars())
}

func (h *EffectsHandler) Orbs(w http.ResponseWriter, r *http.Request) {
	if effects.PrefersReducedMotion(r) {
		writeJSON(w, http.StatusOK, []effects.Orb{})
		return
	}
	writeJSON(w, http.StatusOK, effects.Orbs())
}
