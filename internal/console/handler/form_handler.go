package handler

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/xela07ax/blytz-console/internal/domain"
	"go.uber.org/zap"
)

// Потолок тела формы: инструкции до 5000 символов плюс запас
const maxFormBody = 64 << 10

type FormService interface {
	SubmitSignup(ctx context.Context, viewID string, form domain.SignupForm) (*domain.SignupView, error)
	ConsumeSignup(ctx context.Context, viewID string) (*domain.SignupView, error)
	GetSettings(ctx context.Context, viewID string) (*domain.SettingsView, error)
	UpdateSettingsField(ctx context.Context, viewID, field, value string) (*domain.SettingsView, error)
	SaveSettings(ctx context.Context, viewID string, form *domain.SettingsForm) (*domain.SettingsView, error)
}

type FormHandler struct {
	service FormService
	logger  *zap.Logger
}

func NewFormHandler(s FormService, logger *zap.Logger) *FormHandler {
	return &FormHandler{service: s, logger: logger.Named("form-handler")}
}

// SignupRoutes отдельно: на сабмит регистрации вешается лимитер по IP.
func (h *FormHandler) SignupRoutes(r chi.Router, limit func(http.Handler) http.Handler) {
	r.Get("/signup", h.SignupStatus)
	r.With(limit).Post("/signup", h.SubmitSignup)
}

func (h *FormHandler) SettingsRoutes(r chi.Router) {
	r.Get("/settings", h.GetSettings)
	r.Patch("/settings", h.UpdateField)
	r.Post("/settings", h.SaveSettings)
}

func (h *FormHandler) SubmitSignup(w http.ResponseWriter, r *http.Request) {
	var form domain.SignupForm
	if err := decodeForm(w, r, &form); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	view, err := h.service.SubmitSignup(r.Context(), chi.URLParam(r, "viewID"), form)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, view)
}

// SignupStatus отдаёт redirect один раз; следующий опрос его уже не увидит.
func (h *FormHandler) SignupStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ConsumeSignup(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *FormHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetSettings(r.Context(), chi.URLParam(r, "viewID"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type UpdateFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (h *FormHandler) UpdateField(w http.ResponseWriter, r *http.Request) {
	var req UpdateFieldRequest
	if err := decodeForm(w, r, &req); err != nil || req.Field == "" {
		badRequest(w, "field is required")
		return
	}

	view, err := h.service.UpdateSettingsField(r.Context(), chi.URLParam(r, "viewID"), req.Field, req.Value)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SaveSettings: пустое тело сохраняет текущий буфер формы.
func (h *FormHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var form *domain.SettingsForm
	if r.ContentLength != 0 {
		form = &domain.SettingsForm{}
		if err := decodeForm(w, r, form); err != nil {
			badRequest(w, "invalid request body")
			return
		}
	}

	view, err := h.service.SaveSettings(r.Context(), chi.URLParam(r, "viewID"), form)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusAccepted, view)
}

// decodeForm принимает JSON и обычный urlencoded POST формы.
func decodeForm(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return err
		}
		values := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			values[key] = r.PostForm.Get(key)
		}
		// Ключи формы совпадают с JSON-тегами, гоним через тот же декодер
		raw, err := json.Marshal(values)
		if err != nil {
			return err
		}
		return json.Unmarshal(raw, dst)
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
