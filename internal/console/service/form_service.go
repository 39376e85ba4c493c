package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xela07ax/blytz-console/internal/audit"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/engine"
	"github.com/xela07ax/blytz-console/internal/viewstore"
	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

const (
	msgSignupFailed   = "Something went wrong. Please try again."
	msgSettingsFailed = "Failed to save settings. Please try again."
)

// FormService обслуживает форму регистрации на лендинге и форму настроек агента.
type FormService struct {
	store   viewstore.Store
	exec    ActionExecutor
	journal actionJournal
	clock   clock.PassiveClock
	logger  *zap.Logger
}

func NewFormService(store viewstore.Store, exec ActionExecutor, journal audit.Recorder, clk clock.PassiveClock, logger *zap.Logger) *FormService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	logger = logger.Named("form-service")
	return &FormService{
		store:   store,
		exec:    exec,
		journal: newActionJournal(journal, clk, logger),
		clock:   clk,
		logger:  logger,
	}
}

// SubmitSignup принимает форму, после задержки бэкенда выставляет Redirect.
// Пока идёт отправка, повторный сабмит отклоняется.
func (s *FormService) SubmitSignup(ctx context.Context, viewID string, form domain.SignupForm) (*domain.SignupView, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	v, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		if v.SignupSubmitting {
			return domain.ErrActionPending
		}
		v.Signup = form
		v.SignupSubmitting = true
		v.Redirect = ""
		v.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := signupPayload(form.Redacted())
	body, _ := json.Marshal(payload)
	traceID := engine.TraceID(ctx)
	started := s.clock.Now()

	err = s.exec.Go(traceID, domain.ActionSignupSubmit, body, func(cbCtx context.Context, resp []byte, callErr error) {
		redirect := domain.RouteDashboard
		if callErr == nil {
			var out struct {
				Redirect string `json:"redirect"`
			}
			if json.Unmarshal(resp, &out) == nil && out.Redirect != "" {
				redirect = out.Redirect
			}
		}

		_, upErr := s.store.Update(cbCtx, viewID, func(v *domain.ViewState) error {
			v.SignupSubmitting = false
			if callErr != nil {
				v.LastError = msgSignupFailed
				return nil
			}
			v.Redirect = redirect
			return nil
		})
		s.journal.record(traceID, viewID, domain.ActionSignupSubmit, payload, started, callErr, upErr)
	})
	if err != nil {
		s.release(ctx, viewID, func(v *domain.ViewState) { v.SignupSubmitting = false })
		return nil, fmt.Errorf("signup submit: %w", err)
	}

	s.logger.Info("signup submitted", zap.String("view_id", viewID))
	return &domain.SignupView{Submitting: v.SignupSubmitting}, nil
}

// ConsumeSignup отдаёт состояние отправки. Redirect выдаётся ровно один раз,
// поэтому навигация на /dashboard случается однократно.
func (s *FormService) ConsumeSignup(ctx context.Context, viewID string) (*domain.SignupView, error) {
	var out domain.SignupView
	_, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		out = domain.SignupView{
			Submitting: v.SignupSubmitting,
			Redirect:   v.Redirect,
			Error:      v.LastError,
		}
		v.Redirect = ""
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FormService) GetSettings(ctx context.Context, viewID string) (*domain.SettingsView, error) {
	v, err := s.store.Get(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return settingsView(v), nil
}

// UpdateSettingsField меняет одно поле буфера формы, остальные не трогает.
func (s *FormService) UpdateSettingsField(ctx context.Context, viewID, field, value string) (*domain.SettingsView, error) {
	v, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		return v.Settings.Set(field, value)
	})
	if err != nil {
		return nil, err
	}
	return settingsView(v), nil
}

// SaveSettings сохраняет форму. form == nil означает "то, что уже в буфере".
// Навигации после сохранения нет.
func (s *FormService) SaveSettings(ctx context.Context, viewID string, form *domain.SettingsForm) (*domain.SettingsView, error) {
	if form != nil {
		if err := form.Validate(); err != nil {
			return nil, err
		}
	}

	v, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		if v.SettingsSubmitting {
			return domain.ErrActionPending
		}
		if form != nil {
			v.Settings = *form
		}
		if err := v.Settings.Validate(); err != nil {
			return err
		}
		v.SettingsSubmitting = true
		v.LastError = ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	payload := settingsPayload(v.Settings.Redacted())
	body, _ := json.Marshal(payload)
	traceID := engine.TraceID(ctx)
	started := s.clock.Now()

	err = s.exec.Go(traceID, domain.ActionSettingsSave, body, func(cbCtx context.Context, _ []byte, callErr error) {
		_, upErr := s.store.Update(cbCtx, viewID, func(v *domain.ViewState) error {
			v.SettingsSubmitting = false
			if callErr != nil {
				v.LastError = msgSettingsFailed
			}
			return nil
		})
		s.journal.record(traceID, viewID, domain.ActionSettingsSave, payload, started, callErr, upErr)
	})
	if err != nil {
		s.release(ctx, viewID, func(v *domain.ViewState) { v.SettingsSubmitting = false })
		return nil, fmt.Errorf("settings save: %w", err)
	}

	s.logger.Info("settings save started", zap.String("view_id", viewID))
	return settingsView(v), nil
}

// release откатывает флаг отправки, если действие не удалось запустить.
func (s *FormService) release(ctx context.Context, viewID string, fn func(v *domain.ViewState)) {
	_, err := s.store.Update(ctx, viewID, func(v *domain.ViewState) error {
		fn(v)
		return nil
	})
	if err != nil && !errors.Is(err, domain.ErrViewNotFound) {
		s.logger.Error("failed to release submit flag", zap.String("view_id", viewID), zap.Error(err))
	}
}

func settingsView(v *domain.ViewState) *domain.SettingsView {
	return &domain.SettingsView{
		Form:       v.Settings,
		Submitting: v.SettingsSubmitting,
		Error:      v.LastError,
	}
}

func signupPayload(f domain.SignupForm) map[string]any {
	return map[string]any{
		domain.FieldEmail:         f.Email,
		domain.FieldAssistantName: f.AssistantName,
		domain.FieldTelegramToken: f.TelegramToken,
		domain.FieldInstructions:  f.Instructions,
	}
}

func settingsPayload(f domain.SettingsForm) map[string]any {
	return map[string]any{
		domain.FieldAssistantName: f.AssistantName,
		domain.FieldTelegramToken: f.TelegramToken,
		domain.FieldInstructions:  f.Instructions,
	}
}
