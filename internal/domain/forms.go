package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Ключи полей совпадают с JSON-тегами форм
const (
	FieldEmail         = "email"
	FieldAssistantName = "assistant_name"
	FieldTelegramToken = "telegram_token"
	FieldInstructions  = "instructions"
)

// Лимиты бэкенда: имя ассистента и кастомные инструкции
const (
	MaxAssistantNameLen = 50
	MaxInstructionsLen  = 5000
)

// Токен бота: <id бота>:<секрет>
var telegramTokenPattern = regexp.MustCompile(`^[0-9]+:[A-Za-z0-9_-]+$`)

// SettingsForm: буфер формы настроек агента.
type SettingsForm struct {
	AssistantName string `json:"assistant_name"`
	TelegramToken string `json:"telegram_token"`
	Instructions  string `json:"instructions"`
}

// Set меняет ровно одно поле, остальные остаются как были.
func (f *SettingsForm) Set(field, value string) error {
	switch field {
	case FieldAssistantName:
		f.AssistantName = value
	case FieldTelegramToken:
		f.TelegramToken = value
	case FieldInstructions:
		f.Instructions = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Validate: токен в настройках может быть пустым, но заполненный обязан иметь формат бота.
func (f SettingsForm) Validate() error {
	if f.TelegramToken != "" {
		if err := checkToken(f.TelegramToken); err != nil {
			return err
		}
	}
	return checkLimits(f.AssistantName, f.Instructions)
}

// Redacted: копия для логов, токен бота не печатаем.
func (f SettingsForm) Redacted() SettingsForm {
	f.TelegramToken = MaskToken(f.TelegramToken)
	return f
}

// SignupForm: форма "Get Started" на лендинге.
type SignupForm struct {
	Email         string `json:"email"`
	AssistantName string `json:"assistant_name"`
	TelegramToken string `json:"telegram_token"`
	Instructions  string `json:"instructions"`
}

// Validate повторяет ограничения HTML-формы: все поля required, email как у type=email
// (голый адрес, без display name и угловых скобок).
func (f SignupForm) Validate() error {
	required := []struct{ name, value string }{
		{FieldEmail, f.Email},
		{FieldAssistantName, f.AssistantName},
		{FieldTelegramToken, f.TelegramToken},
		{FieldInstructions, f.Instructions},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, r.name)
		}
	}
	addr, err := mail.ParseAddress(f.Email)
	if err != nil || addr.Address != f.Email {
		return fmt.Errorf("%w: email is not a valid address", ErrValidation)
	}
	if err := checkToken(f.TelegramToken); err != nil {
		return err
	}
	return checkLimits(f.AssistantName, f.Instructions)
}

func (f SignupForm) Redacted() SignupForm {
	f.TelegramToken = MaskToken(f.TelegramToken)
	return f
}

func checkToken(token string) error {
	if !telegramTokenPattern.MatchString(token) {
		return fmt.Errorf("%w: %s must look like <digits>:<secret>", ErrValidation, FieldTelegramToken)
	}
	return nil
}

func checkLimits(name, instructions string) error {
	if utf8.RuneCountInString(name) > MaxAssistantNameLen {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidation, FieldAssistantName, MaxAssistantNameLen)
	}
	if utf8.RuneCountInString(instructions) > MaxInstructionsLen {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidation, FieldInstructions, MaxInstructionsLen)
	}
	return nil
}

// MaskToken оставляет видимыми только последние 4 символа.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	r := []rune(token)
	if len(r) <= 4 {
		return strings.Repeat("•", len(r))
	}
	return strings.Repeat("•", len(r)-4) + string(r[len(r)-4:])
}
