package domain

import "time"

type Page string

const (
	PageLanding     Page = "landing"
	PageOverview    Page = "overview"
	PageAgents      Page = "agents"
	PageMarketplace Page = "marketplace"
	PageBilling     Page = "billing"
	PageSettings    Page = "settings"
)

// ViewState: локальное состояние одной смонтированной страницы.
// Создаётся при монтировании из mock-констант, меняется на месте,
// выбрасывается при размонтировании или по TTL. Перезагрузка = новый view.
type ViewState struct {
	ID   string `json:"id"`
	Page Page   `json:"page"`

	Agent        Agent `json:"agent"`
	AgentPending bool  `json:"agent_pending"`

	Settings           SettingsForm `json:"settings"`
	SettingsSubmitting bool         `json:"settings_submitting"`

	Signup           SignupForm `json:"signup"`
	SignupSubmitting bool       `json:"signup_submitting"`
	Redirect         string     `json:"redirect,omitempty"` // Куда перейти после сабмита, отдаётся один раз

	LastError string    `json:"last_error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgentView: то, что видит кнопка Start/Stop.
type AgentView struct {
	Agent   Agent  `json:"agent"`
	Pending bool   `json:"pending"`
	Error   string `json:"error,omitempty"`
}

type SignupView struct {
	Submitting bool   `json:"submitting"`
	Redirect   string `json:"redirect,omitempty"`
	Error      string `json:"error,omitempty"`
}

type SettingsView struct {
	Form       SettingsForm `json:"form"`
	Submitting bool         `json:"submitting"`
	Error      string       `json:"error,omitempty"`
}
