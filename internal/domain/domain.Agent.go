package domain

import "fmt"

type AgentStatus string

const (
	StatusRunning AgentStatus = "running" // Агент обслуживает сообщения
	StatusStopped AgentStatus = "stopped" // Остановлен пользователем
	StatusError   AgentStatus = "error"   // Упал, требует перезапуска
)

// ParseAgentStatus не пропускает значения вне перечисления.
func ParseAgentStatus(s string) (AgentStatus, error) {
	switch st := AgentStatus(s); st {
	case StatusRunning, StatusStopped, StatusError:
		return st, nil
	default:
		return "", fmt.Errorf("%w: agent status %q", ErrInvalidStatus, s)
	}
}

// Toggled возвращает статус, в который переводит кнопка Start/Stop.
// Из error кнопка работает как Start.
func (s AgentStatus) Toggled() AgentStatus {
	if s == StatusRunning {
		return StatusStopped
	}
	return StatusRunning
}

// Agent: единственная mock-запись на дашборде.
type Agent struct {
	ID            string      `json:"id"`   // Всегда "1", другой схемы идентификаторов нет
	Name          string      `json:"name"` // "My AI Assistant"
	Status        AgentStatus `json:"status"`
	Domain        string      `json:"domain"`    // Поддомен вида demo.blytz.cloud
	Framework     string      `json:"framework"` // OpenClaw
	MessagesToday int         `json:"messages_today"`
	MessagesTotal int         `json:"messages_total"`

	// Текстовые метки, как пришли бы из API ("2 minutes ago", "99.9%")
	LastActive string `json:"last_active"`
	Uptime     string `json:"uptime"`
}

// URL внешней ссылки на поддомен агента.
func (a Agent) URL() string {
	return "https://" + a.Domain
}
