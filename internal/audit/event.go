package audit

import "time"

// Статусы события журнала. Событие пишется только по завершении действия,
// вместе с payload.
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// ActionEvent — запись журнала о действии пользователя на странице.
type ActionEvent struct {
	ID      string         `json:"id"`       // UUID события
	TraceID string         `json:"trace_id"` // Сквозной ID запроса
	ViewID  string         `json:"view_id"`  // С какой страницы
	Action  string         `json:"action"`   // domain.Action*
	Payload map[string]any `json:"payload"`  // Данные формы, токен уже замаскирован

	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}
