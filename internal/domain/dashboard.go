package domain

import "fmt"

type ActivityType string

const (
	ActivityDeploy  ActivityType = "deploy"
	ActivityMessage ActivityType = "message"
	ActivityConfig  ActivityType = "config"
	ActivityError   ActivityType = "error"
)

func ParseActivityType(s string) (ActivityType, error) {
	switch t := ActivityType(s); t {
	case ActivityDeploy, ActivityMessage, ActivityConfig, ActivityError:
		return t, nil
	default:
		return "", fmt.Errorf("%w: activity type %q", ErrInvalidStatus, s)
	}
}

// ActivityItem: строка ленты "Recent Activity". Только для чтения.
type ActivityItem struct {
	ID        string       `json:"id"`
	Action    string       `json:"action"`
	Timestamp string       `json:"timestamp"` // "2 minutes ago"
	Type      ActivityType `json:"type"`
}

// Failed подсвечивает строку красной иконкой.
func (a ActivityItem) Failed() bool {
	return a.Type == ActivityError
}

// Overview собирает всё, что нужно странице /dashboard.
type Overview struct {
	Agent    Agent          `json:"agent"`
	Pending  bool           `json:"pending"`
	Activity []ActivityItem `json:"activity"`
	Plan     Plan           `json:"plan"`
}
