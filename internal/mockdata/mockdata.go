// Package mockdata держит захардкоженные константы, которые стоят на месте будущих ответов API.
// Все функции возвращают свежие копии: один смонтированный view не может испортить seed другого.
package mockdata

import "github.com/xela07ax/blytz-console/internal/domain"

// Внешние ссылки
const (
	BotFatherURL = "https://t.me/botfather"
	DemoDomain   = "demo.blytz.cloud"
	DemoURL      = "https://" + DemoDomain
)

func Agent() domain.Agent {
	return domain.Agent{
		ID:            "1",
		Name:          "My AI Assistant",
		Status:        domain.StatusRunning,
		Domain:        DemoDomain,
		Framework:     "OpenClaw",
		MessagesToday: 47,
		MessagesTotal: 1234,
		LastActive:    "2 minutes ago",
		Uptime:        "99.9%",
	}
}

func Activity() []domain.ActivityItem {
	return []domain.ActivityItem{
		{ID: "1", Action: "Agent deployed", Timestamp: "2 minutes ago", Type: domain.ActivityDeploy},
		{ID: "2", Action: "Telegram message answered", Timestamp: "15 minutes ago", Type: domain.ActivityMessage},
		{ID: "3", Action: "Configuration updated", Timestamp: "1 hour ago", Type: domain.ActivityConfig},
		{ID: "4", Action: "Gateway restart failed", Timestamp: "1 day ago", Type: domain.ActivityError},
	}
}

func Plan() domain.Plan {
	return domain.Plan{
		Name:       "Pro",
		PriceCents: 2900,
		Period:     "month",
		Features: []string{
			"1 AI Assistant deployment",
			"Custom subdomain",
			"Telegram integration",
			"24/7 support",
			"Automatic updates",
		},
	}
}

func PaymentMethod() domain.PaymentMethod {
	return domain.PaymentMethod{Last4: "4242", Expires: "12/25"}
}

func Invoices() []domain.Invoice {
	return []domain.Invoice{
		{Date: "Feb 19, 2026", Amount: "$29.00", Status: "Paid"},
		{Date: "Jan 19, 2026", Amount: "$29.00", Status: "Paid"},
		{Date: "Dec 19, 2025", Amount: "$29.00", Status: "Paid"},
	}
}

func Billing() domain.Billing {
	return domain.Billing{
		Plan:     Plan(),
		Payment:  PaymentMethod(),
		Invoices: Invoices(),
	}
}

func Templates() []domain.MarketplaceTemplate {
	return []domain.MarketplaceTemplate{
		{
			ID:          1,
			Name:        "Personal Assistant",
			Description: "General purpose AI assistant for daily tasks, scheduling, and research",
			Icon:        "bot",
			Color:       "blue",
			Features:    []string{"Task Management", "Scheduling", "Research", "Email Drafting"},
			Popular:     true,
		},
		{
			ID:          2,
			Name:        "Code Assistant",
			Description: "Specialized in coding, debugging, and technical documentation",
			Icon:        "code",
			Color:       "purple",
			Features:    []string{"Code Review", "Debugging", "Documentation", "Best Practices"},
		},
		{
			ID:          3,
			Name:        "Content Creator",
			Description: "Helps with writing, editing, and content strategy",
			Icon:        "message-square",
			Color:       "pink",
			Features:    []string{"Writing", "Editing", "SEO", "Strategy"},
		},
		{
			ID:          4,
			Name:        "Design Assistant",
			Description: "Assists with UI/UX design, feedback, and creative direction",
			Icon:        "palette",
			Color:       "orange",
			Features:    []string{"UI/UX Feedback", "Design Systems", "Typography", "Color Theory"},
		},
	}
}

func Settings() domain.SettingsForm {
	return domain.SettingsForm{
		AssistantName: "My AI Assistant",
		TelegramToken: "",
		Instructions:  "I am a freelance developer. I need help with client proposals, research, and scheduling...",
	}
}

func NavItems() []domain.NavItem {
	return []domain.NavItem{
		{Href: domain.RouteDashboard, Label: "Overview", Icon: "layout-dashboard"},
		{Href: domain.RouteAgents, Label: "My Agents", Icon: "bot"},
		{Href: domain.RouteMarketplace, Label: "Marketplace", Icon: "store"},
		{Href: domain.RouteBilling, Label: "Billing", Icon: "credit-card"},
		{Href: domain.RouteSettings, Label: "Settings", Icon: "settings"},
	}
}

// Feature: карточка блока "Everything you need" на лендинге.
type Feature struct {
	Title string
	Text  string
	Icon  string
	Color string
}

func Features() []Feature {
	return []Feature{
		{Title: "Lightning Fast", Text: "Deploy your assistant in under 2 minutes. Automated provisioning with zero configuration.", Icon: "zap", Color: "blue"},
		{Title: "Custom Domain", Text: "Get your own subdomain like alice.blytz.cloud. Access your assistant from anywhere.", Icon: "globe", Color: "purple"},
		{Title: "Secure by Default", Text: "Isolated Docker containers, encrypted API keys, and automatic security updates.", Icon: "shield", Color: "green"},
	}
}

// Highlights: галочки под заголовком лендинга.
func Highlights() []string {
	return []string{"Under 2 minutes setup", "Custom subdomain", "Telegram integration"}
}

// Integrations крутятся в бегущей строке.
func Integrations() []string {
	return []string{"OpenClaw", "Telegram", "OpenAI", "Anthropic", "Groq", "Ollama", "Docker", "Caddy"}
}
