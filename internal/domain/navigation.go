package domain

// Маршруты приложения
const (
	RouteLanding     = "/"
	RouteDashboard   = "/dashboard"
	RouteAgents      = "/dashboard/agents"
	RouteMarketplace = "/dashboard/marketplace"
	RouteBilling     = "/dashboard/billing"
	RouteSettings    = "/dashboard/settings"
)

type NavItem struct {
	Href  string `json:"href"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// Layout: состояние обёртки дашборда. Флагом мобильного меню владеет layout,
// сайдбар его только читает. На широких экранах флаг игнорируется вёрсткой.
type Layout struct {
	Path     string
	MenuOpen bool
}

func (l *Layout) OpenMenu() {
	l.MenuOpen = true
}

// DismissOverlay: клик по затемнению поверх контента.
func (l *Layout) DismissOverlay() {
	l.MenuOpen = false
}

// SelectNav: переход по ссылке сайдбара тоже закрывает меню.
func (l *Layout) SelectNav(href string) {
	l.Path = href
	l.MenuOpen = false
}

// OverlayVisible: затемнение рисуется только при открытом меню.
func (l Layout) OverlayVisible() bool {
	return l.MenuOpen
}

// IsActive: подсветка ссылки только при точном совпадении пути.
func (l Layout) IsActive(href string) bool {
	return l.Path == href
}
