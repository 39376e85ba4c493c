package domain

// MarketplaceTemplate: карточка каталога. Кнопка Deploy пока ничего не делает.
type MarketplaceTemplate struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`  // Имя иконки (bot, code, message-square, palette)
	Color       string   `json:"color"` // blue, purple, pink, orange
	Features    []string `json:"features"`
	Popular     bool     `json:"popular"`
}
