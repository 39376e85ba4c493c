package infra

import "fmt"

const (
	// RedisNamespace Базовый префикс для изоляции данных проекта в Redis
	RedisNamespace = "blytz"
)

// Ключи состояний страниц
const (
	RedisKeyViewPrefix = RedisNamespace + ":views:"
)

// GetViewKey Генератор ключа для состояния конкретной страницы
func GetViewKey(viewID string) string {
	return fmt.Sprintf("%s%s", RedisKeyViewPrefix, viewID)
}
