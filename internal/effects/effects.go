// Package effects генерирует декоративные частицы: искры, звёзды и парящие сферы.
package effects

import (
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
)

const (
	SparkleCount = 12
	StarCount    = 25
)

// Палитра искр: amber-400, orange-400, amber-500, yellow-500, orange-500
var SparkleColors = []string{
	"rgba(251, 191, 36, 0.9)",
	"rgba(251, 146, 60, 0.9)",
	"rgba(245, 158, 11, 0.9)",
	"rgba(234, 179, 8, 0.9)",
	"rgba(249, 115, 22, 0.9)",
}

type Sparkle struct {
	ID    int     `json:"id"`
	X     float64 `json:"x"`     // % ширины
	Y     float64 `json:"y"`     // % высоты
	Delay float64 `json:"delay"` // секунды
	Color string  `json:"color"`
}

type Star struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     float64 `json:"size"` // px
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
}

type Orb struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Size     int     `json:"size"`     // px
	Duration int     `json:"duration"` // секунды на цикл
	Color    string  `json:"color"`
}

// Generator выдаёт наборы частиц. rand.Rand не потокобезопасен, отсюда мьютекс.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator: src == nil берёт случайный сид.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rnd: rand.New(src)}
}

// Sparkles: 12 искр; клиент перезапрашивает набор каждые 4 секунды.
func (g *Generator) Sparkles() []Sparkle {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Sparkle, SparkleCount)
	for i := range out {
		out[i] = Sparkle{
			ID:    i,
			X:     g.rnd.Float64() * 100,
			Y:     g.rnd.Float64() * 100,
			Delay: g.rnd.Float64() * 3,
			Color: SparkleColors[g.rnd.IntN(len(SparkleColors))],
		}
	}
	return out
}

// Stars: 25 звёзд, размер 0.5–2px, мерцание 2–4с, задержка до 5с.
func (g *Generator) Stars() []Star {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]Star, StarCount)
	for i := range out {
		out[i] = Star{
			ID:       i,
			X:        g.rnd.Float64() * 100,
			Y:        g.rnd.Float64() * 100,
			Size:     g.rnd.Float64()*1.5 + 0.5,
			Duration: g.rnd.Float64()*2 + 2,
			Delay:    g.rnd.Float64() * 5,
		}
	}
	return out
}

// Orbs: четыре фиксированные сферы, случайности нет.
func Orbs() []Orb {
	return []Orb{
		{ID: 1, X: 10, Y: 20, Size: 300, Duration: 20, Color: "rgba(251, 191, 36, 0.3)"},
		{ID: 2, X: 70, Y: 60, Size: 400, Duration: 25, Color: "rgba(249, 115, 22, 0.25)"},
		{ID: 3, X: 50, Y: 10, Size: 250, Duration: 18, Color: "rgba(245, 158, 11, 0.35)"},
		{ID: 4, X: 80, Y: 30, Size: 350, Duration: 22, Color: "rgba(234, 179, 8, 0.2)"},
	}
}

// PrefersReducedMotion читает предпочтение пользователя: client hint браузера,
// cookie motion=reduce (ставит скрипт по media query) или ?motion=reduce.
func PrefersReducedMotion(r *http.Request) bool {
	if strings.EqualFold(strings.TrimSpace(r.Header.Get("Sec-CH-Prefers-Reduced-Motion")), "reduce") {
		return true
	}
	if c, err := r.Cookie("motion"); err == nil && c.Value == "reduce" {
		return true
	}
	return r.URL.Query().Get("motion") == "reduce"
}
