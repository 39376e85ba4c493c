// Package view рисует страницы консоли: html/template для разметки страниц,
// templ-компоненты для переиспользуемых элементов (эффекты, карточки, кнопки).
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"

	"github.com/a-h/templ"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
	"github.com/xela07ax/blytz-console/internal/mockdata"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static — css/js для /static/.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// PageData — всё, что нужно шаблонам. Заполняется хендлером на каждый mount.
type PageData struct {
	Title  string
	ViewID string
	Page   domain.Page
	Layout domain.Layout
	Nav    []domain.NavItem

	ReducedMotion   bool
	Sparkles        []effects.Sparkle
	Stars           []effects.Star
	Orbs            []effects.Orb
	SparkleInterval int64 // ms

	Agent        domain.Agent
	AgentPending bool
	Overview     domain.Overview
	Billing      domain.Billing
	Templates    []domain.MarketplaceTemplate
	Settings     domain.SettingsForm

	Features     []mockdata.Feature
	Highlights   []string
	Integrations []string
	BotFatherURL string
	DemoURL      string
}

// Какие файлы собираются в какую страницу
var pageFiles = map[domain.Page][]string{
	domain.PageLanding:     {"templates/base.html", "templates/landing.html"},
	domain.PageOverview:    {"templates/base.html", "templates/dashboard.html", "templates/overview.html"},
	domain.PageAgents:      {"templates/base.html", "templates/dashboard.html", "templates/agents.html"},
	domain.PageMarketplace: {"templates/base.html", "templates/dashboard.html", "templates/marketplace.html"},
	domain.PageBilling:     {"templates/base.html", "templates/dashboard.html", "templates/billing.html"},
	domain.PageSettings:    {"templates/base.html", "templates/dashboard.html", "templates/settings.html"},
}

type Renderer struct {
	pages   map[domain.Page]*template.Template
	printer *message.Printer
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{
		pages:   make(map[domain.Page]*template.Template, len(pageFiles)),
		printer: message.NewPrinter(language.English),
	}
	funcs := r.funcs()
	for page, files := range pageFiles {
		t, err := template.New(string(page)).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse %s templates: %w", page, err)
		}
		r.pages[page] = t.Lookup("base.html")
	}
	return r, nil
}

// Page отдаёт страницу как templ-компонент, его можно рендерить через templ.Handler.
func (r *Renderer) Page(data *PageData) (templ.Component, error) {
	t, ok := r.pages[data.Page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", data.Page)
	}
	return templ.FromGoHTML(t, data), nil
}

// Number форматирует счётчики с разделителем тысяч: 1234 -> "1,234".
func (r *Renderer) Number(n int) string {
	return r.printer.Sprintf("%d", n)
}

func (r *Renderer) funcs() template.FuncMap {
	ctx := context.Background()
	return template.FuncMap{
		"num":   r.Number,
		"money": domain.FormatCents,
		"marquee": func(items []string) (template.HTML, error) {
			return html(ctx, Marquee(items, DefaultMarqueeSpeed, DefaultMarqueeDirection))
		},
		"shimmer": func(buttonType, label string, disabled bool) (template.HTML, error) {
			return html(ctx, ShimmerButton(buttonType, label, disabled))
		},
		"sparkles": func(d *PageData) (template.HTML, error) {
			return html(ctx, Sparkles(d.Sparkles, d.ReducedMotion, d.SparkleInterval))
		},
		"stars": func(d *PageData) (template.HTML, error) {
			return html(ctx, StarField(d.Stars, d.ReducedMotion))
		},
		"orbs": func(d *PageData) (template.HTML, error) {
			return html(ctx, FloatingOrbs(d.Orbs, d.ReducedMotion))
		},
		"templateCard": func(t domain.MarketplaceTemplate) (template.HTML, error) {
			return html(ctx, TemplateCard(t))
		},
		"featureCard": func(f mockdata.Feature) (template.HTML, error) {
			return html(ctx, FeatureCard(f.Title, f.Text, f.Icon, f.Color))
		},
	}
}
