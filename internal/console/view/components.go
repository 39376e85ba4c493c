package view

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/a-h/templ/safehtml"
	"github.com/xela07ax/blytz-console/internal/domain"
	"github.com/xela07ax/blytz-console/internal/effects"
)

// Marquee defaults
const (
	DefaultMarqueeSpeed     = 40
	DefaultMarqueeDirection = "left"
)

var cssColorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|rgba?\(\s*[0-9.]+\s*,\s*[0-9.]+\s*,\s*[0-9.]+\s*(,\s*[0-9.]+\s*)?\))$`)

// cssColor пропускает только hex и rgb(a), остальное заменяется заглушкой templ.
func cssColor(c string) string {
	if cssColorPattern.MatchString(c) {
		return c
	}
	return safehtml.InnocuousPropertyValue
}

// style собирает значение атрибута style, экранированное для HTML.
func style(decls ...string) string {
	return templ.EscapeString(strings.Join(decls, ";"))
}

// Marquee: бегущая строка. Элементы рисуются дважды подряд, чтобы цикл анимации
// не имел шва. speed: секунды на полный проход.
func Marquee(items []string, speed int, direction string) templ.Component {
	if speed <= 0 {
		speed = DefaultMarqueeSpeed
	}
	if direction != "right" {
		direction = DefaultMarqueeDirection
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div class="marquee" data-direction="%s" style="%s">`,
			direction, style(fmt.Sprintf("--marquee-duration: %ds", speed)))
		b.WriteString(`<div class="marquee-track">`)
		for copyIdx := 0; copyIdx < 2; copyIdx++ {
			hidden := ""
			if copyIdx == 1 {
				hidden = ` aria-hidden="true"`
			}
			fmt.Fprintf(&b, `<ul class="marquee-group"%s>`, hidden)
			for _, item := range items {
				fmt.Fprintf(&b, `<li class="marquee-item">%s</li>`, templ.EscapeString(item))
			}
			b.WriteString(`</ul>`)
		}
		b.WriteString(`</div></div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// GradientCard оборачивает body карточкой с градиентной рамкой; glow добавляет свечение.
func GradientCard(glow bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "gradient-card"
		if glow {
			class += " gradient-card--glow"
		}
		if _, err := fmt.Fprintf(w, `<div class="%s"><div class="gradient-card-inner">`, class); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div></div>`)
		return err
	})
}

// ShimmerButton: основная кнопка с бегущим бликом. Заблокированная кнопка не анимируется.
func ShimmerButton(buttonType, label string, disabled bool) templ.Component {
	if buttonType == "" {
		buttonType = "button"
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		attrs := ""
		if disabled {
			attrs = ` disabled aria-disabled="true"`
		}
		_, err := fmt.Fprintf(w,
			`<button type="%s" class="shimmer-button"%s><span class="shimmer-button-label">%s</span></button>`,
			templ.EscapeString(buttonType), attrs, templ.EscapeString(label))
		return err
	})
}

// inert: пустой контейнер на месте эффекта при reduced motion.
func inert(kind string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		k := templ.EscapeString(kind)
		_, err := fmt.Fprintf(w, `<div class="fx fx-%s" data-fx="%s" data-reduced="true" aria-hidden="true"></div>`, k, k)
		return err
	})
}

// Sparkles: искры; набор обновляет скрипт раз в intervalMs.
func Sparkles(list []effects.Sparkle, reduced bool, intervalMs int64) templ.Component {
	if reduced {
		return inert("sparkles")
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<div class="fx fx-sparkles" data-fx="sparkles" data-interval="%d" aria-hidden="true">`, intervalMs)
		for _, s := range list {
			fmt.Fprintf(&b, `<span class="fx-particle sparkle" style="%s"></span>`, style(
				fmt.Sprintf("left:%.2f%%", s.X),
				fmt.Sprintf("top:%.2f%%", s.Y),
				"color:"+cssColor(s.Color),
				fmt.Sprintf("animation-delay:%.2fs", s.Delay),
			))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func StarField(list []effects.Star, reduced bool) templ.Component {
	if reduced {
		return inert("stars")
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="fx fx-stars" data-fx="stars" aria-hidden="true">`)
		for _, s := range list {
			fmt.Fprintf(&b, `<span class="fx-particle star" style="%s"></span>`, style(
				fmt.Sprintf("left:%.2f%%", s.X),
				fmt.Sprintf("top:%.2f%%", s.Y),
				fmt.Sprintf("width:%.2fpx", s.Size),
				fmt.Sprintf("height:%.2fpx", s.Size),
				fmt.Sprintf("animation-duration:%.2fs", s.Duration),
				fmt.Sprintf("animation-delay:%.2fs", s.Delay),
			))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func FloatingOrbs(list []effects.Orb, reduced bool) templ.Component {
	if reduced {
		return inert("orbs")
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<div class="fx fx-orbs" data-fx="orbs" aria-hidden="true">`)
		for _, o := range list {
			fmt.Fprintf(&b, `<span class="fx-particle orb" style="%s"></span>`, style(
				fmt.Sprintf("left:%.0f%%", o.X),
				fmt.Sprintf("top:%.0f%%", o.Y),
				fmt.Sprintf("width:%dpx", o.Size),
				fmt.Sprintf("height:%dpx", o.Size),
				"color:"+cssColor(o.Color),
				fmt.Sprintf("animation-duration:%ds", o.Duration),
			))
		}
		b.WriteString(`</div>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

// TemplateCard: карточка маркетплейса. Бейдж "Popular" только у популярного шаблона.
func TemplateCard(t domain.MarketplaceTemplate) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, `<article class="template-card template-card--%s" data-template-id="%d">`, templ.EscapeString(t.Color), t.ID)
		if t.Popular {
			b.WriteString(`<span class="badge badge--popular">Popular</span>`)
		}
		fmt.Fprintf(&b, `<div class="template-icon" data-icon="%s"></div>`, templ.EscapeString(t.Icon))
		fmt.Fprintf(&b, `<h3>%s</h3><p>%s</p><ul class="template-features">`, templ.EscapeString(t.Name), templ.EscapeString(t.Description))
		for _, f := range t.Features {
			fmt.Fprintf(&b, `<li>%s</li>`, templ.EscapeString(f))
		}
		// Deploy пока ничего не делает
		b.WriteString(`</ul><button type="button" class="btn btn-primary" data-action="deploy-template">Deploy</button></article>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
	return GradientCard(t.Popular, body)
}

// FeatureCard: карточка блока преимуществ на лендинге.
func FeatureCard(title, text, icon, color string) templ.Component {
	return GradientCard(false, templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<div class="feature feature--%s"><div class="feature-icon" data-icon="%s"></div><h3>%s</h3><p>%s</p></div>`,
			templ.EscapeString(color), templ.EscapeString(icon), templ.EscapeString(title), templ.EscapeString(text))
		return err
	}))
}

// html переводит компонент в template.HTML для вставки в html/template.
func html(ctx context.Context, c templ.Component) (template.HTML, error) {
	return templ.ToGoHTML(ctx, c)
}
