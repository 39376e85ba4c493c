package domain

import "fmt"

type Plan struct {
	Name       string   `json:"name"`        // "Pro"
	PriceCents int64    `json:"price_cents"` // 2900
	Period     string   `json:"period"`      // "month"
	Features   []string `json:"features"`
}

// Price форматирует цену как "$29.00".
func (p Plan) Price() string {
	return FormatCents(p.PriceCents)
}

type Invoice struct {
	Date   string `json:"date"`   // "Feb 19, 2026"
	Amount string `json:"amount"` // "$29.00"
	Status string `json:"status"` // "Paid"
}

type PaymentMethod struct {
	Last4   string `json:"last4"`
	Expires string `json:"expires"` // "12/25"
}

// Masked: номер карты в том виде, в каком его показывает страница Billing.
func (p PaymentMethod) Masked() string {
	return "•••• •••• •••• " + p.Last4
}

type Billing struct {
	Plan     Plan          `json:"plan"`
	Payment  PaymentMethod `json:"payment"`
	Invoices []Invoice     `json:"invoices"`
}

func FormatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
