package httpin

import (
	"fmt"
	"strings"

	"cart_service/internal/core/domain"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// PriceFormatter renders amounts in the storefront's locale and currency.
// Digits come from the decimal itself; only the symbol and separators are
// taken from the locale.
type PriceFormatter struct {
	symbol  string
	decimal string
	group   string
}

func NewPriceFormatter(locale, iso string) (*PriceFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	unit, err := currency.ParseISO(iso)
	if err != nil {
		return nil, fmt.Errorf("parse currency %q: %w", iso, err)
	}

	p := message.NewPrinter(tag)
	dec, group := separators(p.Sprint(number.Decimal(1234.5, number.Scale(1))))
	return &PriceFormatter{
		symbol:  p.Sprint(currency.Symbol(unit)),
		decimal: dec,
		group:   group,
	}, nil
}

// separators reads the locale's marks off a rendering of 1234.5.
func separators(sample string) (dec, group string) {
	r := []rune(sample)
	if len(r) < 3 {
		return ".", ""
	}
	dec = string(r[len(r)-2])
	if digits := r[:len(r)-2]; len(digits) > 4 {
		group = string(digits[1 : len(digits)-3])
	}
	return dec, group
}

func (f *PriceFormatter) Format(d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.group)
		}
		b.WriteRune(c)
	}
	return f.symbol + " " + sign + b.String() + f.decimal + frac
}

type lineItemView struct {
	ID       int     `json:"id"`
	Title    string  `json:"title"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Amount   int     `json:"amount"`
	Subtotal string  `json:"subtotal"`

	PriceText    string `json:"price_text"`
	SubtotalText string `json:"subtotal_text"`
}

type cartView struct {
	Items         []lineItemView        `json:"items"`
	Count         int                   `json:"count"`
	Total         string                `json:"total"`
	TotalText     string                `json:"total_text"`
	Notifications []domain.Notification `json:"notifications"`
}

func newCartView(c domain.Cart, notes []domain.Notification, f *PriceFormatter) cartView {
	v := cartView{
		Items:         make([]lineItemView, 0, len(c)),
		Count:         len(c),
		Total:         c.Total().StringFixed(2),
		TotalText:     f.Format(c.Total()),
		Notifications: notes,
	}
	if v.Notifications == nil {
		v.Notifications = []domain.Notification{}
	}
	for _, it := range c {
		sub := it.Subtotal()
		v.Items = append(v.Items, lineItemView{
			ID:           it.ID,
			Title:        it.Title,
			Image:        it.Image,
			Price:        it.Price,
			Amount:       it.Amount,
			Subtotal:     sub.StringFixed(2),
			PriceText:    f.Format(decimal.NewFromFloat(it.Price)),
			SubtotalText: f.Format(sub),
		})
	}
	return v
}
