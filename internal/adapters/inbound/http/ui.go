package httpin

import (
	"bytes"
	"context"
	"html/template"
	"net/http"

	"cart_service/internal/adapters/outbound/notify"
	"cart_service/internal/core/domain"
	"cart_service/internal/ports/inbound"
	"cart_service/internal/web"

	"github.com/starfederation/datastar-go/datastar"
)

type UI struct {
	uc     inbound.CartUseCase
	prices *PriceFormatter
	tmpl   *template.Template
}

func NewUI(uc inbound.CartUseCase, prices *PriceFormatter) *UI {
	return &UI{
		uc:     uc,
		prices: prices,
		tmpl:   web.MustTemplates("cart.html"),
	}
}

type uiSignals struct {
	ProductID int `json:"product_id"`
	Amount    int `json:"amount"`
}

func (u *UI) CartSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)
	u.patch(r.Context(), sse, nil)
}

func (u *UI) AddSSE(w http.ResponseWriter, r *http.Request) {
	u.mutate(w, r, func(ctx context.Context, s uiSignals) {
		u.uc.AddProduct(ctx, s.ProductID)
	})
}

func (u *UI) RemoveSSE(w http.ResponseWriter, r *http.Request) {
	u.mutate(w, r, func(ctx context.Context, s uiSignals) {
		u.uc.RemoveProduct(ctx, s.ProductID)
	})
}

func (u *UI) UpdateSSE(w http.ResponseWriter, r *http.Request) {
	u.mutate(w, r, func(ctx context.Context, s uiSignals) {
		u.uc.UpdateProductAmount(ctx, inbound.UpdateProductAmount{ProductID: s.ProductID, Amount: s.Amount})
	})
}

func (u *UI) mutate(w http.ResponseWriter, r *http.Request, op func(context.Context, uiSignals)) {
	signals := &uiSignals{}
	readErr := datastar.ReadSignals(r, signals)

	sse := datastar.NewSSE(w, r)
	if readErr != nil {
		_ = sse.PatchElements(`<div id="toasts"><p class="toast">Bad request: invalid signals</p></div>`)
		return
	}
	if signals.ProductID <= 0 {
		_ = sse.PatchElements(`<div id="toasts"><p class="toast">Please enter a product id</p></div>`)
		return
	}

	ctx, collected := notify.Collect(r.Context())
	op(ctx, *signals)
	u.patch(ctx, sse, collected.Notifications())
}

func (u *UI) patch(ctx context.Context, sse *datastar.ServerSentEventGenerator, notes []domain.Notification) {
	view := newCartView(u.uc.Cart(ctx), notes, u.prices)

	cart, err := u.render("cart", view)
	if err != nil {
		_ = sse.PatchElements(`<div id="toasts"><p class="toast">Internal error</p></div>`)
		return
	}
	toasts, err := u.render("toasts", view)
	if err != nil {
		_ = sse.PatchElements(`<div id="toasts"><p class="toast">Internal error</p></div>`)
		return
	}

	_ = sse.PatchElements(cart)
	_ = sse.PatchElements(toasts)
}

func (u *UI) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := u.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
