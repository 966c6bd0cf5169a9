package httpin

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"cart_service/internal/adapters/outbound/notify"
	"cart_service/internal/ports/inbound"
	"cart_service/internal/web"
)

type ToastSource interface {
	Recent() []notify.Entry
}

type CacheStats interface {
	Stats() (hits uint64, misses uint64)
	Len(ctx context.Context) int
}

type Handlers struct {
	uc        inbound.CartUseCase
	toasts    ToastSource
	cache     CacheStats
	prices    *PriceFormatter
	adminTmpl *template.Template
}

func NewHandlers(uc inbound.CartUseCase, toasts ToastSource, cache CacheStats, prices *PriceFormatter) *Handlers {
	t := web.MustTemplates("admin.html")
	return &Handlers{
		uc:        uc,
		toasts:    toasts,
		cache:     cache,
		prices:    prices,
		adminTmpl: t,
	}
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.health)
	mux.HandleFunc("/cart", h.getCart)
	mux.HandleFunc("/cart/products/", h.cartProduct)
	mux.HandleFunc("/admin", h.admin)
}

func (h *Handlers) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handlers) getCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, newCartView(h.uc.Cart(r.Context()), nil, h.prices), http.StatusOK)
}

type amountBody struct {
	Amount *int `json:"amount"`
}

// cartProduct serves /cart/products/{id}:
//
//	POST   add one unit
//	DELETE remove the line item
//	PUT    {"amount": n} set the quantity
//
// Failed operations still answer 200; the notifications field says what went wrong.
func (h *Handlers) cartProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productIDFromPath(r.URL.Path, "/cart/products/")
	if !ok {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	ctx, collected := notify.Collect(r.Context())

	switch r.Method {
	case http.MethodPost:
		h.uc.AddProduct(ctx, id)
	case http.MethodDelete:
		h.uc.RemoveProduct(ctx, id)
	case http.MethodPut:
		var body amountBody
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<10))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&body); err != nil || body.Amount == nil {
			http.Error(w, `body must be {"amount": <int>}`, http.StatusBadRequest)
			return
		}
		h.uc.UpdateProductAmount(ctx, inbound.UpdateProductAmount{ProductID: id, Amount: *body.Amount})
	default:
		w.Header().Set("Allow", "POST, PUT, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, newCartView(h.uc.Cart(ctx), collected.Notifications(), h.prices), http.StatusOK)
}

func productIDFromPath(path, prefix string) (int, bool) {
	raw := strings.TrimSpace(strings.TrimPrefix(path, prefix))
	raw = strings.TrimSuffix(raw, "/")
	if raw == "" || strings.Contains(raw, "/") {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

type adminVM struct {
	Cart        cartView
	CacheSize   int
	CacheHits   uint64
	CacheMisses uint64
	Toasts      []adminToastRow
}

type adminToastRow struct {
	Seq       int64
	At        string
	Kind      string
	ProductID int
	Message   string
}

func (h *Handlers) admin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	vm := adminVM{
		Cart:      newCartView(h.uc.Cart(r.Context()), nil, h.prices),
		CacheSize: h.cache.Len(r.Context()),
	}
	vm.CacheHits, vm.CacheMisses = h.cache.Stats()

	recent := h.toasts.Recent()
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		vm.Toasts = append(vm.Toasts, adminToastRow{
			Seq:       e.Seq,
			At:        e.At.Format("2006-01-02 15:04:05"),
			Kind:      string(e.Kind),
			ProductID: e.ProductID,
			Message:   e.Message,
		})
	}

	var buf bytes.Buffer
	if err := h.adminTmpl.Execute(&buf, vm); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
