package httpin

import (
	"net/http"

	"cart_service/internal/ports/inbound"
	"cart_service/internal/web"
)

func NewMux(h *Handlers, uc inbound.CartUseCase, prices *PriceFormatter) *http.ServeMux {
	mux := http.NewServeMux()

	h.Register(mux)

	ui := NewUI(uc, prices)
	mux.Handle("/", web.IndexHandler())
	mux.HandleFunc("/ui/cart", ui.CartSSE)
	mux.HandleFunc("/ui/cart/add", ui.AddSSE)
	mux.HandleFunc("/ui/cart/remove", ui.RemoveSSE)
	mux.HandleFunc("/ui/cart/update", ui.UpdateSSE)

	return mux
}
