package inbound

import (
	"context"

	"cart_service/internal/core/domain"
)

type UpdateProductAmount struct {
	ProductID int `json:"product_id"`
	Amount    int `json:"amount"`
}

// CartUseCase never returns errors: failures surface as notifications.
type CartUseCase interface {
	Cart(ctx context.Context) domain.Cart
	AddProduct(ctx context.Context, productID int)
	RemoveProduct(ctx context.Context, productID int)
	UpdateProductAmount(ctx context.Context, req UpdateProductAmount)
	Apply(ctx context.Context, cmd domain.Command)
}
