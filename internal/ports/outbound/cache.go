package outbound

import (
	"context"

	"cart_service/internal/core/domain"
)

type ProductCache interface {
	Get(ctx context.Context, productID int) (domain.Product, bool)
	Set(ctx context.Context, product domain.Product)
	Len(ctx context.Context) int
}
