package outbound

import (
	"context"

	"cart_service/internal/core/domain"
)

type Catalog interface {
	GetProduct(ctx context.Context, productID int) (domain.Product, error)
	GetStock(ctx context.Context, productID int) (domain.Stock, error)
}
