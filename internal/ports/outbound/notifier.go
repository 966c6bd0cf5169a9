package outbound

import (
	"context"

	"cart_service/internal/core/domain"
)

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification)
}
