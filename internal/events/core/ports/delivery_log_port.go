package ports

import (
	"context"

	"calq-destination-service/internal/events/core/domain"
)

type DeliveryLogPort interface {
	RecordDelivery(ctx context.Context, d *domain.Delivery) error
}
