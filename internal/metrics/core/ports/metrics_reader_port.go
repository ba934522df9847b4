package ports

import (
	"context"

	"calq-destination-service/internal/metrics/core/domain"
)

type MetricsFilter struct {
	Operation string
	From      int64
	To        int64
	Outcome   *string // optional
	GroupBy   string  // "", "outcome", "time"
	Interval  string  // "hour" / "day", only with GroupBy = "time"
}

type MetricsReaderPort interface {
	QueryMetrics(ctx context.Context, f MetricsFilter) (*domain.AggregatedMetrics, error)
}
