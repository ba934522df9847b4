package usecase

import (
	"context"
	"errors"

	"calq-destination-service/internal/metrics/core/domain"
	"calq-destination-service/internal/metrics/core/ports"
)

var (
	ErrInvalidMetricsQuery = errors.New("invalid metrics query")
	ErrInvalidTimeRange    = errors.New("invalid time range")
	ErrInvalidGroupBy      = errors.New("invalid group_by value")
	ErrInvalidInterval     = errors.New("invalid interval for time grouping")
	ErrInvalidOutcome      = errors.New("invalid outcome")
)

var operations = map[string]bool{
	"track":    true,
	"identify": true,
	"alias":    true,
	"page":     true,
	"screen":   true,
}

var outcomes = map[string]bool{
	"delivered": true,
	"failed":    true,
	"skipped":   true,
}

type GetMetricsInput struct {
	Operation string
	From      int64
	To        int64

	Outcome  *string
	GroupBy  string // "", "outcome", "time"
	Interval string // "hour" / "day", required when group_by=time
}

type GetMetricsUseCase struct {
	reader ports.MetricsReaderPort
}

func NewGetMetricsUseCase(reader ports.MetricsReaderPort) *GetMetricsUseCase {
	return &GetMetricsUseCase{reader: reader}
}

// Execute validates the query, turns it into a filter and asks the reader.
func (uc *GetMetricsUseCase) Execute(ctx context.Context, in GetMetricsInput) (*domain.AggregatedMetrics, error) {

	if !operations[in.Operation] {
		return nil, ErrInvalidMetricsQuery
	}

	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	if in.Outcome != nil && !outcomes[*in.Outcome] {
		return nil, ErrInvalidOutcome
	}

	switch in.GroupBy {
	case "":
		// no group
	case "outcome":
		// valid
	case "time":
		if in.Interval != "hour" && in.Interval != "day" {
			return nil, ErrInvalidInterval
		}
	default:
		return nil, ErrInvalidGroupBy
	}

	filter := ports.MetricsFilter{
		Operation: in.Operation,
		From:      in.From,
		To:        in.To,
		Outcome:   in.Outcome,
		GroupBy:   in.GroupBy,
		Interval:  in.Interval,
	}

	result, err := uc.reader.QueryMetrics(ctx, filter)
	if err != nil {
		return nil, err
	}

	return result, nil
}
