package postgres

import (
	"context"
	"fmt"
	"time"

	"calq-destination-service/internal/metrics/core/domain"
	"calq-destination-service/internal/metrics/core/ports"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type MetricsRepository struct {
	db DB
}

func NewMetricsRepository(db DB) *MetricsRepository {
	return &MetricsRepository{db: db}
}

var _ ports.MetricsReaderPort = (*MetricsRepository)(nil)

func (r *MetricsRepository) QueryMetrics(ctx context.Context, f ports.MetricsFilter) (*domain.AggregatedMetrics, error) {
	fromTime := time.Unix(f.From, 0).UTC()
	toTime := time.Unix(f.To, 0).UTC()

	where := "operation = $1 AND delivered_at BETWEEN $2 AND $3"
	args := []any{f.Operation, fromTime, toTime}
	argIndex := 4

	if f.Outcome != nil {
		where += fmt.Sprintf(" AND outcome = $%d", argIndex)
		args = append(args, *f.Outcome)
	}

	result := &domain.AggregatedMetrics{
		Operation: f.Operation,
		From:      f.From,
		To:        f.To,
		GroupBy:   f.GroupBy,
	}

	switch f.GroupBy {
	case "":
		return r.queryNoGroup(ctx, where, args, result)
	case "outcome":
		return r.queryGrouped(ctx, "outcome", where, args, result, scanKey)
	case "time":
		if f.Interval != "hour" && f.Interval != "day" {
			return nil, fmt.Errorf("unsupported interval: %s", f.Interval)
		}
		bucket := fmt.Sprintf("date_trunc('%s', delivered_at)", f.Interval)
		return r.queryGrouped(ctx, bucket, where, args, result, scanBucket)
	default:
		return nil, fmt.Errorf("unsupported group_by: %s", f.GroupBy)
	}
}

func (r *MetricsRepository) queryNoGroup(
	ctx context.Context,
	where string,
	args []any,
	res *domain.AggregatedMetrics,
) (*domain.AggregatedMetrics, error) {
	query := `
SELECT
    COUNT(*) AS total_count,
    COUNT(DISTINCT actor) AS unique_actors
FROM deliveries
WHERE ` + where

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var total, unique int64
		if err := rows.Scan(&total, &unique); err != nil {
			return nil, err
		}
		res.TotalCount = total
		res.UniqueActors = unique
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

// keyScanner reads one grouped row and returns its group key.
type keyScanner func(rows RowScanner, total, unique *int64) (string, error)

func scanKey(rows RowScanner, total, unique *int64) (string, error) {
	var key string
	err := rows.Scan(&key, total, unique)
	return key, err
}

func scanBucket(rows RowScanner, total, unique *int64) (string, error) {
	var ts time.Time
	if err := rows.Scan(&ts, total, unique); err != nil {
		return "", err
	}
	return ts.UTC().Format(time.RFC3339), nil
}

func (r *MetricsRepository) queryGrouped(
	ctx context.Context,
	groupExpr string,
	where string,
	args []any,
	res *domain.AggregatedMetrics,
	scan keyScanner,
) (*domain.AggregatedMetrics, error) {
	query := fmt.Sprintf(`
SELECT
    %s AS group_key,
    COUNT(*) AS total_count,
    COUNT(DISTINCT actor) AS unique_actors
FROM deliveries
WHERE %s
GROUP BY group_key
ORDER BY group_key
`, groupExpr, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []domain.MetricsGroup
	var totalSum int64
	var uniqueSum int64

	for rows.Next() {
		var total, unique int64

		key, err := scan(rows, &total, &unique)
		if err != nil {
			return nil, err
		}

		groups = append(groups, domain.MetricsGroup{
			Key:          key,
			TotalCount:   total,
			UniqueActors: unique,
		})
		totalSum += total
		// an actor present in two groups is counted twice
		uniqueSum += unique
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.Groups = groups
	res.TotalCount = totalSum
	res.UniqueActors = uniqueSum

	return res, nil
}
