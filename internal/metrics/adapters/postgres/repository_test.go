package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"calq-destination-service/internal/metrics/core/ports"
)

// fakeRowScanner implements RowScanner for tests.
type fakeRowScanner struct {
	rows []fakeRow
	i    int
	err  error
}

type fakeRow struct {
	values []any
}

func (f *fakeRowScanner) Next() bool {
	return f.i < len(f.rows)
}

func (f *fakeRowScanner) Scan(dest ...any) error {
	if f.i >= len(f.rows) {
		return errors.New("no more rows")
	}
	row := f.rows[f.i]
	if len(dest) != len(row.values) {
		return errors.New("dest length mismatch")
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			v, ok := row.values[i].(int64)
			if !ok {
				return errors.New("type assertion to int64 failed")
			}
			*d = v
		case *string:
			v, ok := row.values[i].(string)
			if !ok {
				return errors.New("type assertion to string failed")
			}
			*d = v
		case *time.Time:
			v, ok := row.values[i].(time.Time)
			if !ok {
				return errors.New("type assertion to time.Time failed")
			}
			*d = v
		default:
			return errors.New("unsupported dest type")
		}
	}
	f.i++
	return nil
}

func (f *fakeRowScanner) Err() error {
	return f.err
}

func (f *fakeRowScanner) Close() error {
	return nil
}

// fakeDB implements DB interface.
type fakeDB struct {
	QueryFn   func(ctx context.Context, query string, args ...any) (RowScanner, error)
	lastQuery string
	lastArgs  []any
	called    bool
}

func (f *fakeDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	f.called = true
	f.lastQuery = query
	f.lastArgs = args
	if f.QueryFn != nil {
		return f.QueryFn(ctx, query, args...)
	}
	return nil, nil
}

// ------------------------------------------------------------
// NO GROUP BY
// ------------------------------------------------------------

func TestMetricsRepository_NoGroupBy(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "FROM deliveries") {
				t.Fatalf("unexpected query: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{int64(150), int64(40)}},
				},
			}, nil
		},
	}

	repo := NewMetricsRepository(db)

	filter := ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
	}

	res, err := repo.QueryMetrics(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.called {
		t.Fatalf("expected QueryContext to be called")
	}
	if res.TotalCount != 150 || res.UniqueActors != 40 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.GroupBy != "" {
		t.Fatalf("expected empty group_by, got %s", res.GroupBy)
	}
}

// ------------------------------------------------------------
// GROUP BY OUTCOME
// ------------------------------------------------------------

func TestMetricsRepository_GroupByOutcome(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "outcome AS group_key") {
				t.Fatalf("expected outcome grouping in query, got: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{"delivered", int64(120), int64(50)}},
					{values: []any{"failed", int64(80), int64(30)}},
				},
			}, nil
		},
	}

	repo := NewMetricsRepository(db)

	filter := ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
		GroupBy:   "outcome",
	}

	res, err := repo.QueryMetrics(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.GroupBy != "outcome" {
		t.Fatalf("expected group_by=outcome, got %s", res.GroupBy)
	}
	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(res.Groups))
	}

	if res.Groups[0].Key != "delivered" {
		t.Fatalf("expected first group delivered, got %s", res.Groups[0].Key)
	}
	if res.TotalCount != 200 {
		t.Fatalf("expected total_count=200, got %d", res.TotalCount)
	}
	if res.UniqueActors != 80 {
		t.Fatalf("expected unique_actors=80, got %d", res.UniqueActors)
	}
}

// ------------------------------------------------------------
// GROUP BY TIME (hour)
// ------------------------------------------------------------

func TestMetricsRepository_GroupByTime(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "date_trunc('hour'") {
				t.Fatalf("expected date_trunc('hour', ...) in query, got: %s", query)
			}

			t1 := time.Date(2025, 12, 7, 10, 0, 0, 0, time.UTC)
			t2 := time.Date(2025, 12, 7, 11, 0, 0, 0, time.UTC)

			return &fakeRowScanner{
				rows: []fakeRow{
					{values: []any{t1, int64(100), int64(40)}},
					{values: []any{t2, int64(200), int64(60)}},
				},
			}, nil
		},
	}

	repo := NewMetricsRepository(db)

	filter := ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
		GroupBy:   "time",
		Interval:  "hour",
	}

	res, err := repo.QueryMetrics(context.Background(), filter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.GroupBy != "time" {
		t.Fatalf("expected group_by=time, got %s", res.GroupBy)
	}
	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(res.Groups))
	}
	if res.TotalCount != 300 {
		t.Fatalf("expected total_count=300, got %d", res.TotalCount)
	}
	if res.UniqueActors != 100 {
		t.Fatalf("expected unique_actors=100, got %d", res.UniqueActors)
	}

	for _, g := range res.Groups {
		if _, err := time.Parse(time.RFC3339, g.Key); err != nil {
			t.Fatalf("expected RFC3339 key, got %s (%v)", g.Key, err)
		}
	}
}

// ------------------------------------------------------------
// DB ERROR
// ------------------------------------------------------------

func TestMetricsRepository_DBError(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return nil, errors.New("db failure")
		},
	}

	repo := NewMetricsRepository(db)

	filter := ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
	}

	res, err := repo.QueryMetrics(context.Background(), filter)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if err.Error() != "db failure" {
		t.Fatalf("expected db failure, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected nil result on error")
	}
}

// ------------------------------------------------------------
// OUTCOME FILTER
// ------------------------------------------------------------

func TestMetricsRepository_OutcomeFilter(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{int64(3), int64(1)}}}}, nil
		},
	}

	repo := NewMetricsRepository(db)

	outcome := "failed"
	_, err := repo.QueryMetrics(context.Background(), ports.MetricsFilter{
		Operation: "alias",
		From:      100,
		To:        200,
		Outcome:   &outcome,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(db.lastQuery, "outcome = $4") {
		t.Fatalf("expected outcome filter in query, got: %s", db.lastQuery)
	}
	if len(db.lastArgs) != 4 || db.lastArgs[3] != "failed" {
		t.Fatalf("unexpected args: %v", db.lastArgs)
	}
}

func TestMetricsRepository_UnsupportedGroupBy(t *testing.T) {
	repo := NewMetricsRepository(&fakeDB{})

	_, err := repo.QueryMetrics(context.Background(), ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
		GroupBy:   "channel",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported group_by")
	}
}

// ------------------------------------------------------------
// DELIVERY-SPECIFIC QUERY SHAPE
// ------------------------------------------------------------

func TestMetricsRepository_ArgsAreOperationAndUTCRange(t *testing.T) {
	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			return &fakeRowScanner{rows: []fakeRow{{values: []any{int64(0), int64(0)}}}}, nil
		},
	}

	repo := NewMetricsRepository(db)

	_, err := repo.QueryMetrics(context.Background(), ports.MetricsFilter{
		Operation: "identify",
		From:      1700000000,
		To:        1700003600,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.lastArgs) != 3 {
		t.Fatalf("expected 3 args without outcome filter, got %v", db.lastArgs)
	}
	if db.lastArgs[0] != "identify" {
		t.Fatalf("expected operation as $1, got %v", db.lastArgs[0])
	}
	from, ok := db.lastArgs[1].(time.Time)
	if !ok || !from.Equal(time.Unix(1700000000, 0)) || from.Location() != time.UTC {
		t.Fatalf("expected UTC from time as $2, got %v", db.lastArgs[1])
	}
	if !strings.Contains(db.lastQuery, "delivered_at BETWEEN $2 AND $3") {
		t.Fatalf("expected delivered_at range, got: %s", db.lastQuery)
	}
	if strings.Contains(db.lastQuery, "outcome =") {
		t.Fatalf("unexpected outcome filter: %s", db.lastQuery)
	}
}

func TestMetricsRepository_DayBucketsAndOutcomeFilter(t *testing.T) {
	bucket := time.Date(2025, 3, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))

	db := &fakeDB{
		QueryFn: func(ctx context.Context, query string, args ...any) (RowScanner, error) {
			if !strings.Contains(query, "date_trunc('day', delivered_at) AS group_key") {
				t.Fatalf("expected day bucket, got: %s", query)
			}
			if !strings.Contains(query, "outcome = $4") {
				t.Fatalf("expected outcome filter, got: %s", query)
			}
			return &fakeRowScanner{
				rows: []fakeRow{{values: []any{bucket, int64(7), int64(2)}}},
			}, nil
		},
	}

	repo := NewMetricsRepository(db)

	outcome := "skipped"
	res, err := repo.QueryMetrics(context.Background(), ports.MetricsFilter{
		Operation: "identify",
		From:      100,
		To:        200,
		Outcome:   &outcome,
		GroupBy:   "time",
		Interval:  "day",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Groups) != 1 || res.Groups[0].Key != "2025-03-01T00:00:00Z" {
		t.Fatalf("expected bucket key normalised to UTC, got %+v", res.Groups)
	}
	if res.TotalCount != 7 || res.UniqueActors != 2 {
		t.Fatalf("unexpected totals: %+v", res)
	}
	if db.lastArgs[3] != "skipped" {
		t.Fatalf("expected outcome as $4, got %v", db.lastArgs)
	}
}

func TestMetricsRepository_UnsupportedInterval(t *testing.T) {
	db := &fakeDB{}
	repo := NewMetricsRepository(db)

	_, err := repo.QueryMetrics(context.Background(), ports.MetricsFilter{
		Operation: "track",
		From:      100,
		To:        200,
		GroupBy:   "time",
		Interval:  "week'); DROP TABLE deliveries; --",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported interval")
	}
	if db.called {
		t.Fatalf("query must not run with an unsupported interval")
	}
}
