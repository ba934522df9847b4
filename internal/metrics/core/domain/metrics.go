package domain

// AggregatedMetrics summarizes deliveries of one operation over a time range.
type AggregatedMetrics struct {
	Operation    string
	From         int64 // unix second
	To           int64 // unix second
	TotalCount   int64
	UniqueActors int64

	GroupBy string // "", "outcome", "time"
	Groups  []MetricsGroup
}

type MetricsGroup struct {
	Key          string // e.g. "delivered" or "2025-12-07T10:00:00Z"
	TotalCount   int64
	UniqueActors int64
}
