package fiber

type MetricsGroupResponse struct {
	Key          string `json:"key"`
	TotalCount   int64  `json:"total_count"`
	UniqueActors int64  `json:"unique_actors"`
}

type MetricsResponse struct {
	Operation    string                 `json:"operation"`
	From         int64                  `json:"from"`
	To           int64                  `json:"to"`
	TotalCount   int64                  `json:"total_count"`
	UniqueActors int64                  `json:"unique_actors"`
	GroupBy      string                 `json:"group_by,omitempty"`
	Groups       []MetricsGroupResponse `json:"groups,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid time range"`
}
