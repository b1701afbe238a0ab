package dto

import (
	"time"

	"ai-analytics-be/pkg/nlq"
)

type RunQueryRequest struct {
	Query string `json:"query" validate:"required,min=3,max=500"`
}

type RunQueryResponse struct {
	Query       string      `json:"query"`
	Tier        string      `json:"tier"`
	Explanation string      `json:"explanation"`
	Result      *nlq.Result `json:"result"`
}

// QueryHistoryEntry summarizes one history record; large tabular results are
// reduced to their dimensions.
type QueryHistoryEntry struct {
	Timestamp   time.Time      `json:"timestamp"`
	Query       string         `json:"query"`
	Tier        string         `json:"tier,omitempty"`
	Resolved    bool           `json:"resolved"`
	Explanation string         `json:"explanation"`
	Summary     *ResultSummary `json:"result_summary,omitempty"`
}

type ResultSummary struct {
	Kind    string   `json:"kind"`
	Value   *float64 `json:"value,omitempty"`
	Length  int      `json:"length,omitempty"`
	Rows    int      `json:"rows,omitempty"`
	Columns []string `json:"columns,omitempty"`
}
