package dto

import "ai-analytics-be/pkg/store"

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
}

type SummaryResponse struct {
	store.Summary
	Preview *DatasetPreview `json:"preview,omitempty"`
}

// DatasetPreview is a bounded slice of the active generation for UI display.
type DatasetPreview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
