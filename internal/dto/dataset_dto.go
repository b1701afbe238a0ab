package dto

import (
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/store"
)

type UploadResponse struct {
	FileInfo *store.FileInfo         `json:"file_info"`
	Profile  []dataset.ColumnProfile `json:"profile"`
	Preview  *DatasetPreview         `json:"preview"`
}

// CleaningNeedsResponse reports detected data quality issues.
type CleaningNeedsResponse struct {
	MissingValues map[string]int `json:"missing_values"`
	Duplicates    int            `json:"duplicates"`
	Warnings      []string       `json:"warnings"`
}

type CleanRequest struct {
	CleanMissing      bool     `json:"clean_missing"`
	MissingStrategy   string   `json:"missing_strategy,omitempty" validate:"omitempty,oneof=mean median mode ffill bfill drop"`
	MissingColumns    []string `json:"missing_columns,omitempty"`
	CleanDuplicates   bool     `json:"clean_duplicates"`
	DuplicateStrategy string   `json:"duplicate_strategy,omitempty" validate:"omitempty,oneof=first last drop keep"`
}

type CleanResponse struct {
	Operation *cleaning.Operation     `json:"operation"`
	Profile   []dataset.ColumnProfile `json:"profile"`
	Preview   *DatasetPreview         `json:"preview"`
}
