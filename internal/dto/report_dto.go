package dto

import "ai-analytics-be/pkg/report"

type GenerateReportResponse struct {
	Filename string           `json:"filename"`
	Document *report.Document `json:"document"`
}
