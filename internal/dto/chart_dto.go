package dto

import "ai-analytics-be/pkg/chart"

type CustomChartRequest struct {
	ChartType string `json:"chart_type" validate:"required,oneof=bar line pie histogram scatter box heatmap"`
	XCol      string `json:"x_col" validate:"required"`
	YCol      string `json:"y_col,omitempty"`
}

type ChartsResponse struct {
	Charts []chart.Spec `json:"charts"`
}
