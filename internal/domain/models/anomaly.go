package models

import "time"

// Anomaly types.
const (
	AnomalySpike             = "spike"
	AnomalyDrop              = "drop"
	AnomalySeasonalDeviation = "seasonal_deviation"
	AnomalyTrendBreak        = "trend_break"
)

// Anomaly is one flagged demand day.
type Anomaly struct {
	Date               time.Time `json:"date"`
	Type               string    `json:"type"`
	Expected           float64   `json:"expected"`
	Actual             float64   `json:"actual"`
	DeviationPercent   float64   `json:"deviationPercent"`
	SeverityScore      float64   `json:"severityScore"` // 0..1
	Confidence         float64   `json:"confidence"`    // 0.5..1
	PossibleCauses     []string  `json:"possibleCauses"`
	RecommendedActions []string  `json:"recommendedActions"`
}

// AnomalySummary aggregates a report.
type AnomalySummary struct {
	Total       int            `json:"total"`
	ByType      map[string]int `json:"byType"`
	MaxSeverity float64        `json:"maxSeverity"`
	AvgSeverity float64        `json:"avgSeverity"`
}

// AnomalyReport is the anomaly scan output for one product.
type AnomalyReport struct {
	Product     Product        `json:"product"`
	Anomalies   []Anomaly      `json:"anomalies"`
	Summary     AnomalySummary `json:"summary"`
	GeneratedAt time.Time      `json:"generatedAt"`
}
