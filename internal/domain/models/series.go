package models

import "time"

// Movement is a single signed stock movement event for a product at a location.
// Negative Quantity means stock going out (a sale or transfer out); the demand
// series is built from the absolute magnitude of outgoing movements.
type Movement struct {
	ProductID  string
	LocationID string
	Date       time.Time
	Quantity   float64
	OrgID      string
}

// Product carries identity metadata used to label forecast output.
type Product struct {
	ID   string
	Name string
}

// DailyObservation is one day of observed demand with calendar context.
// Built once by the series builder and treated as immutable afterwards.
type DailyObservation struct {
	Date      time.Time `json:"date"`
	Value     float64   `json:"value"`
	DayOfWeek int       `json:"dayOfWeek"` // 0 = Sunday
	IsWeekend bool      `json:"isWeekend"`
	IsHoliday bool      `json:"isHoliday"`
}

// Decomposition holds additive trend/seasonal/residual components,
// one entry per input day, with value[i] ~= trend[i] + seasonal[i] + residual[i].
type Decomposition struct {
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
	Baseline float64   `json:"baseline"`
}
