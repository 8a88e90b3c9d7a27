package models

// Requests for forecasting HTTP endpoints. Defined in domain for consistency and reuse.

type ForecastRequest struct {
	ProductID  string `query:"product_id" json:"product_id" validate:"required"`
	LocationID string `query:"location_id" json:"location_id"`
	Horizon    int    `query:"horizon" json:"horizon" default:"30" validate:"gte=1,lte=365"`
	Days       int    `query:"days" json:"days" default:"180" validate:"gte=1,lte=1095"`
}

type AnomalyScanRequest struct {
	ProductID   string  `query:"product_id" json:"product_id" validate:"required"`
	LocationID  string  `query:"location_id" json:"location_id"`
	Days        int     `query:"days" json:"days" default:"90" validate:"gte=1,lte=1095"`
	Sensitivity int     `query:"sensitivity" json:"sensitivity" default:"5" validate:"gte=1,lte=10"`
	MinDevPct   float64 `query:"min_dev_pct" json:"min_dev_pct" default:"25" validate:"gte=0,lte=100"`
}

type BacktestRequest struct {
	ProductID  string `query:"product_id" json:"product_id" validate:"required"`
	LocationID string `query:"location_id" json:"location_id"`
	Horizon    int    `query:"horizon" json:"horizon" default:"30" validate:"gte=1,lte=365"`
	Days       int    `query:"days" json:"days" default:"365" validate:"gte=1,lte=1095"`
}
