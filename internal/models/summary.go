package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryCount is the frequency of one categorical value in a dataset.
type CategoryCount struct {
	Value   string  `json:"value"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Summary holds descriptive statistics of a generated dataset.
type Summary struct {
	Count          int             `json:"count"`
	FirstTimestamp time.Time       `json:"first_timestamp"`
	LastTimestamp  time.Time       `json:"last_timestamp"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	MeanAmount     decimal.Decimal `json:"mean_amount"`
	MedianAmount   decimal.Decimal `json:"median_amount"`
	ByCity         []CategoryCount `json:"by_city"`
	ByType         []CategoryCount `json:"by_type"`
	ByOperator     []CategoryCount `json:"by_operator"`
}
