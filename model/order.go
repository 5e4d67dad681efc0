package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the view of one order session: the resolved cart lines and the
// derived totals.
type Order struct {
	SessionID string      `json:"session_id"`
	Lines     []OrderLine `json:"lines"`
	Total     string      `json:"total"`
	ItemCount int         `json:"item_count"`
	OpenedAt  time.Time   `json:"opened_at"`
}

type OrderLine struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}
