package models

import "github.com/shopspring/decimal"

// MenuItem is a purchasable entry of the menu_items table.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image_url,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
}
