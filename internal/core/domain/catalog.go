package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalogue entry. Stock is display data only; order creation
// reads the current price but never checks or decrements stock.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	Stock       int
	Featured    bool
	CreatedAt   time.Time
}
