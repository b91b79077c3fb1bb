package domain

import "time"

// Review is a customer's rating of a completed order. At most one review
// exists per order.
type Review struct {
	ID        string
	UserID    string
	UserName  string
	OrderID   string
	OrderDate time.Time
	Rating    int
	Comment   string
	CreatedAt time.Time
}
