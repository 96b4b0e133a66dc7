package domain

import "time"

// Order is a placed order as reported by the backend.
// Ingredients is a flat list of catalog ids, repeated per occurrence.
type Order struct {
	ID          string    `json:"_id"`
	Number      int       `json:"number"`
	Name        string    `json:"name"`
	Status      string    `json:"status"`
	Ingredients []string  `json:"ingredients"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SameAs reports whether two orders are the same entry.
// Orders without a server id fall back to comparing numbers.
func (o Order) SameAs(other Order) bool {
	if o.ID != "" && other.ID != "" {
		return o.ID == other.ID
	}
	return o.Number != 0 && o.Number == other.Number
}

// Feed is the global order list with the server's aggregate counters
type Feed struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	TotalToday int     `json:"totalToday"`
}
