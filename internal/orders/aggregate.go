package orders

import (
	"time"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// SameLocalDay reports whether t falls on now's calendar date in now's
// location. Client and server clock skew is accepted.
func SameLocalDay(t, now time.Time) bool {
	ty, tm, td := t.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return ty == ny && tm == nm && td == nd
}

// CountToday counts orders created on now's local calendar date
func CountToday(orders []domain.Order, now time.Time) int {
	n := 0
	for _, o := range orders {
		if SameLocalDay(o.CreatedAt, now) {
			n++
		}
	}
	return n
}

// CountByStatus counts orders per status key
func CountByStatus(orders []domain.Order) map[string]int {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[o.Status]++
	}
	return counts
}

// Board lists order numbers that are ready and still in progress
type Board struct {
	Ready   []int `json:"ready"`
	Pending []int `json:"pending"`
}

// StatusBoard collects up to limit done and limit pending order numbers in
// feed order. A non-positive limit means DefaultBoardLimit.
func StatusBoard(orders []domain.Order, limit int) Board {
	if limit <= 0 {
		limit = DefaultBoardLimit
	}
	var b Board
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusDone:
			if len(b.Ready) < limit {
				b.Ready = append(b.Ready, o.Number)
			}
		case domain.OrderStatusPending:
			if len(b.Pending) < limit {
				b.Pending = append(b.Pending, o.Number)
			}
		}
	}
	return b
}

// IngredientLookup resolves catalog ids
type IngredientLookup interface {
	Lookup(id string) (domain.Ingredient, bool)
}

// LineItem is one distinct ingredient of an order with its occurrence count
type LineItem struct {
	Ingredient domain.Ingredient `json:"ingredient"`
	Count      int               `json:"count"`
}

// Details is an order resolved against the catalog
type Details struct {
	Order   domain.Order `json:"order"`
	Items   []LineItem   `json:"items"`
	Total   int          `json:"total"`
	Missing []string     `json:"missing,omitempty"`
}

// Describe groups an order's ingredient ids in first-seen order and prices
// them. Ids unknown to the catalog are reported in Missing.
func Describe(order domain.Order, catalog IngredientLookup) Details {
	d := Details{Order: order}
	index := make(map[string]int)

	for _, id := range order.Ingredients {
		if i, ok := index[id]; ok {
			d.Items[i].Count++
			d.Total += d.Items[i].Ingredient.Price
			continue
		}
		ing, ok := catalog.Lookup(id)
		if !ok {
			if !contains(d.Missing, id) {
				d.Missing = append(d.Missing, id)
			}
			continue
		}
		index[id] = len(d.Items)
		d.Items = append(d.Items, LineItem{Ingredient: ing, Count: 1})
		d.Total += ing.Price
	}
	return d
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
