package orders

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// orderCache is the transient lookup-by-number view. Entries expire so a
// long-running session does not serve an order's stale status forever.
type orderCache struct {
	lru *expirable.LRU[int, domain.Order]
}

// newOrderCache creates a cache holding at most size orders for ttl each
func newOrderCache(size int, ttl time.Duration) *orderCache {
	return &orderCache{
		lru: expirable.NewLRU[int, domain.Order](size, nil, ttl),
	}
}

func (c *orderCache) Get(number int) (domain.Order, bool) {
	return c.lru.Get(number)
}

func (c *orderCache) Set(order domain.Order) {
	c.lru.Add(order.Number, order)
}

func (c *orderCache) Clear() {
	c.lru.Purge()
}
