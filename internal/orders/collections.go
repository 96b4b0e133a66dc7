package orders

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/logger"
	"github.com/osse101/BurgerClient_Go/internal/session"
)

// Source fetches the three order collections
type Source interface {
	Feed(ctx context.Context) (domain.Feed, error)
	UserOrders(ctx context.Context) ([]domain.Order, error)
	OrderByNumber(ctx context.Context, number int) (domain.Order, error)
}

// State is a copy of the collections and their fetch phases
type State struct {
	FeedOrders  []domain.Order `json:"feedOrders"`
	UserOrders  []domain.Order `json:"userOrders"`
	Total       int            `json:"total"`
	TotalToday  int            `json:"totalToday"`
	FeedStatus  domain.Status  `json:"feedStatus"`
	UserStatus  domain.Status  `json:"userStatus"`
	OrderStatus domain.Status  `json:"orderStatus"`
}

// Collections reconciles the global feed, the caller's orders and orders
// fetched one by one into views where no order appears twice.
//
// Each fetch takes a sequence number per resource; a response only updates
// that resource's status if no newer fetch of it was issued after it.
type Collections struct {
	source Source
	group  singleflight.Group
	cache  *orderCache

	mu          sync.RWMutex
	feed        []domain.Order
	user        []domain.Order
	total       int
	totalToday  int
	feedStatus  domain.Status
	userStatus  domain.Status
	orderStatus domain.Status
	seq         map[string]uint64
}

// New creates empty collections. Non-positive cache settings use the defaults.
func New(source Source, cacheSize int, cacheTTL time.Duration) *Collections {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	idle := domain.Status{Phase: domain.PhaseIdle}
	return &Collections{
		source:      source,
		cache:       newOrderCache(cacheSize, cacheTTL),
		feedStatus:  idle,
		userStatus:  idle,
		orderStatus: idle,
		seq:         make(map[string]uint64),
	}
}

// Register subscribes the collections to order.placed and session.changed events
func (c *Collections) Register(bus event.Bus) {
	bus.Subscribe(event.OrderPlaced, c.HandleOrderPlaced)
	bus.Subscribe(event.SessionChanged, c.HandleSessionChanged)
}

// HandleOrderPlaced records an order announced on the event bus
func (c *Collections) HandleOrderPlaced(ctx context.Context, evt event.Event) error {
	payload, err := evt.OrderPlacedPayload()
	if err != nil {
		return err
	}
	c.RecordPlacedOrder(ctx, payload.Order)
	return nil
}

// HandleSessionChanged forgets the caller's orders once the session ends
func (c *Collections) HandleSessionChanged(ctx context.Context, evt event.Event) error {
	payload, err := evt.SessionChangedPayload()
	if err != nil {
		return err
	}
	if payload.To == string(session.StateAnonymous) {
		c.ClearUserOrders(ctx)
	}
	return nil
}

// begin issues the next sequence number for resource; caller holds mu
func (c *Collections) begin(resource string) uint64 {
	c.seq[resource]++
	return c.seq[resource]
}

// current reports whether token is still the newest request; caller holds mu
func (c *Collections) current(resource string, token uint64) bool {
	return c.seq[resource] == token
}

// FetchFeed replaces the feed and its counters with the server's response
func (c *Collections) FetchFeed(ctx context.Context) error {
	c.mu.Lock()
	token := c.begin(resourceFeed)
	c.feedStatus = domain.Pending()
	c.mu.Unlock()

	feed, err := c.source.Feed(ctx)
	log := logger.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(resourceFeed, token) {
		log.Debug(LogMsgResponseSuperseded, "resource", resourceFeed)
		return err
	}
	if err != nil {
		log.Warn(LogMsgFetchFailed, "resource", resourceFeed, "error", err)
		c.feedStatus = domain.Rejected(err, domain.ErrMsgLoadFeed)
		return err
	}

	c.feed = Dedupe(feed.Orders)
	c.total = feed.Total
	c.totalToday = feed.TotalToday
	c.feedStatus = domain.Fulfilled()
	log.Debug(LogMsgFeedLoaded, "orders", len(c.feed), "total", c.total)
	return nil
}

// FetchUserOrders replaces the caller's orders; the feed counters are untouched
func (c *Collections) FetchUserOrders(ctx context.Context) error {
	c.mu.Lock()
	token := c.begin(resourceUser)
	c.userStatus = domain.Pending()
	c.mu.Unlock()

	orders, err := c.source.UserOrders(ctx)
	log := logger.FromContext(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.current(resourceUser, token) {
		log.Debug(LogMsgResponseSuperseded, "resource", resourceUser)
		return err
	}
	if err != nil {
		log.Warn(LogMsgFetchFailed, "resource", resourceUser, "error", err)
		c.userStatus = domain.Rejected(err, domain.ErrMsgLoadUserOrders)
		return err
	}

	c.user = Dedupe(orders)
	c.userStatus = domain.Fulfilled()
	log.Debug(LogMsgUserOrdersLoaded, "orders", len(c.user))
	return nil
}

// FetchByNumber returns order n from the local views when present and only
// asks the backend otherwise. Concurrent lookups of the same number share one
// request that runs to completion even when a caller gives up; a caller whose
// ctx ends first gets ctx.Err() and the result is still applied for the
// others. A fetched order is appended to the feed if the feed still lacks it
// once the response arrives.
func (c *Collections) FetchByNumber(ctx context.Context, number int) (domain.Order, error) {
	if order, ok := c.Find(number); ok {
		logger.FromContext(ctx).Debug(LogMsgOrderFromView, "number", number)
		return order, nil
	}

	ch := c.group.DoChan(strconv.Itoa(number), func() (interface{}, error) {
		return c.lookup(ctx, number)
	})

	select {
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.Order{}, res.Err
		}
		return res.Val.(domain.Order), nil
	}
}

// lookup runs the shared request for order n on a context detached from the
// caller that started it and applies the outcome once.
func (c *Collections) lookup(ctx context.Context, number int) (domain.Order, error) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	token := c.begin(resourceOrder)
	c.orderStatus = domain.Pending()
	c.mu.Unlock()

	lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LookupTimeout)
	defer cancel()
	order, err := c.source.OrderByNumber(lookupCtx, number)

	c.mu.Lock()
	defer c.mu.Unlock()

	latest := c.current(resourceOrder, token)
	if err != nil {
		log.Warn(LogMsgFetchFailed, "number", number, "error", err)
		if latest {
			c.orderStatus = domain.Rejected(err, domain.ErrMsgLoadOrder)
		}
		return domain.Order{}, err
	}

	c.cache.Set(order)
	if indexOf(c.feed, order) < 0 {
		c.feed = append(c.feed, order)
	}
	if latest {
		c.orderStatus = domain.Fulfilled()
	}
	log.Debug(LogMsgOrderFetched, "number", number)
	return order, nil
}

// RecordPlacedOrder puts an order the caller just placed at the front of the
// feed and counts it in total and totalToday. An order already in the feed
// is moved to the front without being counted again.
func (c *Collections) RecordPlacedOrder(ctx context.Context, order domain.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := indexOf(c.feed, order); i >= 0 {
		c.feed = append(c.feed[:i], c.feed[i+1:]...)
	} else {
		c.total++
		c.totalToday++
	}
	c.feed = append([]domain.Order{order}, c.feed...)
	logger.FromContext(ctx).Debug(LogMsgPlacedOrderRecord, "number", order.Number)
}

// Find looks order n up in the feed, the caller's orders and the lookup cache
func (c *Collections) Find(number int) (domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, view := range [][]domain.Order{c.feed, c.user} {
		for _, o := range view {
			if o.Number == number {
				return o, true
			}
		}
	}
	return c.cache.Get(number)
}

// Snapshot returns a copy of the collections
func (c *Collections) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return State{
		FeedOrders:  append([]domain.Order(nil), c.feed...),
		UserOrders:  append([]domain.Order(nil), c.user...),
		Total:       c.total,
		TotalToday:  c.totalToday,
		FeedStatus:  c.feedStatus,
		UserStatus:  c.userStatus,
		OrderStatus: c.orderStatus,
	}
}

// ClearUserOrders drops the caller's orders. A user-orders response to a
// request issued before the call is discarded when it arrives.
func (c *Collections) ClearUserOrders(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.begin(resourceUser)
	c.user = nil
	c.userStatus = domain.Status{Phase: domain.PhaseIdle}
	logger.FromContext(ctx).Debug(LogMsgUserOrdersCleared)
}

// Dedupe keeps the first occurrence of every order
func Dedupe(orders []domain.Order) []domain.Order {
	out := make([]domain.Order, 0, len(orders))
	seenID := make(map[string]struct{}, len(orders))
	seenNumber := make(map[int]struct{})

	for _, o := range orders {
		if o.ID != "" {
			if _, dup := seenID[o.ID]; dup {
				continue
			}
			seenID[o.ID] = struct{}{}
		} else if o.Number != 0 {
			if _, dup := seenNumber[o.Number]; dup {
				continue
			}
			seenNumber[o.Number] = struct{}{}
		}
		out = append(out, o)
	}
	return out
}

func indexOf(orders []domain.Order, order domain.Order) int {
	for i, o := range orders {
		if o.SameAs(order) {
			return i
		}
	}
	return -1
}
