package builder

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// Log messages
const (
	LogMsgSubmitting   = "Submitting order"
	LogMsgSubmitFailed = "Order submission failed"
	LogMsgSubmitted    = "Order submitted"
)

// EventSource tags order.placed events published by the builder
const EventSource = "builder"

// Direction is the way Move shifts a filling
type Direction int

const (
	Up Direction = iota
	Down
)

// OrderPlacer submits an ingredient id list to the backend
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, ingredientIDs []string) (burgerapi.PlaceOrderResponse, error)
}

// State is a copy of the builder contents
type State struct {
	Bun         *domain.Ingredient          `json:"bun"`
	Ingredients []domain.SelectedIngredient `json:"ingredients"`
	Status      domain.Status               `json:"status"`
	LastOrder   *domain.Order               `json:"lastOrder,omitempty"`
}

// Builder is the in-progress order: one bun slot and an ordered list of
// fillings. The bun slot never holds a filling and fillings never include a
// bun. At most one submission is outstanding at a time.
type Builder struct {
	placer OrderPlacer
	bus    event.Bus
	newID  func() string

	mu        sync.Mutex
	bun       *domain.Ingredient
	items     []domain.SelectedIngredient
	status    domain.Status
	lastOrder *domain.Order
}

// New creates an empty builder. bus may be nil.
func New(placer OrderPlacer, bus event.Bus) *Builder {
	return &Builder{
		placer: placer,
		bus:    bus,
		newID:  uuid.NewString,
		status: domain.Status{Phase: domain.PhaseIdle},
	}
}

// Add puts a bun in the bun slot, replacing any previous one, or appends a
// filling with a fresh instance id. It returns the instance id, which is
// empty for buns.
func (b *Builder) Add(ing domain.Ingredient) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ing.IsBun() {
		bun := ing
		b.bun = &bun
		return ""
	}

	id := b.newID()
	b.items = append(b.items, domain.SelectedIngredient{Ingredient: ing, InstanceID: id, Count: 1})
	return id
}

// Remove deletes the filling with the given instance id; unknown ids are ignored
func (b *Builder) Remove(instanceID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.indexOf(instanceID); i >= 0 {
		b.items = append(b.items[:i], b.items[i+1:]...)
	}
}

// Move swaps a filling with its neighbour. Moving past either end does nothing.
func (b *Builder) Move(instanceID string, dir Direction) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(instanceID)
	if i < 0 {
		return
	}
	j := i - 1
	if dir == Down {
		j = i + 1
	}
	if j < 0 || j >= len(b.items) {
		return
	}
	b.items[i], b.items[j] = b.items[j], b.items[i]
}

func (b *Builder) indexOf(instanceID string) int {
	for i, item := range b.items {
		if item.InstanceID == instanceID {
			return i
		}
	}
	return -1
}

// Clear empties the bun slot and the filling list. The last submission
// result is kept.
func (b *Builder) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reset()
}

func (b *Builder) reset() {
	b.bun = nil
	b.items = nil
}

// CloseOrder dismisses the last placed order and any submission error
func (b *Builder) CloseOrder() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastOrder = nil
	b.status = domain.Status{Phase: domain.PhaseIdle}
}

// IngredientIDs is the flat list an order is placed with: the bun, each
// filling in order, then the bun again
func (b *Builder) IngredientIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ingredientIDs()
}

func (b *Builder) ingredientIDs() []string {
	if b.bun == nil {
		return nil
	}
	ids := make([]string, 0, len(b.items)+domain.BunPortions)
	ids = append(ids, b.bun.ID)
	for _, item := range b.items {
		ids = append(ids, item.ID)
	}
	return append(ids, b.bun.ID)
}

// Submit places the current build. On success the builder is cleared, the
// order is kept as the last result and an order.placed event is published.
// The clear also drops any Add, Remove or Move made while the request was in
// flight; those edits were not part of the placed order.
// On failure the contents stay and the status carries the message.
func (b *Builder) Submit(ctx context.Context) (domain.Order, error) {
	b.mu.Lock()
	if b.status.Phase == domain.PhasePending {
		b.mu.Unlock()
		return domain.Order{}, domain.ErrSubmissionInFlight
	}
	if b.bun == nil || len(b.items) == 0 {
		b.mu.Unlock()
		return domain.Order{}, domain.ErrIncompleteOrder
	}
	ids := b.ingredientIDs()
	b.status = domain.Pending()
	b.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Debug(LogMsgSubmitting, "ingredients", len(ids))

	resp, err := b.placer.PlaceOrder(ctx, ids)

	b.mu.Lock()
	if err != nil {
		b.status = domain.Rejected(err, domain.ErrMsgPlaceOrder)
		b.mu.Unlock()
		log.Warn(LogMsgSubmitFailed, "error", err)
		return domain.Order{}, err
	}
	order := resp.Order
	b.reset()
	b.lastOrder = &order
	b.status = domain.Fulfilled()
	b.mu.Unlock()

	log.Info(LogMsgSubmitted, "number", order.Number)
	event.PublishBestEffort(ctx, b.bus, event.NewOrderPlacedEvent(order, EventSource))
	return order, nil
}

// Snapshot returns a copy of the current state
func (b *Builder) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := State{
		Ingredients: append([]domain.SelectedIngredient(nil), b.items...),
		Status:      b.status,
	}
	if b.bun != nil {
		bun := *b.bun
		s.Bun = &bun
	}
	if b.lastOrder != nil {
		order := *b.lastOrder
		s.LastOrder = &order
	}
	return s
}

// Total is the price of the build with the bun billed top and bottom
func (b *Builder) Total() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	total := 0
	if b.bun != nil {
		total += b.bun.Price * domain.BunPortions
	}
	for _, item := range b.items {
		total += item.Price
	}
	return total
}

// Counters reports how many times each catalog ingredient is used; a bun
// counts twice
func (b *Builder) Counters() map[string]int {
	b.mu.Lock()
	defer b.mu.Unlock()

	counts := make(map[string]int, len(b.items)+1)
	if b.bun != nil {
		counts[b.bun.ID] = domain.BunPortions
	}
	for _, item := range b.items {
		counts[item.ID]++
	}
	return counts
}
