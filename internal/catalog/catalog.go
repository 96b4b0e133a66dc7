package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

const (
	LogMsgCatalogLoaded = "Ingredient catalog loaded"
	LogMsgCatalogFailed = "Ingredient catalog load failed"

	loadKey = "ingredients"

	// LoadTimeout bounds a shared fetch once detached from its callers
	LoadTimeout = 30 * time.Second
)

// Source fetches the ingredient list
type Source interface {
	Ingredients(ctx context.Context) ([]domain.Ingredient, error)
}

// Catalog holds the read-only ingredient list for the session. It is fetched
// once; later Load calls return immediately.
type Catalog struct {
	source Source
	group  singleflight.Group

	mu     sync.RWMutex
	items  []domain.Ingredient
	byID   map[string]domain.Ingredient
	status domain.Status
}

// New creates an empty catalog
func New(source Source) *Catalog {
	return &Catalog{
		source: source,
		byID:   make(map[string]domain.Ingredient),
		status: domain.Status{Phase: domain.PhaseIdle},
	}
}

// Load fetches the catalog unless it is already loaded
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.status.Phase == domain.PhaseFulfilled
	c.mu.RUnlock()
	if loaded {
		return nil
	}
	return c.Reload(ctx)
}

// Reload fetches the catalog again. Concurrent callers share one request,
// which completes even if the caller that started it gives up. A caller
// whose ctx ends first gets ctx.Err().
func (c *Catalog) Reload(ctx context.Context) error {
	ch := c.group.DoChan(loadKey, func() (interface{}, error) {
		return nil, c.fetch(ctx)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (c *Catalog) fetch(ctx context.Context) error {
	c.setStatus(domain.Pending())

	fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), LoadTimeout)
	defer cancel()
	items, err := c.source.Ingredients(fetchCtx)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgCatalogFailed, "error", err)
		c.setStatus(domain.Rejected(err, domain.ErrMsgLoadIngredients))
		return err
	}

	byID := make(map[string]domain.Ingredient, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	c.mu.Lock()
	c.items = items
	c.byID = byID
	c.status = domain.Fulfilled()
	c.mu.Unlock()

	logger.FromContext(ctx).Debug(LogMsgCatalogLoaded, "count", len(items))
	return nil
}

func (c *Catalog) setStatus(s domain.Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Status is the phase of the last load
func (c *Catalog) Status() domain.Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// All returns every ingredient in catalog order
func (c *Catalog) All() []domain.Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Ingredient(nil), c.items...)
}

// ByCategory returns the ingredients of one category in catalog order
func (c *Catalog) ByCategory(category string) []domain.Ingredient {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []domain.Ingredient
	for _, item := range c.items {
		if item.Type == category {
			out = append(out, item)
		}
	}
	return out
}

// Lookup finds an ingredient by catalog id
func (c *Catalog) Lookup(id string) (domain.Ingredient, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.byID[id]
	return item, ok
}
