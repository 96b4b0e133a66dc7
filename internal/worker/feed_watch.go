package worker

import (
	"context"
	"sync"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/orders"
)

// FeedFetcher refreshes the order feed and exposes its current contents
type FeedFetcher interface {
	FetchFeed(ctx context.Context) error
	Snapshot() orders.State
}

// FeedUpdate describes what changed in the feed since the previous poll
type FeedUpdate struct {
	// Initial is set on the first successful poll; Added then holds the whole feed
	Initial    bool
	Added      []domain.Order
	Ready      []domain.Order
	Total      int
	TotalToday int
}

// Empty reports whether nothing changed
func (u FeedUpdate) Empty() bool {
	return !u.Initial && len(u.Added) == 0 && len(u.Ready) == 0
}

// FeedWatchJob polls the feed and reports new orders and orders that became
// ready. Notify is only called when something changed.
type FeedWatchJob struct {
	feed   FeedFetcher
	notify func(ctx context.Context, update FeedUpdate)

	mu     sync.Mutex
	seen   map[int]string
	primed bool
}

// NewFeedWatchJob creates a feed watch job
func NewFeedWatchJob(feed FeedFetcher, notify func(ctx context.Context, update FeedUpdate)) *FeedWatchJob {
	return &FeedWatchJob{
		feed:   feed,
		notify: notify,
		seen:   make(map[int]string),
	}
}

// Process implements Job
func (j *FeedWatchJob) Process(ctx context.Context) error {
	if err := j.feed.FetchFeed(ctx); err != nil {
		return err
	}
	state := j.feed.Snapshot()

	j.mu.Lock()
	update := j.diff(state)
	j.mu.Unlock()

	if update.Empty() {
		return nil
	}
	if j.notify != nil {
		j.notify(ctx, update)
	}
	return nil
}

// diff compares state with the previous poll; caller holds mu
func (j *FeedWatchJob) diff(state orders.State) FeedUpdate {
	update := FeedUpdate{Initial: !j.primed, Total: state.Total, TotalToday: state.TotalToday}

	for _, o := range state.FeedOrders {
		prev, known := j.seen[o.Number]
		switch {
		case !known:
			update.Added = append(update.Added, o)
		case prev != domain.OrderStatusDone && o.Status == domain.OrderStatusDone:
			update.Ready = append(update.Ready, o)
		}
		j.seen[o.Number] = o.Status
	}

	j.primed = true
	return update
}
