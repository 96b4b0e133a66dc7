package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/orders"
)

type scriptedFeed struct {
	states []orders.State
	errs   []error
	calls  int
	state  orders.State
}

func (f *scriptedFeed) FetchFeed(context.Context) error {
	i := f.calls
	f.calls++
	if i < len(f.errs) && f.errs[i] != nil {
		return f.errs[i]
	}
	f.state = f.states[i]
	return nil
}

func (f *scriptedFeed) Snapshot() orders.State { return f.state }

func feedOf(total int, list ...domain.Order) orders.State {
	return orders.State{FeedOrders: list, Total: total, TotalToday: total}
}

func TestFeedWatchJob(t *testing.T) {
	pending := func(n int) domain.Order { return domain.Order{Number: n, Status: domain.OrderStatusPending} }
	done := func(n int) domain.Order { return domain.Order{Number: n, Status: domain.OrderStatusDone} }

	feed := &scriptedFeed{
		states: []orders.State{
			feedOf(2, pending(2), done(1)),
			feedOf(2, pending(2), done(1)),
			feedOf(3, pending(3), done(2), done(1)),
			{},
		},
		errs: []error{nil, nil, nil, errors.New("offline")},
	}
	var updates []FeedUpdate
	job := NewFeedWatchJob(feed, func(_ context.Context, u FeedUpdate) { updates = append(updates, u) })
	ctx := context.Background()

	require.NoError(t, job.Process(ctx))
	require.Len(t, updates, 1)
	assert.True(t, updates[0].Initial)
	assert.Len(t, updates[0].Added, 2)

	require.NoError(t, job.Process(ctx))
	assert.Len(t, updates, 1, "unchanged feed is not reported")

	require.NoError(t, job.Process(ctx))
	require.Len(t, updates, 2)
	assert.False(t, updates[1].Initial)
	require.Len(t, updates[1].Added, 1)
	assert.Equal(t, 3, updates[1].Added[0].Number)
	require.Len(t, updates[1].Ready, 1)
	assert.Equal(t, 2, updates[1].Ready[0].Number)
	assert.Equal(t, 3, updates[1].Total)

	assert.Error(t, job.Process(ctx))
	assert.Len(t, updates, 2)
}
