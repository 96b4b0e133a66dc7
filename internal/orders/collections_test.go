package orders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
)

func order(number int) domain.Order {
	return domain.Order{ID: fmt.Sprintf("id-%d", number), Number: number, Status: domain.OrderStatusDone}
}

func numbers(orders []domain.Order) []int {
	out := make([]int, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.Number)
	}
	return out
}

func TestFetchFeed_ReplacesWholesale(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(3), order(2), order(3)}, Total: 100, TotalToday: 7}, nil).Once()
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(5)}, Total: 101, TotalToday: 8}, nil).Once()
	c := New(src, 0, 0)
	ctx := context.Background()

	require.NoError(t, c.FetchFeed(ctx))
	s := c.Snapshot()
	assert.Equal(t, []int{3, 2}, numbers(s.FeedOrders), "duplicates by id are dropped")
	assert.Equal(t, 100, s.Total)
	assert.Equal(t, 7, s.TotalToday)
	assert.Equal(t, domain.PhaseFulfilled, s.FeedStatus.Phase)

	require.NoError(t, c.FetchFeed(ctx))
	s = c.Snapshot()
	assert.Equal(t, []int{5}, numbers(s.FeedOrders))
	assert.Equal(t, 101, s.Total)
}

func TestFetchFeed_Failure(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{}, errors.New("backend down"))
	c := New(src, 0, 0)

	err := c.FetchFeed(context.Background())

	require.Error(t, err)
	s := c.Snapshot()
	assert.Equal(t, domain.PhaseRejected, s.FeedStatus.Phase)
	assert.Equal(t, "backend down", s.FeedStatus.Error)
}

func TestFetchUserOrders_LeavesCounters(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1)}, Total: 10, TotalToday: 2}, nil)
	src.On("UserOrders", mock.Anything).Return([]domain.Order{order(101), order(102), order(101)}, nil)
	c := New(src, 0, 0)
	ctx := context.Background()

	require.NoError(t, c.FetchFeed(ctx))
	require.NoError(t, c.FetchUserOrders(ctx))

	s := c.Snapshot()
	assert.Equal(t, []int{101, 102}, numbers(s.UserOrders))
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 2, s.TotalToday)
	assert.Equal(t, []int{1}, numbers(s.FeedOrders))
}

func TestFetchByNumber_PresentInUserOrdersMakesNoCall(t *testing.T) {
	src := new(MockSource)
	src.On("UserOrders", mock.Anything).Return([]domain.Order{order(101)}, nil)
	c := New(src, 0, 0)
	ctx := context.Background()
	require.NoError(t, c.FetchUserOrders(ctx))

	got, err := c.FetchByNumber(ctx, 101)

	require.NoError(t, err)
	assert.Equal(t, "id-101", got.ID)
	src.AssertNotCalled(t, "OrderByNumber", mock.Anything, mock.Anything)
	assert.Empty(t, c.Snapshot().FeedOrders, "orders found locally are not copied into the feed")
}

func TestFetchByNumber_AppendsToFeedWhenAbsent(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1)}}, nil)
	src.On("OrderByNumber", mock.Anything, 999).Return(order(999), nil).Once()
	c := New(src, 0, 0)
	ctx := context.Background()
	require.NoError(t, c.FetchFeed(ctx))

	got, err := c.FetchByNumber(ctx, 999)
	require.NoError(t, err)
	assert.Equal(t, 999, got.Number)
	assert.Equal(t, []int{1, 999}, numbers(c.Snapshot().FeedOrders))
	assert.Empty(t, c.Snapshot().UserOrders)

	// second lookup is served locally
	_, err = c.FetchByNumber(ctx, 999)
	require.NoError(t, err)
	src.AssertNumberOfCalls(t, "OrderByNumber", 1)
}

func TestFetchByNumber_CacheSurvivesFeedReplacement(t *testing.T) {
	src := new(MockSource)
	src.On("OrderByNumber", mock.Anything, 7).Return(order(7), nil).Once()
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1)}}, nil)
	c := New(src, 0, 0)
	ctx := context.Background()

	_, err := c.FetchByNumber(ctx, 7)
	require.NoError(t, err)
	require.NoError(t, c.FetchFeed(ctx))
	assert.Equal(t, []int{1}, numbers(c.Snapshot().FeedOrders))

	got, ok := c.Find(7)
	assert.True(t, ok)
	assert.Equal(t, 7, got.Number)
	src.AssertNumberOfCalls(t, "OrderByNumber", 1)
}

func TestFetchByNumber_NoDuplicateWhenFeedArrivesFirst(t *testing.T) {
	src := &slowLookup{started: make(chan struct{}), release: make(chan struct{}), order: order(42)}
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(42), order(41)}}, nil)
	c := New(src, 0, 0)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := c.FetchByNumber(ctx, 42)
		done <- err
	}()
	<-src.started

	require.NoError(t, c.FetchFeed(ctx))
	close(src.release)
	require.NoError(t, <-done)

	assert.Equal(t, []int{42, 41}, numbers(c.Snapshot().FeedOrders))
}

func TestFetchByNumber_ConcurrentCallsShareRequest(t *testing.T) {
	src := &slowLookup{started: make(chan struct{}), release: make(chan struct{}), order: order(9)}
	c := New(src, 0, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := c.FetchByNumber(ctx, 9)
			assert.NoError(t, err)
			assert.Equal(t, 9, got.Number)
		}()
	}
	<-src.started
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
	assert.Equal(t, []int{9}, numbers(c.Snapshot().FeedOrders))
}

func TestFetchByNumber_Failure(t *testing.T) {
	src := new(MockSource)
	src.On("OrderByNumber", mock.Anything, 5).Return(domain.Order{}, domain.ErrOrderNotFound)
	c := New(src, 0, 0)

	_, err := c.FetchByNumber(context.Background(), 5)

	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	s := c.Snapshot()
	assert.Equal(t, domain.PhaseRejected, s.OrderStatus.Phase)
	assert.Equal(t, domain.ErrMsgOrderNotFound, s.OrderStatus.Error)
	assert.Empty(t, s.FeedOrders)
}

func TestRecordPlacedOrder(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1), order(2)}, Total: 50, TotalToday: 5}, nil).Once()
	c := New(src, 0, 0)
	ctx := context.Background()
	require.NoError(t, c.FetchFeed(ctx))

	c.RecordPlacedOrder(ctx, order(3))

	s := c.Snapshot()
	assert.Equal(t, []int{3, 1, 2}, numbers(s.FeedOrders))
	assert.Equal(t, 51, s.Total)
	assert.Equal(t, 6, s.TotalToday)

}

func TestRecordPlacedOrder_AlreadyInFeed(t *testing.T) {
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1), order(2), order(3)}, Total: 50, TotalToday: 5}, nil).Once()
	c := New(src, 0, 0)
	bus := event.NewMemoryBus()
	c.Register(bus)
	ctx := context.Background()
	require.NoError(t, c.FetchFeed(ctx))

	c.RecordPlacedOrder(ctx, order(2))
	require.NoError(t, bus.Publish(ctx, event.NewOrderPlacedEvent(order(3), "test")))

	s := c.Snapshot()
	assert.Equal(t, []int{3, 2, 1}, numbers(s.FeedOrders), "known orders move to the front")
	assert.Equal(t, 50, s.Total, "a known order is not counted twice")
	assert.Equal(t, 5, s.TotalToday)
}

func TestPlaceThenFetchFeed_NoDuplicate(t *testing.T) {
	placed := order(77)
	src := new(MockSource)
	src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{placed, order(76)}, Total: 77, TotalToday: 2}, nil)
	c := New(src, 0, 0)
	ctx := context.Background()

	c.RecordPlacedOrder(ctx, placed)
	require.NoError(t, c.FetchFeed(ctx))

	s := c.Snapshot()
	assert.Equal(t, []int{77, 76}, numbers(s.FeedOrders))
	assert.Equal(t, 77, s.Total, "server counters replace the optimistic ones")
}

func TestHandleOrderPlaced_ViaBus(t *testing.T) {
	c := New(new(MockSource), 0, 0)
	bus := event.NewMemoryBus()
	c.Register(bus)

	require.NoError(t, bus.Publish(context.Background(), event.NewOrderPlacedEvent(order(8), "test")))

	s := c.Snapshot()
	assert.Equal(t, []int{8}, numbers(s.FeedOrders))
	assert.Equal(t, 1, s.Total)
}

func TestFetchFeed_SupersededResponseDiscarded(t *testing.T) {
	src := newGatedFeed(
		domain.Feed{Orders: []domain.Order{order(1)}, Total: 1},
		domain.Feed{Orders: []domain.Order{order(2)}, Total: 2},
	)
	c := New(src, 0, 0)
	ctx := context.Background()

	older := make(chan error, 1)
	go func() { older <- c.FetchFeed(ctx) }()
	require.Equal(t, 0, <-src.started)

	newer := make(chan error, 1)
	go func() { newer <- c.FetchFeed(ctx) }()
	require.Equal(t, 1, <-src.started)

	close(src.gates[1])
	require.NoError(t, <-newer)
	close(src.gates[0])
	require.NoError(t, <-older)

	s := c.Snapshot()
	assert.Equal(t, []int{2}, numbers(s.FeedOrders))
	assert.Equal(t, 2, s.Total)
}

func TestFetchByNumber_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &slowLookup{started: make(chan struct{}), release: make(chan struct{}), order: order(12)}
	c := New(src, 0, 0)

	leaving, leave := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.FetchByNumber(leaving, 12)
		first <- err
	}()
	<-src.started

	second := make(chan domain.Order, 1)
	secondErr := make(chan error, 1)
	go func() {
		got, err := c.FetchByNumber(context.Background(), 12)
		second <- got
		secondErr <- err
	}()
	// let the second caller join the in-flight request
	time.Sleep(20 * time.Millisecond)

	leave()
	assert.ErrorIs(t, <-first, context.Canceled)
	assert.Equal(t, domain.PhasePending, c.Snapshot().OrderStatus.Phase)

	close(src.release)
	require.NoError(t, <-secondErr)
	assert.Equal(t, 12, (<-second).Number)

	s := c.Snapshot()
	assert.Equal(t, domain.PhaseFulfilled, s.OrderStatus.Phase)
	assert.Equal(t, []int{12}, numbers(s.FeedOrders))
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestFetchByNumber_OnlyLatestLookupSetsStatus(t *testing.T) {
	src := newGatedLookup(1, 2)
	src.orders[2] = order(2)
	c := New(src, 0, 0)
	ctx := context.Background()

	older := make(chan error, 1)
	go func() {
		_, err := c.FetchByNumber(ctx, 1)
		older <- err
	}()
	require.Equal(t, 1, <-src.started)

	newer := make(chan error, 1)
	go func() {
		_, err := c.FetchByNumber(ctx, 2)
		newer <- err
	}()
	require.Equal(t, 2, <-src.started)

	close(src.gates[2])
	require.NoError(t, <-newer)
	close(src.gates[1])
	assert.ErrorIs(t, <-older, domain.ErrOrderNotFound)

	s := c.Snapshot()
	assert.Equal(t, domain.PhaseFulfilled, s.OrderStatus.Phase, "a superseded failure leaves the status alone")
	assert.Equal(t, []int{2}, numbers(s.FeedOrders))
}

func TestClearUserOrders_DiscardsInFlightResponse(t *testing.T) {
	src := &slowUserOrders{started: make(chan struct{}), release: make(chan struct{}), orders: []domain.Order{order(3)}}
	c := New(src, 0, 0)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() { done <- c.FetchUserOrders(ctx) }()
	<-src.started

	c.ClearUserOrders(ctx)
	close(src.release)
	require.NoError(t, <-done)

	s := c.Snapshot()
	assert.Empty(t, s.UserOrders)
	assert.Equal(t, domain.PhaseIdle, s.UserStatus.Phase)
}

func TestHandleSessionChanged(t *testing.T) {
	tests := []struct {
		name      string
		from, to  string
		wantOrder bool
	}{
		{"sign out clears", "authenticated", "anonymous", false},
		{"failed check clears", "checking", "anonymous", false},
		{"sign in keeps", "checking", "authenticated", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(MockSource)
			src.On("UserOrders", mock.Anything).Return([]domain.Order{order(4)}, nil)
			src.On("Feed", mock.Anything).Return(domain.Feed{Orders: []domain.Order{order(1)}, Total: 1}, nil)
			c := New(src, 0, 0)
			bus := event.NewMemoryBus()
			c.Register(bus)
			ctx := context.Background()
			require.NoError(t, c.FetchFeed(ctx))
			require.NoError(t, c.FetchUserOrders(ctx))

			require.NoError(t, bus.Publish(ctx, event.NewSessionChangedEvent(tt.from, tt.to, "")))

			s := c.Snapshot()
			assert.Equal(t, tt.wantOrder, len(s.UserOrders) == 1)
			assert.Equal(t, []int{1}, numbers(s.FeedOrders), "the global feed is kept")
		})
	}
}

func TestDedupe(t *testing.T) {
	in := []domain.Order{
		order(1),
		order(2),
		order(1),
		{Number: 9},
		{Number: 9},
		{},
		{},
	}

	out := Dedupe(in)

	assert.Equal(t, []int{1, 2, 9, 0, 0}, numbers(out))
}

func BenchmarkDedupe(b *testing.B) {
	orders := make([]domain.Order, 0, 2000)
	for i := 0; i < 1000; i++ {
		orders = append(orders, order(i), order(i))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Dedupe(orders)
	}
}

func BenchmarkRecordPlacedOrder(b *testing.B) {
	c := New(new(MockSource), 0, 0)
	ctx := context.Background()
	for i := 0; i < 50; i++ {
		c.RecordPlacedOrder(ctx, order(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.RecordPlacedOrder(ctx, order(i%50))
	}
}
