package orders

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// MockSource is a mock implementation of Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) Feed(ctx context.Context) (domain.Feed, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Feed), args.Error(1)
}

func (m *MockSource) UserOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockSource) OrderByNumber(ctx context.Context, number int) (domain.Order, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(domain.Order), args.Error(1)
}

// gatedFeed answers Feed calls in issue order, each one held until its gate
// is opened
type gatedFeed struct {
	mu      sync.Mutex
	calls   int
	gates   []chan struct{}
	answers []domain.Feed
	started chan int
}

func newGatedFeed(answers ...domain.Feed) *gatedFeed {
	g := &gatedFeed{answers: answers, started: make(chan int, len(answers))}
	for range answers {
		g.gates = append(g.gates, make(chan struct{}))
	}
	return g
}

func (g *gatedFeed) Feed(ctx context.Context) (domain.Feed, error) {
	g.mu.Lock()
	i := g.calls
	g.calls++
	g.mu.Unlock()

	g.started <- i
	<-g.gates[i]
	return g.answers[i], nil
}

func (g *gatedFeed) UserOrders(context.Context) ([]domain.Order, error) { return nil, nil }

func (g *gatedFeed) OrderByNumber(context.Context, int) (domain.Order, error) {
	return domain.Order{}, nil
}

// slowLookup holds OrderByNumber until release is closed and counts calls.
// It fails with the request context's error if that ends first.
type slowLookup struct {
	MockSource
	calls   int32
	started chan struct{}
	release chan struct{}
	order   domain.Order
	once    sync.Once
}

func (s *slowLookup) OrderByNumber(ctx context.Context, number int) (domain.Order, error) {
	atomic.AddInt32(&s.calls, 1)
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return s.order, nil
	case <-ctx.Done():
		return domain.Order{}, ctx.Err()
	}
}

// gatedLookup answers OrderByNumber per number once that number's gate is
// opened; numbers without an order fail with ErrOrderNotFound
type gatedLookup struct {
	MockSource
	gates   map[int]chan struct{}
	orders  map[int]domain.Order
	started chan int
}

func newGatedLookup(numbers ...int) *gatedLookup {
	g := &gatedLookup{
		gates:   make(map[int]chan struct{}),
		orders:  make(map[int]domain.Order),
		started: make(chan int, len(numbers)),
	}
	for _, n := range numbers {
		g.gates[n] = make(chan struct{})
	}
	return g
}

func (g *gatedLookup) OrderByNumber(ctx context.Context, number int) (domain.Order, error) {
	g.started <- number
	<-g.gates[number]
	if o, ok := g.orders[number]; ok {
		return o, nil
	}
	return domain.Order{}, domain.ErrOrderNotFound
}

// slowUserOrders holds UserOrders until release is closed
type slowUserOrders struct {
	MockSource
	started chan struct{}
	release chan struct{}
	orders  []domain.Order
}

func (s *slowUserOrders) UserOrders(context.Context) ([]domain.Order, error) {
	close(s.started)
	<-s.release
	return s.orders, nil
}
