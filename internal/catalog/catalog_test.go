package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Ingredient), args.Error(1)
}

var testItems = []domain.Ingredient{
	{ID: "bun-1", Name: "Crater bun", Type: domain.CategoryBun, Price: 20},
	{ID: "sauce-1", Name: "Spicy-X", Type: domain.CategorySauce, Price: 5},
	{ID: "main-1", Name: "Meteorite", Type: domain.CategoryMain, Price: 30},
	{ID: "main-2", Name: "Fillet", Type: domain.CategoryMain, Price: 40},
}

func TestCatalog_LoadOnce(t *testing.T) {
	src := new(MockSource)
	src.On("Ingredients", mock.Anything).Return(testItems, nil).Once()
	c := New(src)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Load(ctx))

	src.AssertNumberOfCalls(t, "Ingredients", 1)
	assert.Equal(t, domain.PhaseFulfilled, c.Status().Phase)
	assert.Len(t, c.All(), 4)
}

func TestCatalog_Queries(t *testing.T) {
	src := new(MockSource)
	src.On("Ingredients", mock.Anything).Return(testItems, nil)
	c := New(src)
	require.NoError(t, c.Load(context.Background()))

	mains := c.ByCategory(domain.CategoryMain)
	require.Len(t, mains, 2)
	assert.Equal(t, "main-1", mains[0].ID)
	assert.Equal(t, "main-2", mains[1].ID)

	item, ok := c.Lookup("sauce-1")
	assert.True(t, ok)
	assert.Equal(t, "Spicy-X", item.Name)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestCatalog_FailureIsRejectedAndRetryable(t *testing.T) {
	src := new(MockSource)
	src.On("Ingredients", mock.Anything).Return(nil, errors.New("backend down")).Once()
	src.On("Ingredients", mock.Anything).Return(testItems, nil).Once()
	c := New(src)
	ctx := context.Background()

	err := c.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, domain.PhaseRejected, c.Status().Phase)
	assert.Equal(t, "backend down", c.Status().Error)
	assert.Empty(t, c.All())

	require.NoError(t, c.Load(ctx))
	assert.Equal(t, domain.PhaseFulfilled, c.Status().Phase)
	assert.Empty(t, c.Status().Error)
}

func TestCatalog_ReloadFetchesAgain(t *testing.T) {
	src := new(MockSource)
	src.On("Ingredients", mock.Anything).Return(testItems, nil)
	c := New(src)
	ctx := context.Background()

	require.NoError(t, c.Load(ctx))
	require.NoError(t, c.Reload(ctx))

	src.AssertNumberOfCalls(t, "Ingredients", 2)
}

func TestCatalog_ConcurrentLoad(t *testing.T) {
	src := new(MockSource)
	src.On("Ingredients", mock.Anything).Return(testItems, nil)
	c := New(src)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, c.Load(context.Background()))
		}()
	}
	wg.Wait()

	assert.Len(t, c.All(), 4)
}

// slowSource holds Ingredients until release is closed, failing with the
// request context's error if that ends first
type slowSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (s *slowSource) Ingredients(ctx context.Context) ([]domain.Ingredient, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-s.release:
		return testItems, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCatalog_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &slowSource{started: make(chan struct{}), release: make(chan struct{})}
	c := New(src)

	leaving, leave := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() { first <- c.Load(leaving) }()
	<-src.started

	second := make(chan error, 1)
	go func() { second <- c.Load(context.Background()) }()
	// let the second caller join the in-flight request
	time.Sleep(20 * time.Millisecond)

	leave()
	assert.ErrorIs(t, <-first, context.Canceled)

	close(src.release)
	require.NoError(t, <-second)
	assert.Equal(t, domain.PhaseFulfilled, c.Status().Phase)
	assert.Len(t, c.All(), 4)
}
