package builder

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
)

// MockPlacer is a mock implementation of OrderPlacer
type MockPlacer struct {
	mock.Mock
}

func (m *MockPlacer) PlaceOrder(ctx context.Context, ingredientIDs []string) (burgerapi.PlaceOrderResponse, error) {
	args := m.Called(ctx, ingredientIDs)
	return args.Get(0).(burgerapi.PlaceOrderResponse), args.Error(1)
}

// blockingPlacer holds PlaceOrder until release is closed
type blockingPlacer struct {
	started chan struct{}
	release chan struct{}
	resp    burgerapi.PlaceOrderResponse
}

func (p *blockingPlacer) PlaceOrder(ctx context.Context, _ []string) (burgerapi.PlaceOrderResponse, error) {
	close(p.started)
	<-p.release
	return p.resp, nil
}
