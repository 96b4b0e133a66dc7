package bootstrap

import (
	"log/slog"

	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/metrics"
	"github.com/osse101/BurgerClient_Go/internal/orders"
	"github.com/osse101/BurgerClient_Go/internal/session"
)

// EventHandlerDependencies holds the subscribers wired onto the bus
type EventHandlerDependencies struct {
	EventBus event.Bus
	Orders   *orders.Collections
	Session  *session.Session
}

// RegisterEventHandlers subscribes every component that reacts to events:
//   - order collections record placed orders and forget the user orders on sign-out
//   - the session drops to anonymous when a token refresh fails
//   - the metrics collector counts everything
func RegisterEventHandlers(deps EventHandlerDependencies) {
	deps.Orders.Register(deps.EventBus)
	deps.Session.Subscribe(deps.EventBus)

	metricsCollector := metrics.NewEventMetricsCollector()
	metricsCollector.Register(deps.EventBus)
	slog.Debug(LogMsgMetricsCollectorRegistered)
}
