package main

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/orders"
	"github.com/osse101/BurgerClient_Go/internal/worker"
)

const watchSubcommand = "watch"

type feedCommand struct{ *cli }

func (c *feedCommand) Name() string { return "feed" }

func (c *feedCommand) Description() string {
	return "Show the public order feed; 'feed watch' follows it"
}

func (c *feedCommand) Run(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == watchSubcommand {
		return c.watch(ctx, args[1:])
	}

	fs := c.newFlags(c.Name())
	limit := fs.Int("limit", 10, "orders to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.app.Orders.FetchFeed(ctx); err != nil {
		return err
	}
	state := c.app.Orders.Snapshot()

	c.out.Header("Order feed")
	c.out.Printf("  Completed all time: %d\n", state.Total)
	c.out.Printf("  Completed today:    %d\n", state.TotalToday)

	board := orders.StatusBoard(state.FeedOrders, 0)
	c.out.Printf("  %s: %s\n", label(domain.OrderStatusDone), joinNumbers(board.Ready))
	c.out.Printf("  %s: %s\n", label(domain.OrderStatusPending), joinNumbers(board.Pending))

	printOrders(c.cli, state.FeedOrders, *limit)
	return nil
}

func (c *feedCommand) watch(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name() + " " + watchSubcommand)
	interval := fs.Duration("interval", c.app.Config.FeedPollInterval, "poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval <= 0 {
		return fmt.Errorf("%w: --interval must be positive", domain.ErrInvalidInput)
	}

	c.out.Info("Watching the feed every %s, interrupt to stop", *interval)
	stop := c.app.WatchFeed(ctx, *interval, func(_ context.Context, u worker.FeedUpdate) {
		if u.Initial {
			c.out.Info("%d orders in the feed, %d today", len(u.Added), u.TotalToday)
			return
		}
		for _, o := range u.Added {
			c.out.Info("New order #%d: %s (%s)", o.Number, o.Name, label(o.Status))
		}
		for _, o := range u.Ready {
			c.out.Success("Order #%d is ready", o.Number)
		}
	})
	defer stop()

	<-ctx.Done()
	return nil
}

type ordersCommand struct{ *cli }

func (c *ordersCommand) Name() string { return "orders" }

func (c *ordersCommand) Description() string {
	return "List your own orders (requires login)"
}

func (c *ordersCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	limit := fs.Int("limit", 20, "orders to list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.app.Orders.FetchUserOrders(ctx); err != nil {
		return err
	}
	state := c.app.Orders.Snapshot()

	c.out.Header("Your orders")
	if len(state.UserOrders) == 0 {
		c.out.Info("No orders yet")
		return nil
	}
	counts := orders.CountByStatus(state.UserOrders)
	statuses := make([]string, 0, len(counts))
	for status := range counts {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	for _, status := range statuses {
		c.out.Printf("  %s: %d\n", label(status), counts[status])
	}
	c.out.Printf("  Placed today: %d\n", orders.CountToday(state.UserOrders, time.Now()))
	printOrders(c.cli, state.UserOrders, *limit)
	return nil
}

type orderCommand struct{ *cli }

func (c *orderCommand) Name() string { return "order" }

func (c *orderCommand) Description() string {
	return "Show one order by number: order <number>"
}

func (c *orderCommand) Run(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage: %s order <number>", domain.ErrInvalidInput, appName)
	}
	number, err := strconv.Atoi(args[0])
	if err != nil || number <= 0 {
		return fmt.Errorf("%w: order number must be a positive integer", domain.ErrInvalidInput)
	}

	if err := c.app.Catalog.Load(ctx); err != nil {
		return err
	}
	order, err := c.app.Orders.FetchByNumber(ctx, number)
	if err != nil {
		return err
	}

	c.out.Header(fmt.Sprintf("Order #%d", order.Number))
	printDetails(c.cli, orders.Describe(order, c.app.Catalog))
	return nil
}

func printOrders(c *cli, list []domain.Order, limit int) {
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	for _, o := range list {
		c.out.Printf("  #%-8d %-10s %-16s %s\n", o.Number, label(o.Status), formatTime(o.CreatedAt), o.Name)
	}
}

func joinNumbers(numbers []int) string {
	if len(numbers) == 0 {
		return "-"
	}
	s := ""
	for i, n := range numbers {
		if i > 0 {
			s += ", "
		}
		s += strconv.Itoa(n)
	}
	return s
}
