package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/orders"
)

type ingredientsCommand struct{ *cli }

func (c *ingredientsCommand) Name() string { return "ingredients" }

func (c *ingredientsCommand) Description() string {
	return "List the ingredient catalog by category"
}

func (c *ingredientsCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	category := fs.String("type", "", "only list one category (bun, main, sauce)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.app.Catalog.Load(ctx); err != nil {
		return err
	}

	for _, cat := range []string{domain.CategoryBun, domain.CategoryMain, domain.CategorySauce} {
		if *category != "" && *category != cat {
			continue
		}
		c.out.Header(label(cat))
		for _, ing := range c.app.Catalog.ByCategory(cat) {
			c.out.Printf("  %-26s %-40s %6d\n", ing.ID, ing.Name, ing.Price)
		}
	}
	return nil
}

type buildCommand struct{ *cli }

func (c *buildCommand) Name() string { return "build" }

func (c *buildCommand) Description() string {
	return "Assemble a burger (--bun, repeated --filling) and place the order"
}

func (c *buildCommand) Run(ctx context.Context, args []string) error {
	fs := c.newFlags(c.Name())
	bun := fs.String("bun", "", "bun id or name")
	var fillings stringList
	fs.Var(&fillings, "filling", "filling id or name, repeat for more")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.app.Catalog.Load(ctx); err != nil {
		return err
	}

	c.app.Builder.Clear()
	if *bun != "" {
		ing, err := c.resolve(*bun)
		if err != nil {
			return err
		}
		if !ing.IsBun() {
			return fmt.Errorf("%w: %q is not a bun", domain.ErrInvalidInput, ing.Name)
		}
		c.app.Builder.Add(ing)
	}
	for _, ref := range fillings {
		ing, err := c.resolve(ref)
		if err != nil {
			return err
		}
		if ing.IsBun() {
			return fmt.Errorf("%w: %q is a bun, use --bun", domain.ErrInvalidInput, ing.Name)
		}
		c.app.Builder.Add(ing)
	}

	c.out.Info("Order total: %d", c.app.Builder.Total())
	order, err := c.app.Builder.Submit(ctx)
	if err != nil {
		return err
	}
	defer c.app.Builder.CloseOrder()

	c.out.Success("Order #%d placed: %s", order.Number, order.Name)
	printDetails(c.cli, orders.Describe(order, c.app.Catalog))
	return nil
}

// resolve finds an ingredient by catalog id or, failing that, by name
func (c *buildCommand) resolve(ref string) (domain.Ingredient, error) {
	if ing, ok := c.app.Catalog.Lookup(ref); ok {
		return ing, nil
	}
	for _, ing := range c.app.Catalog.All() {
		if strings.EqualFold(ing.Name, ref) {
			return ing, nil
		}
	}
	return domain.Ingredient{}, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ref)
}

func printDetails(c *cli, d orders.Details) {
	c.out.Printf("  Number:  %d\n", d.Order.Number)
	c.out.Printf("  Name:    %s\n", d.Order.Name)
	c.out.Printf("  Status:  %s\n", label(d.Order.Status))
	c.out.Printf("  Created: %s\n", formatTime(d.Order.CreatedAt))
	for _, item := range d.Items {
		c.out.Printf("    %dx %-40s %6d\n", item.Count, item.Ingredient.Name, item.Ingredient.Price)
	}
	for _, id := range d.Missing {
		c.out.Printf("    ?  %s\n", id)
	}
	c.out.Printf("  Total:   %d\n", d.Total)
}
