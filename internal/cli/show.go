package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/runnerr0/homehub/internal/catalog"
	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/money"
	"github.com/runnerr0/homehub/internal/mortgage"
)

// Execute implements the go-flags Commander interface for ShowCommand.
func (c *ShowCommand) Execute(args []string) error {
	if idArg(c.ID, args) == "" {
		return fmt.Errorf("--id is required for show command")
	}
	return withApp(c.globals, func(a *app) error { return c.run(a, args) })
}

type jsonShowOutput struct {
	listingJSON
	SavedDate        string  `json:"saved_date,omitempty"`
	EstimatedPayment float64 `json:"estimated_monthly_payment,omitempty"`
}

func (c *ShowCommand) run(a *app, args []string) error {
	ctx := context.Background()
	id := idArg(c.ID, args)
	if id == "" {
		return fmt.Errorf("--id is required for show command")
	}

	p, err := a.catalog.GetByID(ctx, id)
	if err != nil {
		return err
	}
	saved, err := a.favorites.Get(ctx, p.ID)
	fav := err == nil
	payment, hasPayment := estimatePayment(p, a.cfg.Mortgage)

	if jsonOutput(c.globals) {
		out := jsonShowOutput{listingJSON: toListingJSON(p, fav)}
		if fav {
			out.SavedDate = saved.SavedDate.Format(time.RFC3339)
		}
		if hasPayment {
			out.EstimatedPayment = payment.MonthlyPayment
		}
		return printJSON(out)
	}

	title := p.Title
	if fav {
		title += " " + favoriteMarker
	}
	fmt.Println(title)
	fmt.Printf("ID:        %s\n", p.ID)
	fmt.Printf("Price:     %s\n", money.USD(p.Price))
	fmt.Printf("Type:      %s\n", p.PropertyType)
	fmt.Printf("Bedrooms:  %s\n", money.Number(p.Bedrooms))
	fmt.Printf("Bathrooms: %s\n", money.Number(p.Bathrooms))
	fmt.Printf("Size:      %s sqft\n", money.Number(p.SquareFeet))
	if p.YearBuilt > 0 {
		fmt.Printf("Built:     %d\n", p.YearBuilt)
	}
	fmt.Printf("Location:  %s\n", p.Location())
	if !p.ListingDate.IsZero() {
		fmt.Printf("Listed:    %s\n", p.ListingDate.Format("2006-01-02"))
	}
	if fav {
		fmt.Printf("Saved:     %s\n", saved.SavedDate.Format("2006-01-02 15:04"))
	}
	if hasPayment {
		fmt.Printf("Est. payment: %s/mo (%s down, %d yr at %s)\n",
			money.USD(payment.MonthlyPayment),
			money.Percent(a.cfg.Mortgage.DownPaymentPercent),
			payment.LoanTermYears,
			money.Percent(a.cfg.Mortgage.InterestRate))
	}

	if p.Description != "" {
		fmt.Println()
		fmt.Println(p.Description)
	}
	if len(p.Features) > 0 {
		fmt.Println()
		fmt.Println("Features:")
		for _, f := range p.Features {
			fmt.Printf("  - %s\n", f)
		}
	}
	return nil
}

// estimatePayment prices p with the configured loan defaults.
func estimatePayment(p catalog.Property, cfg config.MortgageConfig) (mortgage.Result, bool) {
	res, err := mortgage.Calculate(mortgage.Input{
		HomePrice:     p.Price,
		DownPayment:   p.Price * cfg.DownPaymentPercent / 100,
		LoanTermYears: cfg.LoanTermYears,
		InterestRate:  cfg.InterestRate,
	})
	return res, err == nil
}
