package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/runnerr0/homehub/internal/config"
	"github.com/runnerr0/homehub/internal/money"
	"github.com/runnerr0/homehub/internal/mortgage"
)

// Execute implements the go-flags Commander interface for MortgageCommand.
func (c *MortgageCommand) Execute(args []string) error {
	return withApp(c.globals, func(a *app) error { return c.run(a) })
}

// input merges the flags with the configured defaults. An explicit down
// payment amount wins over a percentage.
func (c *MortgageCommand) input(price float64, defaults config.MortgageConfig) (mortgage.Input, error) {
	fields := map[string]string{
		mortgage.FieldHomePrice:     c.Price,
		mortgage.FieldDownPayment:   c.Down,
		mortgage.FieldLoanTerm:      c.Term,
		mortgage.FieldInterestRate:  c.Rate,
		mortgage.FieldPropertyTax:   c.Tax,
		mortgage.FieldHomeInsurance: c.Insurance,
		mortgage.FieldPMI:           c.PMI,
	}
	if price > 0 {
		fields[mortgage.FieldHomePrice] = strconv.FormatFloat(price, 'f', -1, 64)
	}
	if c.Term == "" {
		fields[mortgage.FieldLoanTerm] = strconv.Itoa(defaults.LoanTermYears)
	}
	if c.Rate == "" {
		fields[mortgage.FieldInterestRate] = strconv.FormatFloat(defaults.InterestRate, 'f', -1, 64)
	}

	in := mortgage.ParseInput(fields)
	if c.Down == "" {
		pct := defaults.DownPaymentPercent
		if c.DownPercent != "" {
			v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(c.DownPercent), "%"), 64)
			if err != nil || v < 0 || v > 100 {
				return mortgage.Input{}, fmt.Errorf("invalid --down-percent value %q", c.DownPercent)
			}
			pct = v
		}
		in.DownPayment = in.HomePrice * pct / 100
	}
	return in, nil
}

type jsonMortgageOutput struct {
	Input  mortgage.Input  `json:"input"`
	Result mortgage.Result `json:"result"`
}

func (c *MortgageCommand) run(a *app) error {
	var price float64
	if c.ID != "" {
		p, err := a.catalog.GetByID(context.Background(), c.ID)
		if err != nil {
			return err
		}
		price = p.Price
	}

	in, err := c.input(price, a.cfg.Mortgage)
	if err != nil {
		return err
	}
	res, err := mortgage.Calculate(in)
	if err != nil {
		return fmt.Errorf("%w (use --price or --id, and --rate)", err)
	}

	if jsonOutput(c.globals) {
		return printJSON(jsonMortgageOutput{Input: in, Result: res})
	}

	fmt.Println("Mortgage Estimate")
	fmt.Println("=================")
	fmt.Printf("Home price:      %s\n", money.USD(in.HomePrice))
	fmt.Printf("Down payment:    %s (%s)\n", money.USD(in.DownPayment), money.Percent(res.DownPaymentPercent))
	fmt.Printf("Loan amount:     %s\n", money.USD(res.LoanAmount))
	fmt.Printf("Term:            %d years at %s\n", res.LoanTermYears, money.Percent(in.InterestRate))
	fmt.Println()
	fmt.Printf("Monthly payment: %s\n", money.USDCents(res.MonthlyPayment))
	fmt.Printf("  Principal & interest: %s\n", money.USDCents(res.PrincipalAndInterest))
	if res.MonthlyTax > 0 {
		fmt.Printf("  Property tax:         %s\n", money.USDCents(res.MonthlyTax))
	}
	if res.MonthlyInsurance > 0 {
		fmt.Printf("  Home insurance:       %s\n", money.USDCents(res.MonthlyInsurance))
	}
	if res.MonthlyPMI > 0 {
		fmt.Printf("  PMI:                  %s\n", money.USDCents(res.MonthlyPMI))
	}
	fmt.Println()
	fmt.Printf("Total interest:  %s\n", money.USD(res.TotalInterest))
	fmt.Printf("Total cost:      %s\n", money.USD(res.TotalCost))
	return nil
}
