// Package mortgage estimates monthly housing cost for a fixed-rate loan.
package mortgage

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// DefaultLoanTermYears applies when no usable term is given.
const DefaultLoanTermYears = 30

// ErrMissingInput is returned when the home price or interest rate is zero.
var ErrMissingInput = errors.New("home price and interest rate are required")

// Input holds the calculator fields. Tax, insurance and PMI are annual
// amounts; InterestRate is an annual percentage.
type Input struct {
	HomePrice     float64 `json:"homePrice"`
	DownPayment   float64 `json:"downPayment"`
	LoanTermYears int     `json:"loanTerm"`
	InterestRate  float64 `json:"interestRate"`
	PropertyTax   float64 `json:"propertyTax"`
	HomeInsurance float64 `json:"homeInsurance"`
	PMI           float64 `json:"pmi"`
}

// Result is the monthly breakdown and loan totals.
type Result struct {
	MonthlyPayment       float64 `json:"monthlyPayment"`
	PrincipalAndInterest float64 `json:"principalAndInterest"`
	MonthlyTax           float64 `json:"monthlyTax"`
	MonthlyInsurance     float64 `json:"monthlyInsurance"`
	MonthlyPMI           float64 `json:"monthlyPMI"`
	LoanAmount           float64 `json:"loanAmount"`
	TotalInterest        float64 `json:"totalInterest"`
	TotalCost            float64 `json:"totalCost"`
	DownPaymentPercent   float64 `json:"downPaymentPercent"`
	LoanTermYears        int     `json:"loanTerm"`
}

// Calculate amortizes the loan over the term with monthly compounding.
func Calculate(in Input) (Result, error) {
	if in.HomePrice == 0 || in.InterestRate == 0 {
		return Result{}, ErrMissingInput
	}
	term := in.LoanTermYears
	if term <= 0 {
		term = DefaultLoanTermYears
	}

	loan := in.HomePrice - in.DownPayment
	monthlyRate := in.InterestRate / 100 / 12
	payments := float64(term * 12)

	growth := math.Pow(1+monthlyRate, payments)
	monthlyPI := loan * (monthlyRate * growth) / (growth - 1)

	monthlyTax := in.PropertyTax / 12
	monthlyInsurance := in.HomeInsurance / 12
	monthlyPMI := in.PMI / 12

	totalInterest := monthlyPI*payments - loan
	years := float64(term)

	return Result{
		MonthlyPayment:       monthlyPI + monthlyTax + monthlyInsurance + monthlyPMI,
		PrincipalAndInterest: monthlyPI,
		MonthlyTax:           monthlyTax,
		MonthlyInsurance:     monthlyInsurance,
		MonthlyPMI:           monthlyPMI,
		LoanAmount:           loan,
		TotalInterest:        totalInterest,
		TotalCost:            in.HomePrice + totalInterest + (in.PropertyTax+in.HomeInsurance+in.PMI)*years,
		DownPaymentPercent:   in.DownPayment / in.HomePrice * 100,
		LoanTermYears:        term,
	}, nil
}

// Field names accepted by ParseInput.
const (
	FieldHomePrice     = "homePrice"
	FieldDownPayment   = "downPayment"
	FieldLoanTerm      = "loanTerm"
	FieldInterestRate  = "interestRate"
	FieldPropertyTax   = "propertyTax"
	FieldHomeInsurance = "homeInsurance"
	FieldPMI           = "pmi"
)

// ParseInput reads calculator fields from text. Missing or malformed
// amounts are 0; the loan term falls back to DefaultLoanTermYears.
func ParseInput(fields map[string]string) Input {
	term := int(parseAmount(fields[FieldLoanTerm]))
	if term <= 0 {
		term = DefaultLoanTermYears
	}
	return Input{
		HomePrice:     parseAmount(fields[FieldHomePrice]),
		DownPayment:   parseAmount(fields[FieldDownPayment]),
		LoanTermYears: term,
		InterestRate:  parseAmount(fields[FieldInterestRate]),
		PropertyTax:   parseAmount(fields[FieldPropertyTax]),
		HomeInsurance: parseAmount(fields[FieldHomeInsurance]),
		PMI:           parseAmount(fields[FieldPMI]),
	}
}

func parseAmount(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	s = strings.TrimPrefix(s, "$")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
