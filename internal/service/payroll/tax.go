package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/money"
)

type taxBand struct {
	ceiling decimal.Decimal
	rate    decimal.Decimal
	open    bool // no ceiling
}

// Marginal bands, each rate applies to the portion of the amount inside its band.
var taxBands = []taxBand{
	{ceiling: decimal.NewFromInt(5000), rate: decimal.Zero},
	{ceiling: decimal.NewFromInt(12500), rate: decimal.RequireFromString("0.02")},
	{ceiling: decimal.NewFromInt(100000), rate: decimal.RequireFromString("0.10")},
	{rate: decimal.RequireFromString("0.20"), open: true},
}

// ProgressiveTax returns the slab tax of amount rounded to 2 decimals. Non-positive amounts pay nothing.
func ProgressiveTax(amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		return decimal.Zero
	}

	tax := decimal.Zero
	previous := decimal.Zero
	for _, band := range taxBands {
		upper := amount
		if !band.open && amount.GreaterThan(band.ceiling) {
			upper = band.ceiling
		}
		tax = tax.Add(upper.Sub(previous).Mul(band.rate))

		if band.open || !amount.GreaterThan(band.ceiling) {
			break
		}
		previous = band.ceiling
	}

	return money.Round2(tax)
}
