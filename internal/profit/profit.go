package profit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput is wrapped by every error returned from Input.Validate.
var ErrInvalidInput = errors.New("parámetros del ciclo inválidos")

// Input represents the parameters of one fattening cycle.
type Input struct {
	ChickensPurchased    int64
	PricePerChicken      decimal.Decimal
	FeedBags             int64
	PricePerBag          decimal.Decimal
	AvgWeightLbs         decimal.Decimal
	PricePerLb           decimal.Decimal
	MortalityRate        decimal.Decimal
	SlaughterCostPerBird decimal.Decimal
	ExtraExpense         decimal.Decimal
}

// Result contains every value derived from an Input.
type Result struct {
	ChickensSold  int64
	TotalPounds   decimal.Decimal
	TotalRevenue  decimal.Decimal
	CostChickens  decimal.Decimal
	CostFeed      decimal.Decimal
	CostSlaughter decimal.Decimal
	ExtraExpense  decimal.Decimal
	TotalCost     decimal.Decimal
	NetProfit     decimal.Decimal
}

// Calculate computes the financial outcome of a cycle. The caller is
// responsible for rejecting out-of-domain inputs with Validate first.
func Calculate(in Input) Result {
	purchased := decimal.NewFromInt(in.ChickensPurchased)

	// Whole birds only: truncate, never round.
	sold := purchased.Mul(decimal.NewFromInt(1).Sub(in.MortalityRate)).Floor().IntPart()
	soldD := decimal.NewFromInt(sold)

	totalPounds := soldD.Mul(in.AvgWeightLbs)
	totalRevenue := totalPounds.Mul(in.PricePerLb)

	costChickens := purchased.Mul(in.PricePerChicken)
	costFeed := decimal.NewFromInt(in.FeedBags).Mul(in.PricePerBag)
	costSlaughter := soldD.Mul(in.SlaughterCostPerBird)
	totalCost := costChickens.Add(costFeed).Add(costSlaughter).Add(in.ExtraExpense)

	return Result{
		ChickensSold:  sold,
		TotalPounds:   totalPounds,
		TotalRevenue:  totalRevenue,
		CostChickens:  costChickens,
		CostFeed:      costFeed,
		CostSlaughter: costSlaughter,
		ExtraExpense:  in.ExtraExpense,
		TotalCost:     totalCost,
		NetProfit:     totalRevenue.Sub(totalCost),
	}
}

// Profitable reports whether the cycle broke even or better.
func (r Result) Profitable() bool {
	return !r.NetProfit.IsNegative()
}

// Validate checks the domain constraints of every field and returns the
// first violation found.
func (in Input) Validate() error {
	if in.ChickensPurchased < 1 {
		return invalid("chickens_purchased", "debe ser mayor o igual a 1")
	}
	if in.FeedBags < 1 {
		return invalid("feed_bags", "debe ser mayor o igual a 1")
	}
	if !in.AvgWeightLbs.IsPositive() {
		return invalid("avg_weight_lbs", "debe ser mayor a 0")
	}
	if in.MortalityRate.IsNegative() || in.MortalityRate.GreaterThan(decimal.NewFromInt(1)) {
		return invalid("mortality_rate", "debe estar entre 0 y 1 (0 % a 100 %)")
	}

	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"price_per_chicken", in.PricePerChicken},
		{"price_per_bag", in.PricePerBag},
		{"price_per_lb", in.PricePerLb},
		{"slaughter_cost_per_bird", in.SlaughterCostPerBird},
		{"extra_expense", in.ExtraExpense},
	}
	for _, nn := range nonNegative {
		if nn.value.IsNegative() {
			return invalid(nn.field, "debe ser mayor o igual a 0")
		}
	}

	return nil
}

// MortalityPercent returns the mortality rate expressed as a percentage.
func (in Input) MortalityPercent() decimal.Decimal {
	return in.MortalityRate.Mul(decimal.NewFromInt(100))
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)
}
