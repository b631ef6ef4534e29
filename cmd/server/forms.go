package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/pollos/internal/profit"
)

const maxNumberLength = 32

var hundred = decimal.NewFromInt(100)

// cycleForm keeps the raw form values so invalid submissions can be shown
// back to the user unchanged.
type cycleForm struct {
	ChickensPurchased    string
	PricePerChicken      string
	FeedBags             string
	PricePerBag          string
	AvgWeightLbs         string
	PricePerLb           string
	MortalityPercent     string
	SlaughterCostPerBird string
	ExtraExpense         string
}

func readCycleForm(r *http.Request) cycleForm {
	value := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }
	return cycleForm{
		ChickensPurchased:    value("chickens_purchased"),
		PricePerChicken:      value("price_per_chicken"),
		FeedBags:             value("feed_bags"),
		PricePerBag:          value("price_per_bag"),
		AvgWeightLbs:         value("avg_weight_lbs"),
		PricePerLb:           value("price_per_lb"),
		MortalityPercent:     value("mortality_percent"),
		SlaughterCostPerBird: value("slaughter_cost_per_bird"),
		ExtraExpense:         value("extra_expense"),
	}
}

func formFromInput(in profit.Input) cycleForm {
	return cycleForm{
		ChickensPurchased:    strconv.FormatInt(in.ChickensPurchased, 10),
		PricePerChicken:      in.PricePerChicken.String(),
		FeedBags:             strconv.FormatInt(in.FeedBags, 10),
		PricePerBag:          in.PricePerBag.String(),
		AvgWeightLbs:         in.AvgWeightLbs.String(),
		PricePerLb:           in.PricePerLb.String(),
		MortalityPercent:     in.MortalityPercent().String(),
		SlaughterCostPerBird: in.SlaughterCostPerBird.String(),
		ExtraExpense:         in.ExtraExpense.String(),
	}
}

// input converts the raw values into a validated profit.Input. Mortality is
// submitted as a percentage. Parsing only checks syntax; the ranges are
// enforced by Validate.
func (f cycleForm) input() (profit.Input, error) {
	var in profit.Input
	var err error

	if in.ChickensPurchased, err = parseCount(f.ChickensPurchased, "chickens_purchased"); err != nil {
		return in, err
	}
	if in.PricePerChicken, err = parseDecimal(f.PricePerChicken, "price_per_chicken"); err != nil {
		return in, err
	}
	if in.FeedBags, err = parseCount(f.FeedBags, "feed_bags"); err != nil {
		return in, err
	}
	if in.PricePerBag, err = parseDecimal(f.PricePerBag, "price_per_bag"); err != nil {
		return in, err
	}
	if in.AvgWeightLbs, err = parseDecimal(f.AvgWeightLbs, "avg_weight_lbs"); err != nil {
		return in, err
	}
	if in.PricePerLb, err = parseDecimal(f.PricePerLb, "price_per_lb"); err != nil {
		return in, err
	}
	mortality, err := parseDecimal(f.MortalityPercent, "mortality_percent")
	if err != nil {
		return in, err
	}
	in.MortalityRate = mortality.Div(hundred)
	if in.SlaughterCostPerBird, err = parseDecimal(f.SlaughterCostPerBird, "slaughter_cost_per_bird"); err != nil {
		return in, err
	}
	if in.ExtraExpense, err = parseDecimal(f.ExtraExpense, "extra_expense"); err != nil {
		return in, err
	}

	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

func parseCycleFormValues(r *http.Request) (profit.Input, cycleForm, error) {
	form := readCycleForm(r)
	in, err := form.input()
	return in, form, err
}

func parseCount(raw, field string) (int64, error) {
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s debe ser un entero", field)
	}
	return value, nil
}

// parseDecimal accepts plain decimal notation only, as submitted by number
// inputs. Exponent notation and overlong values are rejected.
func parseDecimal(raw, field string) (decimal.Decimal, error) {
	if len(raw) > maxNumberLength {
		return decimal.Zero, fmt.Errorf("%s debe tener máximo %d caracteres", field, maxNumberLength)
	}
	if strings.ContainsAny(raw, "eE") {
		return decimal.Zero, fmt.Errorf("%s debe ser numérico", field)
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s debe ser numérico", field)
	}
	return value, nil
}
