package seed

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/pollos/internal/profit"
)

// Config contains the values required by startup seed.
type Config struct {
	Defaults profit.Input
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// DefaultCycle returns the form defaults of a typical small batch.
func DefaultCycle() profit.Input {
	return profit.Input{
		ChickensPurchased:    50,
		PricePerChicken:      decimal.NewFromInt(4000),
		FeedBags:             6,
		PricePerBag:          decimal.NewFromInt(108000),
		AvgWeightLbs:         decimal.RequireFromString("6.25"),
		PricePerLb:           decimal.NewFromInt(6500),
		MortalityRate:        decimal.RequireFromString("0.05"),
		SlaughterCostPerBird: decimal.NewFromInt(1500),
		ExtraExpense:         decimal.Zero,
	}
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	if err := cfg.Defaults.Validate(); err != nil {
		return Stats{}, fmt.Errorf("seed defaults: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureCycleDefaults(tx, cfg.Defaults, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureCycleDefaults(tx *sql.Tx, in profit.Input, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM cycle_defaults WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check cycle defaults existence: %w", err)
	}
	if exists {
		return nil
	}

	if _, err := tx.Exec(`
		INSERT INTO cycle_defaults (
			id,
			chickens_purchased,
			price_per_chicken,
			feed_bags,
			price_per_bag,
			avg_weight_lbs,
			price_per_lb,
			mortality_rate,
			slaughter_cost_per_bird,
			extra_expense
		)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		in.ChickensPurchased,
		in.PricePerChicken.String(),
		in.FeedBags,
		in.PricePerBag.String(),
		in.AvgWeightLbs.String(),
		in.PricePerLb.String(),
		in.MortalityRate.String(),
		in.SlaughterCostPerBird.String(),
		in.ExtraExpense.String(),
	); err != nil {
		return fmt.Errorf("insert cycle defaults singleton: %w", err)
	}
	stats.Inserts++
	return nil
}
