package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Simplici0/pollos/internal/profit"
	"github.com/Simplici0/pollos/internal/seed"
)

type settingsViewData struct {
	baseViewData
	Form cycleForm
}

func (s *server) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.getCycleDefaults()
	if err != nil {
		log.Printf("load cycle defaults: %v", err)
		http.Error(w, "failed to load defaults", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "settings.html", settingsViewData{Form: formFromInput(defaults)})
}

func (s *server) handleSettingsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, form, err := parseCycleFormValues(r)
	if err != nil {
		s.metrics.InvalidInputs.Inc()
		s.renderTemplate(w, http.StatusBadRequest, "settings.html", settingsViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Form:         form,
		})
		return
	}

	if err := s.updateCycleDefaults(in); err != nil {
		log.Printf("update cycle defaults: %v", err)
		http.Error(w, "failed to save defaults", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "settings.html", settingsViewData{
		baseViewData: baseViewData{SuccessMessage: "Valores por defecto guardados correctamente."},
		Form:         formFromInput(in),
	})
}

// getCycleDefaults reads the defaults singleton, falling back to the built-in
// defaults when the seed has not run yet.
func (s *server) getCycleDefaults() (profit.Input, error) {
	var in profit.Input
	err := s.db.QueryRow(`
		SELECT
			chickens_purchased,
			price_per_chicken,
			feed_bags,
			price_per_bag,
			avg_weight_lbs,
			price_per_lb,
			mortality_rate,
			slaughter_cost_per_bird,
			extra_expense
		FROM cycle_defaults
		WHERE id = 1
	`).Scan(
		&in.ChickensPurchased,
		&in.PricePerChicken,
		&in.FeedBags,
		&in.PricePerBag,
		&in.AvgWeightLbs,
		&in.PricePerLb,
		&in.MortalityRate,
		&in.SlaughterCostPerBird,
		&in.ExtraExpense,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return seed.DefaultCycle(), nil
		}
		return profit.Input{}, fmt.Errorf("query cycle_defaults: %w", err)
	}
	return in, nil
}

func (s *server) updateCycleDefaults(in profit.Input) error {
	_, err := s.db.Exec(`
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
		) VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			chickens_purchased = excluded.chickens_purchased,
			price_per_chicken = excluded.price_per_chicken,
			feed_bags = excluded.feed_bags,
			price_per_bag = excluded.price_per_bag,
			avg_weight_lbs = excluded.avg_weight_lbs,
			price_per_lb = excluded.price_per_lb,
			mortality_rate = excluded.mortality_rate,
			slaughter_cost_per_bird = excluded.slaughter_cost_per_bird,
			extra_expense = excluded.extra_expense,
			updated_at = CURRENT_TIMESTAMP
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
	)
	if err != nil {
		return fmt.Errorf("upsert cycle_defaults: %w", err)
	}
	return nil
}
