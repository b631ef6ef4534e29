package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/Simplici0/pollos/internal/profit"
)

const (
	maxCycleNameLength = 120
	sqliteTimeLayout   = "2006-01-02 15:04:05"
	displayTimeLayout  = "2006-01-02 15:04"
)

var errCycleNotFound = errors.New("cycle not found")

type cycleRecord struct {
	ID        int64
	CreatedAt string
	Name      string
	Notes     string
	Input     profit.Input
}

type cycleListItem struct {
	ID                int64
	CreatedAt         string
	Name              string
	ChickensPurchased int64
	NetProfit         decimal.Decimal
	Profitable        bool
}

type cyclesViewData struct {
	baseViewData
	Query  string
	Cycles []cycleListItem
}

type cycleViewData struct {
	baseViewData
	Cycle      cycleRecord
	Parameters []profit.Parameter
	Report     *reportView
}

func (s *server) handleCyclesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	cycles, err := s.listCycles(query)
	if err != nil {
		log.Printf("list cycles: %v", err)
		http.Error(w, "failed to load cycles", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "cycles.html", cyclesViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Query:  query,
		Cycles: cycles,
	})
}

func (s *server) handleCycleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	notes := strings.TrimSpace(r.FormValue("notes"))
	in, form, err := parseCycleFormValues(r)
	if err == nil {
		err = validateCycleName(name)
	}
	if err != nil {
		s.metrics.InvalidInputs.Inc()
		s.renderTemplate(w, http.StatusBadRequest, "analysis.html", analysisViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Form:         form,
			Name:         name,
			Notes:        notes,
		})
		return
	}

	id, err := s.insertCycle(name, notes, in)
	if err != nil {
		log.Printf("insert cycle: %v", err)
		http.Error(w, "failed to save cycle", http.StatusInternalServerError)
		return
	}
	s.metrics.CyclesSaved.Inc()

	http.Redirect(w, r, fmt.Sprintf("/ciclos/%d?success=Ciclo+guardado+correctamente", id), http.StatusSeeOther)
}

func (s *server) handleCycleDetail(w http.ResponseWriter, r *http.Request) {
	cycle, ok := s.loadCycle(w, r)
	if !ok {
		return
	}

	s.renderTemplate(w, http.StatusOK, "cycle.html", cycleViewData{
		baseViewData: baseViewData{SuccessMessage: r.URL.Query().Get("success")},
		Cycle:        cycle,
		Parameters:   cycle.Input.Parameters(),
		Report:       s.newReportView(cycle.Input),
	})
}

func (s *server) handleCycleExcel(w http.ResponseWriter, r *http.Request) {
	cycle, ok := s.loadCycle(w, r)
	if !ok {
		return
	}
	s.writeWorkbook(w, r, cycle.Input)
}

func (s *server) handleCycleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := parseCycleID(r)
	if err != nil {
		http.Error(w, "invalid cycle id", http.StatusBadRequest)
		return
	}

	if err := s.deleteCycle(id); err != nil {
		if errors.Is(err, errCycleNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("delete cycle %d: %v", id, err)
		http.Error(w, "failed to delete cycle", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/ciclos?success="+url.QueryEscape("Ciclo eliminado correctamente"), http.StatusSeeOther)
}

// loadCycle resolves the {id} route parameter, writing the error response
// itself when the cycle cannot be served.
func (s *server) loadCycle(w http.ResponseWriter, r *http.Request) (cycleRecord, bool) {
	id, err := parseCycleID(r)
	if err != nil {
		http.Error(w, "invalid cycle id", http.StatusBadRequest)
		return cycleRecord{}, false
	}

	cycle, err := s.getCycle(id)
	if err != nil {
		if errors.Is(err, errCycleNotFound) {
			http.NotFound(w, r)
			return cycleRecord{}, false
		}
		log.Printf("get cycle %d: %v", id, err)
		http.Error(w, "failed to load cycle", http.StatusInternalServerError)
		return cycleRecord{}, false
	}
	return cycle, true
}

func parseCycleID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid cycle id %q", chi.URLParam(r, "id"))
	}
	return id, nil
}

func validateCycleName(name string) error {
	if name == "" {
		return fmt.Errorf("name es requerido para guardar el ciclo")
	}
	if len([]rune(name)) > maxCycleNameLength {
		return fmt.Errorf("name debe tener máximo %d caracteres", maxCycleNameLength)
	}
	return nil
}

func (s *server) insertCycle(name, notes string, in profit.Input) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO cycles (
			created_at,
			name,
			notes,
			chickens_purchased,
			price_per_chicken,
			feed_bags,
			price_per_bag,
			avg_weight_lbs,
			price_per_lb,
			mortality_rate,
			slaughter_cost_per_bird,
			extra_expense
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		s.now().UTC().Format(sqliteTimeLayout),
		name,
		notes,
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
		return 0, fmt.Errorf("insert cycle: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read cycle id: %w", err)
	}
	return id, nil
}

const cycleColumns = `
	id,
	created_at,
	name,
	COALESCE(notes, ''),
	chickens_purchased,
	price_per_chicken,
	feed_bags,
	price_per_bag,
	avg_weight_lbs,
	price_per_lb,
	mortality_rate,
	slaughter_cost_per_bird,
	extra_expense`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCycle(row rowScanner) (cycleRecord, error) {
	var c cycleRecord
	err := row.Scan(
		&c.ID,
		&c.CreatedAt,
		&c.Name,
		&c.Notes,
		&c.Input.ChickensPurchased,
		&c.Input.PricePerChicken,
		&c.Input.FeedBags,
		&c.Input.PricePerBag,
		&c.Input.AvgWeightLbs,
		&c.Input.PricePerLb,
		&c.Input.MortalityRate,
		&c.Input.SlaughterCostPerBird,
		&c.Input.ExtraExpense,
	)
	c.CreatedAt = displayTime(c.CreatedAt)
	return c, err
}

// listCycles returns saved cycles, newest first. Net profit is recomputed
// from the stored inputs.
func (s *server) listCycles(query string) ([]cycleListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT `+cycleColumns+`
		FROM cycles
		WHERE (? = '' OR name LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("query cycles: %w", err)
	}
	defer rows.Close()

	cycles := make([]cycleListItem, 0)
	for rows.Next() {
		c, err := scanCycle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cycle: %w", err)
		}
		result := profit.Calculate(c.Input)
		cycles = append(cycles, cycleListItem{
			ID:                c.ID,
			CreatedAt:         c.CreatedAt,
			Name:              c.Name,
			ChickensPurchased: c.Input.ChickensPurchased,
			NetProfit:         result.NetProfit,
			Profitable:        result.Profitable(),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cycles: %w", err)
	}

	return cycles, nil
}

func (s *server) getCycle(id int64) (cycleRecord, error) {
	c, err := scanCycle(s.db.QueryRow(`SELECT `+cycleColumns+` FROM cycles WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cycleRecord{}, errCycleNotFound
		}
		return cycleRecord{}, fmt.Errorf("query cycle: %w", err)
	}
	return c, nil
}

func (s *server) deleteCycle(id int64) error {
	result, err := s.db.Exec(`DELETE FROM cycles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	if affected == 0 {
		return errCycleNotFound
	}
	return nil
}

// displayTime normalizes the timestamps SQLite hands back, which arrive
// either as stored text or as RFC 3339 when the driver parses DATETIME.
func displayTime(raw string) string {
	for _, layout := range []string{sqliteTimeLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayTimeLayout)
		}
	}
	return raw
}
