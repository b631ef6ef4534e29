package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/pollos/internal/archive"
	"github.com/Simplici0/pollos/internal/metrics"
	"github.com/Simplici0/pollos/internal/profit"
	"github.com/Simplici0/pollos/internal/report"
)

const archiveTimeout = 10 * time.Second

type reportView struct {
	Result     profit.Result
	Items      []profit.LineItem
	Chart      report.BarChart
	Profitable bool
}

type analysisViewData struct {
	baseViewData
	Form   cycleForm
	Name   string
	Notes  string
	Report *reportView
}

// newReportView recomputes the report from the inputs on every call.
func (s *server) newReportView(in profit.Input) *reportView {
	result := profit.Calculate(in)
	s.metrics.Calculations.Inc()
	return &reportView{
		Result:     result,
		Items:      result.LineItems(),
		Chart:      report.NewBarChart(result),
		Profitable: result.Profitable(),
	}
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	defaults, err := s.getCycleDefaults()
	if err != nil {
		log.Printf("load cycle defaults: %v", err)
		http.Error(w, "failed to load defaults", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, http.StatusOK, "analysis.html", analysisViewData{
		Form:   formFromInput(defaults),
		Report: s.newReportView(defaults),
	})
}

func (s *server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, form, err := parseCycleFormValues(r)
	view := analysisViewData{
		Form:  form,
		Name:  r.FormValue("name"),
		Notes: r.FormValue("notes"),
	}
	if err != nil {
		s.metrics.InvalidInputs.Inc()
		view.ErrorMessage = err.Error()
		s.renderTemplate(w, http.StatusBadRequest, "analysis.html", view)
		return
	}

	view.Report = s.newReportView(in)
	s.renderTemplate(w, http.StatusOK, "analysis.html", view)
}

func (s *server) handleAnalysisExcel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, form, err := parseCycleFormValues(r)
	if err != nil {
		s.metrics.InvalidInputs.Inc()
		s.renderTemplate(w, http.StatusBadRequest, "analysis.html", analysisViewData{
			baseViewData: baseViewData{ErrorMessage: err.Error()},
			Form:         form,
			Name:         r.FormValue("name"),
			Notes:        r.FormValue("notes"),
		})
		return
	}

	s.writeWorkbook(w, r, in)
}

func (s *server) writeWorkbook(w http.ResponseWriter, r *http.Request, in profit.Input) {
	result := profit.Calculate(in)
	s.metrics.Calculations.Inc()

	raw, err := report.XLSX(in, result)
	if err != nil {
		log.Printf("build report workbook: %v", err)
		http.Error(w, "failed to build report", http.StatusInternalServerError)
		return
	}

	s.archiveReport(r.Context(), raw)

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(raw)))
	if _, err := w.Write(raw); err != nil {
		log.Printf("write report workbook: %v", err)
		return
	}
	s.metrics.ReportsExported.WithLabelValues(metrics.DestinationDownload).Inc()
}

// archiveReport copies an exported workbook to the archive. Failures are
// logged and never block the download.
func (s *server) archiveReport(ctx context.Context, raw []byte) {
	if s.archive == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, archiveTimeout)
	defer cancel()

	key := archive.ReportKey(s.now(), uuid.New(), report.Filename)
	if err := s.archive.Put(ctx, key, raw, report.ContentType); err != nil {
		log.Printf("archive report %s: %v", key, err)
		return
	}
	s.metrics.ReportsExported.WithLabelValues(metrics.DestinationS3).Inc()
}
