package main

import (
	"bytes"
	"context"
	"database/sql"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Simplici0/pollos/internal/archive"
	"github.com/Simplici0/pollos/internal/config"
	"github.com/Simplici0/pollos/internal/db"
	"github.com/Simplici0/pollos/internal/metrics"
	"github.com/Simplici0/pollos/internal/migrations"
	"github.com/Simplici0/pollos/internal/report"
	"github.com/Simplici0/pollos/internal/seed"
	"github.com/Simplici0/pollos/web"
)

type server struct {
	db      *sql.DB
	metrics *metrics.Metrics
	// archive is nil when exported reports are not copied anywhere.
	archive archive.Archiver
	now     func() time.Time
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

var templateFuncs = template.FuncMap{
	"cop":   report.COP,
	"lbs":   report.Pounds,
	"units": report.Units,
}

func main() {
	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(database, seed.Config{Defaults: seed.DefaultCycle()})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if stats.Inserts > 0 {
		log.Printf("seeded %d rows", stats.Inserts)
	}

	srv := &server{db: database, metrics: metrics.New(), now: time.Now}

	if cfg.ArchiveEnabled() {
		store, err := archive.NewS3(context.Background(), archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
		if err != nil {
			log.Fatalf("failed to configure report archive: %v", err)
		}
		srv.archive = store
		log.Printf("archiving reports to s3://%s", cfg.S3Bucket)
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, srv.routes()); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.FileServer(http.FS(web.Static)))
	r.Get("/", s.handleHome)
	r.Post("/analisis", s.handleAnalysis)
	r.Post("/analisis/excel", s.handleAnalysisExcel)
	r.Get("/ciclos", s.handleCyclesList)
	r.Post("/ciclos", s.handleCycleCreate)
	r.Get("/ciclos/{id}", s.handleCycleDetail)
	r.Get("/ciclos/{id}/excel", s.handleCycleExcel)
	r.Post("/ciclos/{id}/eliminar", s.handleCycleDelete)
	r.Get("/ajustes", s.handleSettingsForm)
	r.Post("/ajustes", s.handleSettingsSubmit)
	r.Handle("/metrics", s.metrics.Handler())

	return r
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	templates, err := template.New(page).Funcs(templateFuncs).ParseFS(web.Templates,
		"templates/layout.html",
		"templates/partials/*.html",
		"templates/"+page,
	)
	if err != nil {
		log.Printf("parse template %s: %v", page, err)
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Printf("render template %s: %v", page, err)
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
