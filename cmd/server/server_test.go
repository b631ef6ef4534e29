package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Simplici0/pollos/internal/db"
	"github.com/Simplici0/pollos/internal/metrics"
	"github.com/Simplici0/pollos/internal/migrations"
	"github.com/Simplici0/pollos/internal/seed"
)

var testNow = time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)

type recordingArchiver struct {
	mu     sync.Mutex
	keys   []string
	bodies [][]byte
	err    error
}

func (a *recordingArchiver) Put(_ context.Context, key string, body []byte, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.keys = append(a.keys, key)
	a.bodies = append(a.bodies, body)
	return nil
}

func newTestServer(t *testing.T) *server {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := migrations.Up(database); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	if _, err := seed.Run(database, seed.Config{Defaults: seed.DefaultCycle()}); err != nil {
		t.Fatalf("run seed: %v", err)
	}

	return &server{
		db:      database,
		metrics: metrics.New(),
		now:     func() time.Time { return testNow },
	}
}

func doGet(t *testing.T, srv *server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func doPost(t *testing.T, srv *server, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, req)
	return rr
}

func assertContains(t *testing.T, body string, expected ...string) {
	t.Helper()
	for _, e := range expected {
		if !strings.Contains(body, e) {
			t.Fatalf("expected body to contain %q, got:\n%s", e, body)
		}
	}
}
