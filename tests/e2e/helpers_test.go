//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tagmatch-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/tagmatch-backend/internal/app"
	"github.com/heartmarshall/tagmatch-backend/internal/config"
	"github.com/heartmarshall/tagmatch-backend/internal/domain"
	"github.com/heartmarshall/tagmatch-backend/internal/transport/middleware"
	"github.com/heartmarshall/tagmatch-backend/internal/transport/rest"
)

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	Engine *app.Engine
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the application stack against the shared
// PostgreSQL container. Every call starts from empty tables, so E2E tests
// must not run in parallel.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	_, err := pool.Exec(context.Background(),
		`TRUNCATE matches, preference_counters, profiles, tags RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "reset tables")

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	cfg := &config.Config{
		Matching: config.MatchingConfig{
			PageSize:         10,
			MaxPageScan:      50,
			DistanceStrategy: "sum_square",
		},
	}

	engine, err := app.NewEngine(context.Background(), cfg, pool, logger)
	require.NoError(t, err)
	t.Cleanup(engine.Close)

	limiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(limiter.Stop)

	handler := rest.NewRouter(
		rest.NewHealthHandler(pool, nil, "test-version"),
		rest.NewMatchingHandler(engine.Matching, logger),
		middleware.Stack(logger, config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type,X-Request-Id",
			MaxAge:         86400,
		}, limiter, 0),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		Engine: engine,
	}
}

// ---------------------------------------------------------------------------
// Seed helpers
// ---------------------------------------------------------------------------

// seedTaxonomy writes countA TRAIT_A tags and countB TRAIT_B tags.
func (ts *testServer) seedTaxonomy(t *testing.T, countA, countB int) {
	t.Helper()

	tags := make([]domain.Tag, 0, countA+countB)
	for i := 1; i <= countA; i++ {
		tags = append(tags, domain.Tag{ID: i, Type: domain.TagTypeTraitA, DisplayName: fmt.Sprintf("a%d", i)})
	}
	for i := 1; i <= countB; i++ {
		tags = append(tags, domain.Tag{ID: i, Type: domain.TagTypeTraitB, DisplayName: fmt.Sprintf("b%d", i)})
	}

	_, err := ts.Engine.Tags.Upsert(context.Background(), tags)
	require.NoError(t, err)
}

func (ts *testServer) seedProfile(t *testing.T, profileType domain.ProfileType, name string, traitA, traitB []int) domain.Profile {
	t.Helper()

	p, err := ts.Engine.Profiles.Create(context.Background(), &domain.Profile{
		Type:        profileType,
		DisplayName: name,
		TraitA:      traitA,
		TraitB:      traitB,
	})
	require.NoError(t, err)
	return *p
}

// ---------------------------------------------------------------------------
// HTTP helpers
// ---------------------------------------------------------------------------

// do sends a JSON request and decodes the JSON response into out when out
// is non-nil. Returns the status code.
func (ts *testServer) do(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out), "decode %s %s", method, path)
	}
	return resp.StatusCode
}

// ---------------------------------------------------------------------------
// Response shapes
// ---------------------------------------------------------------------------

type preferenceBody struct {
	RequesterID int64      `json:"requester_id"`
	CountA      int        `json:"count_a"`
	CountB      int        `json:"count_b"`
	Raw         []int64    `json:"raw"`
	Normalized  []*float64 `json:"normalized"`
	Initialized bool       `json:"initialized"`
}

type candidateBody struct {
	ID          int64    `json:"id"`
	DisplayName string   `json:"display_name"`
	TraitA      []int    `json:"trait_a"`
	TraitB      []int    `json:"trait_b"`
	Distance    *float64 `json:"distance"`
}

type matchBody struct {
	ID                string `json:"id"`
	RequesterID       int64  `json:"requester_id"`
	CandidateID       int64  `json:"candidate_id"`
	RequesterApproved *bool  `json:"requester_approved"`
	CandidateApproved *bool  `json:"candidate_approved"`
	State             string `json:"state"`
}

type recommendationBody struct {
	Candidate  *candidateBody `json:"candidate"`
	Match      *matchBody     `json:"match"`
	Remaining  []int64        `json:"remaining"`
	Preference []*float64     `json:"preference"`
	Cursor     int64          `json:"cursor"`
	Exhausted  bool           `json:"exhausted"`
	Message    string         `json:"message"`
}

type respondBody struct {
	Match      matchBody  `json:"match"`
	Preference []*float64 `json:"preference"`
}

type summaryBody struct {
	MatchID          string `json:"match_id"`
	CounterpartyID   int64  `json:"counterparty_id"`
	CounterpartyName string `json:"counterparty_name"`
	Status           string `json:"status"`
}

type deletedBody struct {
	Deleted int64 `json:"deleted"`
}

type errorBody struct {
	Error string `json:"error"`
}

func floats(t *testing.T, in []*float64) []float64 {
	t.Helper()
	out := make([]float64, len(in))
	for i, v := range in {
		require.NotNil(t, v, "position %d is null", i)
		out[i] = *v
	}
	return out
}
