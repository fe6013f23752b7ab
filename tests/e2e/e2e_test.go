//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests for PharmStockHub using real Postgres + Redis
// via testcontainers. Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   - Full movement cycle: login → seed catalog → central→rep → rep→rep
//   - Overdraw rejected with 409 and balances intact
//   - Parallel movements from the central pool cannot overdraw it
//   - Expiring window endpoint including the days validation
//   - Role enforcement: a medical rep cannot move stock

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/abdobody2040/PharmStockHub/internal/config"
	"github.com/abdobody2040/PharmStockHub/internal/infra"
	"github.com/abdobody2040/PharmStockHub/internal/model"
	"github.com/abdobody2040/PharmStockHub/internal/router"
	"github.com/abdobody2040/PharmStockHub/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
}

func (e *testEnv) login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"username": username, "password": password}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &body)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pharmstock_test"),
		tcPostgres.WithUsername("pharmstock"),
		tcPostgres.WithPassword("pharmstock"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		ExpiryAlertDays:    30,
		ReportStoragePath:  t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin account
	hash, err := bcrypt.GenerateFromPassword([]byte("pharmstock2026"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.User{
		Username:     "admin@e2e.test",
		Name:         "Admin E2E",
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
		Active:       true,
	}).Error)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}
	env.token = env.login(t, srv, "admin@e2e.test", "pharmstock2026")
	return env
}

// createUser provisions a user through the API and returns its id.
func (e *testEnv) createUser(t *testing.T, username, role string) string {
	t.Helper()
	resp := do(t, e.server, "POST", "/api/users", jsonBody(t, map[string]any{
		"username": username,
		"name":     username,
		"password": "pharmstock2026",
		"role":     role,
	}), e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var body struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &body)
	return body.ID
}

// seedCatalog creates a category plus one stock item and returns the item id.
func (e *testEnv) seedCatalog(t *testing.T, itemName string, qty int, expiry *time.Time) string {
	t.Helper()
	resp := do(t, e.server, "POST", "/api/categories", jsonBody(t, map[string]string{
		"name": fmt.Sprintf("cat-%s", itemName),
	}), e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &cat)

	item := map[string]any{
		"name":        itemName,
		"category_id": cat.ID,
		"quantity":    qty,
		"price_cents": 990,
	}
	if expiry != nil {
		item["expiry_date"] = expiry.UTC().Format(time.RFC3339)
	}
	resp = do(t, e.server, "POST", "/api/stock-items", jsonBody(t, item), e.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)
	return created.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_MovementCycle(t *testing.T) {
	env := setupTestEnv(t)

	rep1 := env.createUser(t, "rep1@e2e.test", model.RoleMedicalRep)
	rep2 := env.createUser(t, "rep2@e2e.test", model.RoleMedicalRep)
	itemID := env.seedCatalog(t, "Amoxicillin samples", 100, nil)

	// Central → rep1: 30 units
	resp := do(t, env.server, "POST", "/api/movements", jsonBody(t, map[string]any{
		"stock_item_id": itemID,
		"to_user_id":    rep1,
		"quantity":      30,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// rep1 → rep2: 10 units
	resp = do(t, env.server, "POST", "/api/movements", jsonBody(t, map[string]any{
		"stock_item_id": itemID,
		"from_user_id":  rep1,
		"to_user_id":    rep2,
		"quantity":      10,
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// rep1 holds 20 — moving 25 overdraws and must not change anything
	resp = do(t, env.server, "POST", "/api/movements", jsonBody(t, map[string]any{
		"stock_item_id": itemID,
		"from_user_id":  rep1,
		"to_user_id":    rep2,
		"quantity":      25,
	}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Allocations: rep1 = 20, rep2 = 10
	resp = do(t, env.server, "GET", "/api/allocations?userId="+rep1, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var allocs []struct {
		UserID   string `json:"user_id"`
		Quantity int    `json:"quantity"`
	}
	decodeJSON(t, resp, &allocs)
	require.Len(t, allocs, 1)
	assert.Equal(t, 20, allocs[0].Quantity)

	// Item availability: 100 total, 30 allocated → 70 central
	resp = do(t, env.server, "GET", "/api/stock-items/"+itemID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item struct {
		Quantity  int  `json:"quantity"`
		Available *int `json:"available"`
	}
	decodeJSON(t, resp, &item)
	assert.Equal(t, 100, item.Quantity)
	require.NotNil(t, item.Available)
	assert.Equal(t, 70, *item.Available)

	// Movement trail: two rows, the failed transfer left no trace
	resp = do(t, env.server, "GET", "/api/movements?stock_item_id="+itemID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trail struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, resp, &trail)
	assert.Equal(t, int64(2), trail.Total)
}

// TestE2E_ConcurrentCentralMovements fires parallel transfers from the
// central pool of one item. The central pool is derived (quantity minus the
// allocation sum), so overlapping transactions must serialize on the item
// row — whatever subset wins, sum(allocations) may never exceed the item
// quantity.
func TestE2E_ConcurrentCentralMovements(t *testing.T) {
	env := setupTestEnv(t)

	repIDs := make([]string, 8)
	for i := range repIDs {
		repIDs[i] = env.createUser(t, fmt.Sprintf("rep%d@concurrent.test", i), model.RoleMedicalRep)
	}
	itemID := env.seedCatalog(t, "Ibuprofen samples", 100, nil)

	// 8 × 25 = 200 requested against a pool of 100: exactly 4 can win.
	statuses := make([]int, len(repIDs))
	var wg sync.WaitGroup
	for i, repID := range repIDs {
		wg.Add(1)
		go func(i int, repID string) {
			defer wg.Done()
			resp := do(t, env.server, "POST", "/api/movements", jsonBody(t, map[string]any{
				"stock_item_id": itemID,
				"to_user_id":    repID,
				"quantity":      25,
			}), env.token)
			statuses[i] = resp.StatusCode
			resp.Body.Close()
		}(i, repID)
	}
	wg.Wait()

	created := 0
	for _, s := range statuses {
		switch s {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			// loser — pool already spent
		default:
			t.Fatalf("unexpected status %d", s)
		}
	}
	assert.Equal(t, 4, created)

	// The allocation total for the item must equal what the winners moved
	// and can never exceed the stored quantity.
	resp := do(t, env.server, "GET", "/api/allocations", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var allocs []struct {
		StockItemID string `json:"stock_item_id"`
		Quantity    int    `json:"quantity"`
	}
	decodeJSON(t, resp, &allocs)
	allocated := 0
	for _, a := range allocs {
		if a.StockItemID == itemID {
			allocated += a.Quantity
		}
	}
	require.LessOrEqual(t, allocated, 100)
	assert.Equal(t, 25*created, allocated)

	// Central pool drained to zero, stored quantity untouched.
	resp = do(t, env.server, "GET", "/api/stock-items/"+itemID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item struct {
		Quantity  int  `json:"quantity"`
		Available *int `json:"available"`
	}
	decodeJSON(t, resp, &item)
	assert.Equal(t, 100, item.Quantity)
	require.NotNil(t, item.Available)
	assert.Equal(t, 0, *item.Available)

	// One ledger row per winner, none for the rejected transfers.
	resp = do(t, env.server, "GET", "/api/movements?stock_item_id="+itemID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var trail struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, resp, &trail)
	assert.EqualValues(t, created, trail.Total)
}

func TestE2E_ExpiringWindow(t *testing.T) {
	env := setupTestEnv(t)

	soon := time.Now().AddDate(0, 0, 7)
	later := time.Now().AddDate(0, 0, 90)
	env.seedCatalog(t, "Expiring kit", 5, &soon)
	env.seedCatalog(t, "Fresh kit", 5, &later)
	env.seedCatalog(t, "Timeless kit", 5, nil)

	resp := do(t, env.server, "GET", "/api/stock-items/expiring", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var items []struct {
		Name string `json:"name"`
	}
	decodeJSON(t, resp, &items)
	require.Len(t, items, 1)
	assert.Equal(t, "Expiring kit", items[0].Name)

	resp = do(t, env.server, "GET", "/api/stock-items/expiring?days=120", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeJSON(t, resp, &items)
	assert.Len(t, items, 2)

	// Day-count validation
	resp = do(t, env.server, "GET", "/api/stock-items/expiring?days=abc", nil, env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
	resp = do(t, env.server, "GET", "/api/stock-items/expiring?days=0", nil, env.token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_PermissionEnforcement(t *testing.T) {
	env := setupTestEnv(t)

	env.createUser(t, "rep@e2e.test", model.RoleMedicalRep)
	itemID := env.seedCatalog(t, "Guarded item", 10, nil)

	repToken := env.login(t, env.server, "rep@e2e.test", "pharmstock2026")

	// Medical reps can read movements but never create them
	resp := do(t, env.server, "GET", "/api/movements", nil, repToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/api/movements", jsonBody(t, map[string]any{
		"stock_item_id": itemID,
		"to_user_id":    itemID, // irrelevant — rejected before validation
		"quantity":      1,
	}), repToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// No token at all
	resp = do(t, env.server, "GET", "/api/movements", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_ValuationReport(t *testing.T) {
	env := setupTestEnv(t)

	env.seedCatalog(t, "Priced item", 10, nil) // 10 × 990 cents

	resp := do(t, env.server, "GET", "/api/reports/valuation", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var report struct {
		Categories []struct {
			Category string `json:"category"`
			Units    int    `json:"units"`
			Value    string `json:"value"`
		} `json:"categories"`
		Total string `json:"total"`
	}
	decodeJSON(t, resp, &report)
	require.Len(t, report.Categories, 1)
	assert.Equal(t, 10, report.Categories[0].Units)
	assert.Equal(t, "99", report.Total) // 9900 cents
}
