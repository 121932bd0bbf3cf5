package webapi

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/finsighthq/finsight/internal/fixtures"
	"github.com/finsighthq/finsight/pkg/app"
	"github.com/finsighthq/finsight/pkg/config"
	"github.com/finsighthq/finsight/pkg/domain"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(store *fixtures.Store) *fiber.App {
	cfg := &config.App{
		Env:       "test",
		Server:    &config.Server{},
		Log:       &config.Log{},
		DB:        &config.DB{},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
		Report:    &config.Report{Currency: "EUR"},
	}
	a := app.New(&app.Deps{Uow: store.UoW(), Logger: slog.Default()}, cfg)
	return SetupApp(a)
}

func doRequest(t *testing.T, fiberApp *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	resp, err := fiberApp.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestWriteAllocations_ReplacesAndReturnsSet(t *testing.T) {
	store := fixtures.NewStore()
	p := store.AddProject(domain.Project{Code: "P1", Name: "Platform", ClientName: "Acme"})
	tx := store.AddTransaction(domain.Transaction{
		Amount: decimal.RequireFromString("1000.00"),
		Side:   domain.Credit,
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	fiberApp := newTestApp(store)

	body := fmt.Sprintf(`{"allocations":[
		{"project_id":%q,"percentage":"60"},
		{"client_name":"Globex","percentage":"40"}
	]}`, p.ID)
	resp, decoded := doRequest(t, fiberApp, fiber.MethodPut,
		"/transactions/"+tx.ID.String()+"/allocations", body)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decoded["data"].([]any)
	assert.Len(t, data, 2)
	assert.Len(t, store.Allocations[tx.ID], 2)
}

func TestWriteAllocations_BadSumRejected(t *testing.T) {
	store := fixtures.NewStore()
	tx := store.AddTransaction(domain.Transaction{
		Amount: decimal.RequireFromString("1000.00"),
		Side:   domain.Credit,
		Date:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	fiberApp := newTestApp(store)

	body := `{"allocations":[
		{"client_name":"Acme","percentage":"60"},
		{"client_name":"Globex","percentage":"39"}
	]}`
	resp, decoded := doRequest(t, fiberApp, fiber.MethodPut,
		"/transactions/"+tx.ID.String()+"/allocations", body)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decoded["detail"].(string), "99")
	assert.Empty(t, store.Allocations[tx.ID])
}

func TestWriteAllocations_UnknownTransactionIs404(t *testing.T) {
	store := fixtures.NewStore()
	fiberApp := newTestApp(store)

	resp, _ := doRequest(t, fiberApp, fiber.MethodPut,
		"/transactions/"+uuid.NewString()+"/allocations",
		`{"allocations":[{"client_name":"Acme"}]}`)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetPLReport_ReturnsStatement(t *testing.T) {
	store := fixtures.NewStore()
	revenue := store.AddCategory(domain.Category{
		Name: "Consulting", Type: domain.TypeRevenue, Active: true,
	})
	store.AddTransaction(domain.Transaction{
		Amount:     decimal.RequireFromString("1000.00"),
		Side:       domain.Credit,
		Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CategoryID: &revenue.ID,
	})
	fiberApp := newTestApp(store)

	resp, decoded := doRequest(t, fiberApp, fiber.MethodGet,
		"/reports/pl?start=2025-03-01&end=2025-03-31", "")

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := decoded["data"].(map[string]any)
	assert.Equal(t, "1000", data["revenue"])
	assert.Equal(t, "EUR", data["currency"])
}

func TestGetPLReport_MissingPeriodIs400(t *testing.T) {
	fiberApp := newTestApp(fixtures.NewStore())

	resp, _ := doRequest(t, fiberApp, fiber.MethodGet, "/reports/pl", "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteCategory_SystemCategoryRefused(t *testing.T) {
	store := fixtures.NewStore()
	c := store.AddCategory(domain.Category{
		Name: "Uncategorized", Type: domain.TypeUncategorized, Active: true, System: true,
	})
	fiberApp := newTestApp(store)

	resp, _ := doRequest(t, fiberApp, fiber.MethodDelete, "/categories/"+c.ID.String(), "")
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	_, ok := store.Categories[c.ID]
	assert.True(t, ok)
}
