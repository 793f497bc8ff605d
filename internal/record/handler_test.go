package record_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamik3/oy-vey-pay/internal/exchange"
	"github.com/tamik3/oy-vey-pay/internal/record"
	"github.com/tamik3/oy-vey-pay/internal/router"
)

// newTestApp wires the five expense routes behind a stub auth middleware
// that injects the given principal, mirroring the production router.
func newTestApp(h *record.Handler, principal string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: router.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		if principal != "" {
			c.Locals("userID", principal)
		}
		return c.Next()
	})

	app.Post("/api/add-expense/:userId", h.Add)
	app.Get("/api/get-expenses/:userId", h.List)
	app.Patch("/api/update-expense/:userId/:expenseId", h.Update)
	app.Delete("/api/delete-expense/:userId/:expenseId", h.Delete)
	app.Get("/api/get-total-expense-amount/:userId", h.Total)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	out := map[string]any{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return res, out
}

func TestGuardRejectsForeignPrincipalBeforeStore(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	app := newTestApp(h, uuid.NewString())

	recID := uuid.NewString()
	paths := []struct {
		method string
		path   string
		body   string
	}{
		{fiber.MethodPost, "/api/add-expense/" + owner.String(), `{"title":"x","amount":1,"tag":"food","currency":"ILS"}`},
		{fiber.MethodGet, "/api/get-expenses/" + owner.String(), ""},
		{fiber.MethodPatch, "/api/update-expense/" + owner.String() + "/" + recID, `{"title":"x","amount":1,"tag":"food","currency":"ILS"}`},
		{fiber.MethodDelete, "/api/delete-expense/" + owner.String() + "/" + recID, ""},
		{fiber.MethodGet, "/api/get-total-expense-amount/" + owner.String(), ""},
	}

	for _, p := range paths {
		res, body := doJSON(t, app, p.method, p.path, p.body)
		assert.Equal(t, fiber.StatusForbidden, res.StatusCode, "%s %s", p.method, p.path)
		assert.Equal(t, "Forbidden", body["message"])
	}
	assert.Zero(t, store.ownerCalls, "the guard must run before any store access")
}

func TestGuardRejectsMissingPrincipal(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	app := newTestApp(h, "")

	res, _ := doJSON(t, app, fiber.MethodGet, "/api/get-expenses/"+owner.String(), "")
	assert.Equal(t, fiber.StatusForbidden, res.StatusCode)
}

func TestAddExpenseEndpoint(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	fx := &fakeConverter{result: decimal.NewFromInt(370)}
	h := record.NewHandler(record.KindExpense, record.NewService(store, fx))
	app := newTestApp(h, owner.String())

	res, body := doJSON(t, app, fiber.MethodPost, "/api/add-expense/"+owner.String(),
		`{"title":"Groceries","description":"weekly","amount":100,"tag":"food","currency":"USD"}`)

	require.Equal(t, fiber.StatusCreated, res.StatusCode)
	assert.Equal(t, "Expense added successfully", body["message"])

	exp, ok := body["expense"].(map[string]any)
	require.True(t, ok, "created record echoed under the kind key")
	assert.Equal(t, "Groceries", exp["title"])
	assert.Equal(t, "370", asString(t, exp["exchangedAmount"]))
}

func TestAddExpenseConversionFailure(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, failingConverter()))
	app := newTestApp(h, owner.String())

	res, body := doJSON(t, app, fiber.MethodPost, "/api/add-expense/"+owner.String(),
		`{"title":"Groceries","amount":100,"tag":"food","currency":"USD"}`)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Failed to exchange", body["message"])
	assert.Zero(t, store.inserts)
}

func TestAddExpenseUnknownUser(t *testing.T) {
	store := newFakeStore()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	ghost := uuid.NewString()
	app := newTestApp(h, ghost)

	res, body := doJSON(t, app, fiber.MethodPost, "/api/add-expense/"+ghost,
		`{"title":"Groceries","amount":10,"tag":"food","currency":"ILS"}`)

	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "User not found", body["message"])
}

func TestAddExpenseValidationMessage(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	app := newTestApp(h, owner.String())

	res, body := doJSON(t, app, fiber.MethodPost, "/api/add-expense/"+owner.String(),
		`{"title":"","amount":10,"tag":"food","currency":"ILS"}`)

	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Title is required", body["message"])
}

func TestMalformedOwnPathIDIsBadRequest(t *testing.T) {
	store := newFakeStore()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	// Principal equals the malformed segment, so the guard passes and the
	// id validation is what fails.
	app := newTestApp(h, "not-a-uuid")

	res, body := doJSON(t, app, fiber.MethodGet, "/api/get-expenses/not-a-uuid", "")
	assert.Equal(t, fiber.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid user id", body["message"])
}

func TestUpdateExpenseReturnsNoRecordBody(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	svc := record.NewService(store, &fakeConverter{})
	h := record.NewHandler(record.KindExpense, svc)
	app := newTestApp(h, owner.String())

	rec, err := svc.Add(context.Background(), record.KindExpense, owner, payload("10", "ILS"))
	require.NoError(t, err)

	res, body := doJSON(t, app, fiber.MethodPatch,
		"/api/update-expense/"+owner.String()+"/"+rec.ID.String(),
		`{"title":"Rent","amount":10,"tag":"rent","currency":"ILS"}`)

	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "Expense updated successfully", body["message"])
	assert.NotContains(t, body, "expense", "update echoes no record body")
}

func TestUpdateUnownedExpenseIsNotFound(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	app := newTestApp(h, owner.String())

	res, body := doJSON(t, app, fiber.MethodPatch,
		"/api/update-expense/"+owner.String()+"/"+uuid.NewString(),
		`{"title":"Rent","amount":10,"tag":"rent","currency":"ILS"}`)

	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)
	assert.Equal(t, "Expense not found", body["message"])
}

func TestListExpensesEmptyArray(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	h := record.NewHandler(record.KindExpense, record.NewService(store, &fakeConverter{}))
	app := newTestApp(h, owner.String())

	req := httptest.NewRequest(fiber.MethodGet, "/api/get-expenses/"+owner.String(), nil)
	res, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}

func TestTotalEndpointFormatsTwoDecimals(t *testing.T) {
	store := newFakeStore()
	owner := store.addOwner()
	fx := &fakeConverter{result: decimal.NewFromInt(370)}
	svc := record.NewService(store, fx)
	h := record.NewHandler(record.KindExpense, svc)
	app := newTestApp(h, owner.String())

	_, err := svc.Add(context.Background(), record.KindExpense, owner, payload("100", "USD"))
	require.NoError(t, err)
	_, err = svc.Add(context.Background(), record.KindExpense, owner, payload("50", "ILS"))
	require.NoError(t, err)

	res, body := doJSON(t, app, fiber.MethodGet, "/api/get-total-expense-amount/"+owner.String(), "")
	require.Equal(t, fiber.StatusOK, res.StatusCode)
	assert.Equal(t, "420.00", body["totalAmount"])
}

func failingConverter() *fakeConverter {
	return &fakeConverter{err: exchange.ErrConversionFailed}
}

func asString(t *testing.T, v any) string {
	t.Helper()
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return decimal.NewFromFloat(x).String()
	default:
		t.Fatalf("unexpected type %T", v)
		return ""
	}
}
