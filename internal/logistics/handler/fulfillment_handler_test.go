package handler

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/bitfantasy/weave/internal/logistics/testutil"
)

func setupFulfillmentTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil)
	h := NewHandlers(svcs)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/orders", h.Order.CreateOrder)
	api.POST("/dispatches", h.Dispatch.CreateDispatch)
	api.GET("/reports/campaigns/:campaign_id", h.Fulfillment.CampaignReport)
	api.GET("/reports/references/:reference_id", h.Fulfillment.ReferenceReport)
	api.GET("/reports/clients/:client_id", h.Fulfillment.ClientReport)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestDispatchPriceCapture tests that line prices freeze at creation: order
// price when the client ordered the reference, list price otherwise
func TestDispatchPriceCapture(t *testing.T) {
	env := setupFulfillmentTest(t)
	token := testutil.DefaultTestToken()

	ordered := testutil.SeedReference(t, env.DB, "REF-F01", 30.0, "camp-2026a")
	unordered := testutil.SeedReference(t, env.DB, "REF-F02", 45.0, "camp-2026a")

	// Client order fixes a price of 28 for the first reference
	orderBody := map[string]interface{}{
		"client_id":   "client-001",
		"campaign_id": "camp-2026a",
		"items": []map[string]interface{}{
			{"reference_id": ordered.ID, "quantity": 10, "unit_price": 28.0},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/orders", orderBody, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("order create failed: %d %s", w.Code, w.Body.String())
	}

	dispatchBody := map[string]interface{}{
		"client_id":   "client-001",
		"campaign_id": "camp-2026a",
		"invoice_no":  "F-001",
		"items": []map[string]interface{}{
			{"reference_id": ordered.ID, "quantity": 4},
			{"reference_id": unordered.ID, "quantity": 2},
		},
	}
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/dispatches", dispatchBody, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("dispatch create failed: %d %s", w2.Code, w2.Body.String())
	}

	resp := testutil.ParseResponse(w2)
	items := resp["data"].(map[string]interface{})["items"].([]interface{})
	prices := map[string]float64{}
	for _, raw := range items {
		item := raw.(map[string]interface{})
		prices[item["reference_id"].(string)] = item["unit_price"].(float64)
	}
	if prices[ordered.ID] != 28.0 {
		t.Fatalf("expected order price 28, got %v", prices[ordered.ID])
	}
	if prices[unordered.ID] != 45.0 {
		t.Fatalf("expected list price 45, got %v", prices[unordered.ID])
	}
}

// TestCampaignReportEndToEnd drives orders, dispatches and receptions through
// the API and checks the campaign report numbers
func TestCampaignReportEndToEnd(t *testing.T) {
	env := setupFulfillmentTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-F03", 30.0, "camp-2026a")
	testutil.SeedReception(t, env.DB, ref.ID, 50, nil)

	orderBody := map[string]interface{}{
		"client_id":   "client-001",
		"campaign_id": "camp-2026a",
		"items": []map[string]interface{}{
			{"reference_id": ref.ID, "quantity": 15, "unit_price": 30.0},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/orders", orderBody, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("order create failed: %d %s", w.Code, w.Body.String())
	}

	dispatchBody := map[string]interface{}{
		"client_id":   "client-001",
		"campaign_id": "camp-2026a",
		"invoice_no":  "F-010",
		"items": []map[string]interface{}{
			{"reference_id": ref.ID, "quantity": 5},
		},
	}
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/dispatches", dispatchBody, token)
	if w2.Code != http.StatusCreated {
		t.Fatalf("dispatch create failed: %d %s", w2.Code, w2.Body.String())
	}

	w3 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/reports/campaigns/camp-2026a", nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("report failed: %d %s", w3.Code, w3.Body.String())
	}

	resp := testutil.ParseResponse(w3)
	refs := resp["data"].(map[string]interface{})["references"].([]interface{})
	if len(refs) != 1 {
		t.Fatalf("expected 1 reference row, got %d", len(refs))
	}
	row := refs[0].(map[string]interface{})
	if row["total_sold"].(float64) != 15 {
		t.Fatalf("expected total_sold 15, got %v", row["total_sold"])
	}
	if row["stock"].(float64) != 45 {
		t.Fatalf("expected stock 45 (50 received - 5 dispatched), got %v", row["stock"])
	}
	if row["pending_dispatch"].(float64) != 10 {
		t.Fatalf("expected pending_dispatch 10, got %v", row["pending_dispatch"])
	}
	if row["pending"].(float64) != 15 {
		t.Fatalf("expected pending 15 with no production counters, got %v", row["pending"])
	}
}

// TestClientReportLastDocuments tests the '-' defaults and last invoice by
// creation order
func TestClientReportLastDocuments(t *testing.T) {
	env := setupFulfillmentTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-F04", 30.0, "camp-2026a")

	orderBody := map[string]interface{}{
		"client_id":   "client-002",
		"campaign_id": "camp-2026a",
		"items": []map[string]interface{}{
			{"reference_id": ref.ID, "quantity": 20, "unit_price": 30.0},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/orders", orderBody, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("order create failed: %d %s", w.Code, w.Body.String())
	}

	// No dispatches yet: documents default to "-"
	w2 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/reports/clients/client-002?campaign_id=camp-2026a", nil, token)
	resp2 := testutil.ParseResponse(w2)
	rows := resp2["data"].([]interface{})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	first := rows[0].(map[string]interface{})
	if first["last_invoice_no"] != "-" || first["last_remission_no"] != "-" {
		t.Fatalf("expected '-' defaults, got %v / %v", first["last_invoice_no"], first["last_remission_no"])
	}

	for _, docs := range []map[string]string{
		{"invoice_no": "F-001", "remission_no": "RM-001"},
		{"invoice_no": "F-002", "remission_no": "RM-002"},
	} {
		dispatchBody := map[string]interface{}{
			"client_id":    "client-002",
			"campaign_id":  "camp-2026a",
			"invoice_no":   docs["invoice_no"],
			"remission_no": docs["remission_no"],
			"items": []map[string]interface{}{
				{"reference_id": ref.ID, "quantity": 3},
			},
		}
		wd := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/dispatches", dispatchBody, token)
		if wd.Code != http.StatusCreated {
			t.Fatalf("dispatch create failed: %d %s", wd.Code, wd.Body.String())
		}
	}

	w3 := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/reports/clients/client-002?campaign_id=camp-2026a", nil, token)
	resp3 := testutil.ParseResponse(w3)
	row := resp3["data"].([]interface{})[0].(map[string]interface{})
	if row["last_invoice_no"] != "F-002" || row["last_remission_no"] != "RM-002" {
		t.Fatalf("expected last documents F-002/RM-002, got %v / %v", row["last_invoice_no"], row["last_remission_no"])
	}
	if row["total_dispatched"].(float64) != 6 {
		t.Fatalf("expected total_dispatched 6, got %v", row["total_dispatched"])
	}
}
