package handler

import (
	"net/http"
	"testing"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/bitfantasy/weave/internal/logistics/testutil"
)

func setupProductionTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	svcs := service.NewServices(repos, nil)
	h := NewProductionHandler(svcs.Production)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/production", h.ListProduction)
	api.PUT("/production/stage", h.UpdateStage)
	api.POST("/production/bulk-save", h.BulkSaveProduction)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

// TestProductionUpdateStageCreatesRecord tests that updating one counter on a
// missing record creates it zero-initialized with only the target field set
func TestProductionUpdateStageCreatesRecord(t *testing.T) {
	env := setupProductionTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-001", 25.0, "camp-2026a")

	body := map[string]interface{}{
		"reference_id": ref.ID,
		"campaign_id":  "camp-2026a",
		"field":        "cut",
		"value":        40,
	}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production/stage", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["cut"].(float64) != 40 {
		t.Fatalf("expected cut 40, got %v", data["cut"])
	}
	if data["programmed"].(float64) != 0 || data["inventory"].(float64) != 0 {
		t.Fatalf("expected other counters zero, got %v / %v", data["programmed"], data["inventory"])
	}

	var record entity.ProductionRecord
	if err := env.DB.Where("reference_id = ? AND campaign_id = ?", ref.ID, "camp-2026a").First(&record).Error; err != nil {
		t.Fatalf("expected persisted record: %v", err)
	}
	if record.Cut != 40 {
		t.Fatalf("expected persisted cut 40, got %d", record.Cut)
	}
}

// TestProductionUpdateStageRejectsUnknownField tests the field whitelist
func TestProductionUpdateStageRejectsUnknownField(t *testing.T) {
	env := setupProductionTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-002", 25.0, "camp-2026a")

	body := map[string]interface{}{
		"reference_id": ref.ID,
		"campaign_id":  "camp-2026a",
		"field":        "sewn",
		"value":        10,
	}
	w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production/stage", body, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

// TestProductionBulkSaveAllOrNothing tests that one invalid row rejects the
// whole batch with zero rows persisted
func TestProductionBulkSaveAllOrNothing(t *testing.T) {
	env := setupProductionTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-003", 25.0, "camp-2026a")

	body := map[string]interface{}{
		"campaign_id": "camp-2026a",
		"rows": []map[string]interface{}{
			{"reference_id": ref.ID, "programmed": 10, "cut": 5, "inventory": 2},
			{"reference_id": ref.ID + "-x", "programmed": -3, "cut": 0, "inventory": 0},
		},
	}
	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/production/bulk-save", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	rejected, ok := data["rejected"].(map[string]interface{})
	if !ok || len(rejected) != 1 {
		t.Fatalf("expected exactly one rejected row, got %v", data["rejected"])
	}

	var count int64
	env.DB.Model(&entity.ProductionRecord{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected zero persisted rows after rejection, got %d", count)
	}
}

// TestProductionBulkSaveDiffAndIdempotence tests that only changed rows are
// committed and that resubmitting the same grid saves nothing
func TestProductionBulkSaveDiffAndIdempotence(t *testing.T) {
	env := setupProductionTest(t)
	token := testutil.DefaultTestToken()

	ref1 := testutil.SeedReference(t, env.DB, "REF-004", 25.0, "camp-2026a")
	ref2 := testutil.SeedReference(t, env.DB, "REF-005", 30.0, "camp-2026a")

	rows := []map[string]interface{}{
		{"reference_id": ref1.ID, "programmed": 15, "cut": 0, "inventory": 0},
		{"reference_id": ref2.ID, "programmed": 0, "cut": 8, "inventory": 3},
	}
	body := map[string]interface{}{"campaign_id": "camp-2026a", "rows": rows}

	w := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/production/bulk-save", body, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	result := resp["data"].(map[string]interface{})["result"].(map[string]interface{})
	if result["saved"].(float64) != 2 {
		t.Fatalf("expected 2 saved, got %v", result["saved"])
	}

	// Same grid again: diff is empty, nothing saved
	w2 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/production/bulk-save", body, token)
	if w2.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w2.Code, w2.Body.String())
	}
	resp2 := testutil.ParseResponse(w2)
	data2 := resp2["data"].(map[string]interface{})
	if data2["nothing_to_save"] != true {
		t.Fatalf("expected nothing_to_save, got %v", data2)
	}

	// Change one row: only that row is committed
	rows[0]["programmed"] = 20
	w3 := testutil.DoRequest(env.Router, http.MethodPost, "/api/v1/production/bulk-save", body, token)
	resp3 := testutil.ParseResponse(w3)
	result3 := resp3["data"].(map[string]interface{})["result"].(map[string]interface{})
	if result3["saved"].(float64) != 1 {
		t.Fatalf("expected 1 saved after single change, got %v", result3["saved"])
	}

	var record entity.ProductionRecord
	env.DB.Where("reference_id = ? AND campaign_id = ?", ref1.ID, "camp-2026a").First(&record)
	if record.Programmed != 20 {
		t.Fatalf("expected programmed 20, got %d", record.Programmed)
	}
}

// TestProductionListByCampaign tests the campaign filter
func TestProductionListByCampaign(t *testing.T) {
	env := setupProductionTest(t)
	token := testutil.DefaultTestToken()

	ref := testutil.SeedReference(t, env.DB, "REF-006", 25.0, "camp-2026a", "camp-2026b")

	for _, campaign := range []string{"camp-2026a", "camp-2026b"} {
		body := map[string]interface{}{
			"reference_id": ref.ID,
			"campaign_id":  campaign,
			"field":        "programmed",
			"value":        5,
		}
		w := testutil.DoRequest(env.Router, http.MethodPut, "/api/v1/production/stage", body, token)
		if w.Code != http.StatusOK {
			t.Fatalf("seed update failed: %d %s", w.Code, w.Body.String())
		}
	}

	w := testutil.DoRequest(env.Router, http.MethodGet, "/api/v1/production?campaign_id=camp-2026a", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	records := resp["data"].([]interface{})
	if len(records) != 1 {
		t.Fatalf("expected 1 record for campaign, got %d", len(records))
	}
}
