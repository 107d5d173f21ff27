package engine

import (
	"testing"

	"github.com/bitfantasy/weave/internal/logistics/entity"
)

func TestGetStageDefaultsToZeros(t *testing.T) {
	stage := GetStage(nil, "A100", "C1")
	if stage.Programmed != 0 || stage.Cut != 0 || stage.Inventory != 0 {
		t.Errorf("missing record should read as zeros, got %+v", stage)
	}
}

func TestUpsertStageCreatesZeroInitializedRecord(t *testing.T) {
	records, err := UpsertStage(nil, "A100", "C1", entity.StageCut, 7)
	if err != nil {
		t.Fatalf("UpsertStage: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	stage := GetStage(records, "A100", "C1")
	if stage.Cut != 7 || stage.Programmed != 0 || stage.Inventory != 0 {
		t.Errorf("got %+v, want cut=7 others zero", stage)
	}
}

func TestUpsertStageReplacesOnlyTargetField(t *testing.T) {
	existing := []entity.ProductionRecord{
		{ReferenceID: "A100", CampaignID: "C1", Programmed: 4, Cut: 3, Inventory: 2},
	}
	records, err := UpsertStage(existing, "A100", "C1", entity.StageProgrammed, 10)
	if err != nil {
		t.Fatalf("UpsertStage: %v", err)
	}
	stage := GetStage(records, "A100", "C1")
	if stage.Programmed != 10 || stage.Cut != 3 || stage.Inventory != 2 {
		t.Errorf("got %+v, want programmed replaced, cut/inventory preserved", stage)
	}

	// input snapshot must stay untouched
	if existing[0].Programmed != 4 {
		t.Errorf("input snapshot was mutated: programmed=%d", existing[0].Programmed)
	}
}

func TestUpsertStageScopedToCampaign(t *testing.T) {
	existing := []entity.ProductionRecord{
		{ReferenceID: "A100", CampaignID: "C1", Programmed: 4},
	}
	records, err := UpsertStage(existing, "A100", "C2", entity.StageProgrammed, 9)
	if err != nil {
		t.Fatalf("UpsertStage: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected a new record per campaign, got %d records", len(records))
	}
	if got := GetStage(records, "A100", "C1").Programmed; got != 4 {
		t.Errorf("C1 programmed = %d, want 4", got)
	}
	if got := GetStage(records, "A100", "C2").Programmed; got != 9 {
		t.Errorf("C2 programmed = %d, want 9", got)
	}
}

func TestUpsertStageRejectsUnknownField(t *testing.T) {
	if _, err := UpsertStage(nil, "A100", "C1", "sewn", 1); err == nil {
		t.Error("expected error for unknown stage field")
	}
}

func TestPendingToProduce(t *testing.T) {
	tests := []struct {
		name      string
		stage     Stage
		totalSold int
		want      int
	}{
		{"partial progress", Stage{Programmed: 4, Cut: 3, Inventory: 2}, 15, 6},
		{"surplus clamps to zero", Stage{Programmed: 10, Cut: 10, Inventory: 10}, 5, 0},
		{"all zero counters", Stage{}, 8, 8},
		{"nothing sold", Stage{Programmed: 3}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PendingToProduce(tt.stage, tt.totalSold); got != tt.want {
				t.Errorf("PendingToProduce(%+v, %d) = %d, want %d", tt.stage, tt.totalSold, got, tt.want)
			}
		})
	}
}
