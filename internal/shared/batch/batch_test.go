package batch

import (
	"context"
	"errors"
	"testing"
)

type row struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

func (r row) RecordID() string { return r.ID }

func validateRow(r row) FieldErrors {
	errs := FieldErrors{}
	if r.Name == "" {
		errs["name"] = "名称必填"
	}
	if r.Qty <= 0 {
		errs["qty"] = "数量必须大于零"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// fakePersister scripts per-call results the way a backing store would behave
type fakePersister struct {
	calls   [][]row
	results []*SaveResult
	errs    []error
}

func (p *fakePersister) SaveChanged(_ context.Context, records []row) (*SaveResult, error) {
	call := len(p.calls)
	p.calls = append(p.calls, records)
	if call < len(p.errs) && p.errs[call] != nil {
		return nil, p.errs[call]
	}
	if call < len(p.results) {
		return p.results[call], nil
	}
	return &SaveResult{Saved: len(records)}, nil
}

func okPersister() *fakePersister { return &fakePersister{} }

func TestDiffDetectsChangedAndNewRecords(t *testing.T) {
	c := NewCommitter[row](validateRow, okPersister())
	c.SetBaseline([]row{
		{ID: "1", Name: "camisa", Qty: 10},
		{ID: "2", Name: "pantalon", Qty: 5},
	})

	candidate := []row{
		{ID: "1", Name: "camisa", Qty: 10},  // unchanged
		{ID: "2", Name: "pantalon", Qty: 8}, // changed
		{ID: "temp-3", Name: "falda", Qty: 2}, // new
	}
	changed := c.Diff(candidate)
	if len(changed) != 2 {
		t.Fatalf("expected 2 changed records, got %d", len(changed))
	}
	if changed[0].ID != "2" || changed[1].ID != "temp-3" {
		t.Errorf("changed ids = %s,%s, want 2,temp-3", changed[0].ID, changed[1].ID)
	}
}

func TestDiffMissingRowsAreNotDeletions(t *testing.T) {
	c := NewCommitter[row](validateRow, okPersister())
	c.SetBaseline([]row{{ID: "1", Name: "camisa", Qty: 10}})

	changed := c.Diff(nil)
	if len(changed) != 0 {
		t.Errorf("rows absent from candidate must not be reported, got %d", len(changed))
	}
}

func TestSaveNothingToSaveSkipsCollaborators(t *testing.T) {
	p := okPersister()
	validated := 0
	c := NewCommitter[row](func(r row) FieldErrors { validated++; return nil }, p)
	base := []row{{ID: "1", Name: "camisa", Qty: 10}}
	c.SetBaseline(base)

	out, err := c.Save(context.Background(), base)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !out.NothingToSave {
		t.Error("expected NothingToSave")
	}
	if validated != 0 || len(p.calls) != 0 {
		t.Errorf("validator/persister must not run on empty diff (validated=%d calls=%d)", validated, len(p.calls))
	}
}

func TestSaveAllOrNothingValidationGate(t *testing.T) {
	p := okPersister()
	c := NewCommitter[row](validateRow, p)

	// one invalid record among ten withholds the whole batch
	candidate := make([]row, 10)
	for i := range candidate {
		candidate[i] = row{ID: string(rune('a' + i)), Name: "ref", Qty: 1}
	}
	candidate[3].Qty = 0

	out, err := c.Save(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(p.calls) != 0 {
		t.Fatal("persister must not be called when validation rejects the batch")
	}
	if len(out.Rejected) != 1 {
		t.Fatalf("expected exactly the invalid record reported, got %d", len(out.Rejected))
	}
	if msg, ok := out.Rejected[3]["qty"]; !ok || msg == "" {
		t.Errorf("expected field error for record 3 qty, got %v", out.Rejected[3])
	}
	if out.Result != nil {
		t.Error("no save summary may exist for a rejected batch")
	}
}

func TestSaveCollectsAllValidationErrorsBeforeDeciding(t *testing.T) {
	c := NewCommitter[row](validateRow, okPersister())
	candidate := []row{
		{ID: "1", Name: "", Qty: 0},
		{ID: "2", Name: "ok", Qty: 1},
		{ID: "3", Name: "", Qty: 5},
	}
	out, err := c.Save(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(out.Rejected) != 2 {
		t.Fatalf("expected errors for both invalid records, got %v", out.Rejected)
	}
	if len(out.Rejected[0]) != 2 {
		t.Errorf("record 0 should carry two field errors, got %v", out.Rejected[0])
	}
}

func TestSaveSubmitsOnlyChangedSubset(t *testing.T) {
	p := okPersister()
	c := NewCommitter[row](validateRow, p)
	c.SetBaseline([]row{
		{ID: "1", Name: "camisa", Qty: 10},
		{ID: "2", Name: "pantalon", Qty: 5},
	})

	candidate := []row{
		{ID: "1", Name: "camisa", Qty: 10},
		{ID: "2", Name: "pantalon", Qty: 9},
	}
	out, err := c.Save(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if len(p.calls) != 1 || len(p.calls[0]) != 1 || p.calls[0][0].ID != "2" {
		t.Errorf("persister must receive exactly the changed subset, got %v", p.calls)
	}
	if out.Result.Saved != 1 {
		t.Errorf("saved = %d, want 1", out.Result.Saved)
	}
}

func TestSaveIdempotentAfterFullSuccess(t *testing.T) {
	c := NewCommitter[row](validateRow, okPersister())
	candidate := []row{{ID: "1", Name: "camisa", Qty: 10}}

	if _, err := c.Save(context.Background(), candidate); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if changed := c.Diff(candidate); len(changed) != 0 {
		t.Errorf("re-diffing an unchanged candidate after success must be empty, got %d", len(changed))
	}
	if c.HasUnsavedChanges(candidate) {
		t.Error("HasUnsavedChanges must be false after a full success")
	}
}

func TestSavePartialPersistenceFailureKeepsFailedBaseline(t *testing.T) {
	p := &fakePersister{
		results: []*SaveResult{
			{Saved: 1, Failed: 1, Errors: []RecordError{
				{Index: 1, Errors: FieldErrors{"contractor_id": "外协厂不存在"}},
			}},
		},
	}
	c := NewCommitter[row](validateRow, p)
	candidate := []row{
		{ID: "1", Name: "camisa", Qty: 10},
		{ID: "2", Name: "pantalon", Qty: 5},
	}

	out, err := c.Save(context.Background(), candidate)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if out.Result.Saved != 1 || out.Result.Failed != 1 {
		t.Fatalf("summary = %+v, want saved=1 failed=1", out.Result)
	}

	// only the failed record is still "changed"
	changed := c.Diff(candidate)
	if len(changed) != 1 || changed[0].ID != "2" {
		t.Errorf("re-diff must report exactly the failed records, got %v", changed)
	}
}

func TestSaveConnectivityFailureLeavesBaselineUntouched(t *testing.T) {
	p := &fakePersister{errs: []error{errors.New("connection refused")}}
	c := NewCommitter[row](validateRow, p)
	candidate := []row{{ID: "1", Name: "camisa", Qty: 10}}

	if _, err := c.Save(context.Background(), candidate); err == nil {
		t.Fatal("expected connectivity error")
	}
	if changed := c.Diff(candidate); len(changed) != 1 {
		t.Errorf("the whole batch must remain changed after a connectivity failure, got %d", len(changed))
	}
}

func TestIndependentBatchesShareNoState(t *testing.T) {
	p1, p2 := okPersister(), okPersister()
	c1 := NewCommitter[row](validateRow, p1)
	c2 := NewCommitter[row](validateRow, p2)

	if _, err := c1.Save(context.Background(), []row{{ID: "1", Name: "a", Qty: 1}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if changed := c2.Diff([]row{{ID: "1", Name: "a", Qty: 1}}); len(changed) != 1 {
		t.Errorf("committers must not share baselines, got %d changed", len(changed))
	}
}
