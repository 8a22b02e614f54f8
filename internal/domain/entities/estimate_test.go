package entities

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEstimate(t *testing.T) {
	e := NewEstimate()

	t.Run("defaults", func(t *testing.T) {
		if e.ID == "" {
			t.Fatalf("expected generated id")
		}
		if e.Status != EstimateStatusDraft {
			t.Fatalf("expected draft status, got %q", e.Status)
		}
		if e.ProjectType != ProjectTypeMultiFamily {
			t.Fatalf("expected Multi-Family, got %q", e.ProjectType)
		}
		if e.Buildings != 1 || e.Units != 1 {
			t.Fatalf("expected 1 building and 1 unit, got %d and %d", e.Buildings, e.Units)
		}
		if e.BidDate != time.Now().UTC().Format(BidDateLayout) {
			t.Fatalf("expected today's bid date, got %q", e.BidDate)
		}
	})

	t.Run("collections are empty, not nil", func(t *testing.T) {
		if e.LineItems == nil || e.Allocations == nil {
			t.Fatalf("expected empty slices")
		}
		if e.Scope.Inclusions == nil || e.Scope.Exclusions == nil || e.Scope.DeliveryTerms == nil {
			t.Fatalf("expected empty scope lists")
		}
	})

	t.Run("distinct ids", func(t *testing.T) {
		if NewEstimate().ID == NewEstimate().ID {
			t.Fatalf("expected unique ids")
		}
	})
}

func TestEstimateJSONShape(t *testing.T) {
	e := NewEstimate()
	e.ProjectName = "Maple Court"
	e.LineItems = []LineItem{{ID: "li-1", Category: "Casework", Quantity: 2, UnitCost: 5, Total: 10}}
	e.Allocations = []Allocation{{ID: "a-1", LineItemID: "li-1", AllocatedTo: "Building A", Quantity: 1, Total: 5}}

	raw, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	for _, key := range []string{"projectName", "bidDate", "projectType", "lineItems", "allocations", "scope", "createdAt", "updatedAt"} {
		if _, ok := m[key]; !ok {
			t.Fatalf("expected key %q in payload: %s", key, raw)
		}
	}

	items := m["lineItems"].([]any)
	item := items[0].(map[string]any)
	if _, ok := item["unitCost"]; !ok {
		t.Fatalf("expected camelCase unitCost, got %v", item)
	}
	allocs := m["allocations"].([]any)
	alloc := allocs[0].(map[string]any)
	if _, ok := alloc["lineItemId"]; !ok {
		t.Fatalf("expected camelCase lineItemId, got %v", alloc)
	}
}

func TestValidProjectType(t *testing.T) {
	for _, v := range []ProjectType{ProjectTypeMultiFamily, ProjectTypeTownhome, ProjectTypeCommercialTI} {
		if !ValidProjectType(v) {
			t.Fatalf("expected %q valid", v)
		}
	}
	if ValidProjectType("Single-Family") {
		t.Fatalf("expected unknown type invalid")
	}
}

func TestValidEstimateStatus(t *testing.T) {
	for _, v := range []EstimateStatus{EstimateStatusDraft, EstimateStatusSent, EstimateStatusArchived} {
		if !ValidEstimateStatus(v) {
			t.Fatalf("expected %q valid", v)
		}
	}
	if ValidEstimateStatus("deleted") {
		t.Fatalf("expected unknown status invalid")
	}
}
