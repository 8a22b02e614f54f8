package mutate

import (
	"errors"
	"testing"
	"time"

	"evergreen_estimator/internal/domain/entities"
)

func baseEstimate() entities.Estimate {
	e := entities.NewEstimate()
	e.ID = "est-1"
	e.UpdatedAt = time.Now().UTC().Add(-time.Hour)
	return e
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func intPtr(i int) *int         { return &i }

func TestAddLineItem(t *testing.T) {
	t.Run("recomputes total and ignores the supplied one", func(t *testing.T) {
		e := baseEstimate()
		next, err := AddLineItem(e, entities.LineItem{
			ID: "li-1", Category: "Casework", Quantity: 10, UnitCost: 5, Total: 999,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(next.LineItems) != 1 {
			t.Fatalf("expected 1 item, got %d", len(next.LineItems))
		}
		if next.LineItems[0].Total != 50 {
			t.Fatalf("expected derived total 50, got %g", next.LineItems[0].Total)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1"})
		_, err := AddLineItem(e, entities.LineItem{ID: "li-1"})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
	})

	t.Run("touches updatedAt", func(t *testing.T) {
		e := baseEstimate()
		before := e.UpdatedAt
		next, err := AddLineItem(e, entities.LineItem{ID: "li-1"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !next.UpdatedAt.After(before) {
			t.Fatalf("expected updatedAt to advance past %v, got %v", before, next.UpdatedAt)
		}
	})

	t.Run("does not mutate the input snapshot", func(t *testing.T) {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1", Quantity: 1, UnitCost: 1})
		snapshot := e

		if _, err := AddLineItem(e, entities.LineItem{ID: "li-2"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(snapshot.LineItems) != 1 {
			t.Fatalf("input snapshot changed: %d items", len(snapshot.LineItems))
		}
	})
}

func TestAddLineItems(t *testing.T) {
	t.Run("batch lands atomically", func(t *testing.T) {
		e := baseEstimate()
		next, err := AddLineItems(e, []entities.LineItem{
			{ID: "li-1", Quantity: 2, UnitCost: 3},
			{ID: "li-2", Quantity: 4, UnitCost: 5},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(next.LineItems) != 2 {
			t.Fatalf("expected 2 items, got %d", len(next.LineItems))
		}
		if next.LineItems[0].Total != 6 || next.LineItems[1].Total != 20 {
			t.Fatalf("expected totals 6 and 20, got %g and %g",
				next.LineItems[0].Total, next.LineItems[1].Total)
		}
	})

	t.Run("duplicate inside the batch rejects the whole batch", func(t *testing.T) {
		e := baseEstimate()
		next, err := AddLineItems(e, []entities.LineItem{
			{ID: "li-1"},
			{ID: "li-1"},
		})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
		if len(next.LineItems) != 0 {
			t.Fatalf("expected untouched snapshot, got %d items", len(next.LineItems))
		}
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		e := baseEstimate()
		before := e.UpdatedAt
		next, err := AddLineItems(e, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !next.UpdatedAt.Equal(before) {
			t.Fatalf("expected updatedAt unchanged")
		}
	})
}

func TestUpdateLineItem(t *testing.T) {
	seeded := func() entities.Estimate {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1", Category: "Casework", Quantity: 10, UnitCost: 5})
		return e
	}

	t.Run("not found", func(t *testing.T) {
		_, err := UpdateLineItem(seeded(), "missing", LineItemPatch{}, PermitOverAllocation)
		if !errors.Is(err, ErrLineItemNotFound) {
			t.Fatalf("expected ErrLineItemNotFound, got %v", err)
		}
	})

	t.Run("partial patch recomputes total", func(t *testing.T) {
		next, err := UpdateLineItem(seeded(), "li-1", LineItemPatch{Quantity: f64Ptr(3)}, PermitOverAllocation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		item := next.LineItems[0]
		if item.Quantity != 3 || item.UnitCost != 5 || item.Total != 15 {
			t.Fatalf("expected 3 x 5 = 15, got %g x %g = %g", item.Quantity, item.UnitCost, item.Total)
		}
	})

	t.Run("nil fields stay untouched", func(t *testing.T) {
		next, err := UpdateLineItem(seeded(), "li-1", LineItemPatch{Description: strPtr("base cabinets")}, PermitOverAllocation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		item := next.LineItems[0]
		if item.Category != "Casework" || item.Quantity != 10 {
			t.Fatalf("untouched fields changed: %+v", item)
		}
	})

	t.Run("permit policy lets quantity shrink below allocated", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "Building A", Quantity: 8})

		next, err := UpdateLineItem(e, "li-1", LineItemPatch{Quantity: f64Ptr(5)}, PermitOverAllocation)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.LineItems[0].Quantity != 5 {
			t.Fatalf("expected quantity 5, got %g", next.LineItems[0].Quantity)
		}
		if len(next.Allocations) != 1 {
			t.Fatalf("expected allocation preserved, got %d", len(next.Allocations))
		}
	})

	t.Run("reject policy blocks quantity shrink below allocated", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "Building A", Quantity: 8})

		_, err := UpdateLineItem(e, "li-1", LineItemPatch{Quantity: f64Ptr(5)}, RejectOverAllocation)
		if !errors.Is(err, ErrOverAllocation) {
			t.Fatalf("expected ErrOverAllocation, got %v", err)
		}
		var oa *OverAllocationError
		if !errors.As(err, &oa) {
			t.Fatalf("expected OverAllocationError, got %T", err)
		}
		if oa.Headroom != 8 {
			t.Fatalf("expected allocated sum 8 reported, got %g", oa.Headroom)
		}
	})
}

func TestDeleteLineItem(t *testing.T) {
	t.Run("cascades to allocations", func(t *testing.T) {
		e := baseEstimate()
		e, _ = AddLineItems(e, []entities.LineItem{
			{ID: "li-1", Quantity: 10, UnitCost: 5},
			{ID: "li-2", Quantity: 10, UnitCost: 5},
		})
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "A", Quantity: 2})
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-2", LineItemID: "li-2", AllocatedTo: "A", Quantity: 2})

		next := DeleteLineItem(e, "li-1")
		if len(next.LineItems) != 1 || next.LineItems[0].ID != "li-2" {
			t.Fatalf("expected only li-2 left, got %+v", next.LineItems)
		}
		if len(next.Allocations) != 1 || next.Allocations[0].ID != "a-2" {
			t.Fatalf("expected only a-2 left, got %+v", next.Allocations)
		}
	})

	t.Run("unknown id is idempotent", func(t *testing.T) {
		e := baseEstimate()
		before := e.UpdatedAt
		next := DeleteLineItem(e, "missing")
		if !next.UpdatedAt.Equal(before) {
			t.Fatalf("expected untouched updatedAt on no-op delete")
		}
	})
}

func TestAddAllocation(t *testing.T) {
	seeded := func() entities.Estimate {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1", Quantity: 10, UnitCost: 5})
		return e
	}

	t.Run("unknown line item", func(t *testing.T) {
		_, err := AddAllocation(seeded(), entities.Allocation{ID: "a-1", LineItemID: "missing", Quantity: 1})
		if !errors.Is(err, ErrLineItemNotFound) {
			t.Fatalf("expected ErrLineItemNotFound, got %v", err)
		}
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := AddAllocation(seeded(), entities.Allocation{ID: "a-1", LineItemID: "li-1", Quantity: 0})
		if !errors.Is(err, ErrNonPositiveQuantity) {
			t.Fatalf("expected ErrNonPositiveQuantity, got %v", err)
		}
	})

	t.Run("total derives from the item's unit cost", func(t *testing.T) {
		next, err := AddAllocation(seeded(), entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "Building A", Quantity: 4, Total: 999})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Allocations[0].Total != 20 {
			t.Fatalf("expected derived total 20, got %g", next.Allocations[0].Total)
		}
	})

	t.Run("over headroom rejected with remaining quantity", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "A", Quantity: 4})

		_, err := AddAllocation(e, entities.Allocation{ID: "a-2", LineItemID: "li-1", AllocatedTo: "B", Quantity: 7})
		var oa *OverAllocationError
		if !errors.As(err, &oa) {
			t.Fatalf("expected OverAllocationError, got %v", err)
		}
		if oa.Requested != 7 || oa.Headroom != 6 {
			t.Fatalf("expected requested 7 headroom 6, got %g and %g", oa.Requested, oa.Headroom)
		}
	})

	t.Run("exact headroom allowed", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "A", Quantity: 4})

		next, err := AddAllocation(e, entities.Allocation{ID: "a-2", LineItemID: "li-1", AllocatedTo: "B", Quantity: 6})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(next.Allocations) != 2 {
			t.Fatalf("expected 2 allocations, got %d", len(next.Allocations))
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "A", Quantity: 1})
		_, err := AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "B", Quantity: 1})
		if !errors.Is(err, ErrDuplicateID) {
			t.Fatalf("expected ErrDuplicateID, got %v", err)
		}
	})
}

func TestUpdateAllocation(t *testing.T) {
	seeded := func() entities.Estimate {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1", Quantity: 10, UnitCost: 5})
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "Building A", Quantity: 4})
		return e
	}

	t.Run("not found", func(t *testing.T) {
		_, err := UpdateAllocation(seeded(), "missing", AllocationPatch{})
		if !errors.Is(err, ErrAllocationNotFound) {
			t.Fatalf("expected ErrAllocationNotFound, got %v", err)
		}
	})

	t.Run("own quantity given back for the headroom check", func(t *testing.T) {
		// 6 unallocated plus its own 4 means 10 is exactly reachable.
		next, err := UpdateAllocation(seeded(), "a-1", AllocationPatch{Quantity: f64Ptr(10)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if next.Allocations[0].Quantity != 10 || next.Allocations[0].Total != 50 {
			t.Fatalf("expected 10 at total 50, got %g at %g",
				next.Allocations[0].Quantity, next.Allocations[0].Total)
		}
	})

	t.Run("beyond own plus remaining rejected", func(t *testing.T) {
		_, err := UpdateAllocation(seeded(), "a-1", AllocationPatch{Quantity: f64Ptr(11)})
		var oa *OverAllocationError
		if !errors.As(err, &oa) {
			t.Fatalf("expected OverAllocationError, got %v", err)
		}
		if oa.Headroom != 10 {
			t.Fatalf("expected headroom 10, got %g", oa.Headroom)
		}
	})

	t.Run("other allocations shrink the headroom", func(t *testing.T) {
		e := seeded()
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-2", LineItemID: "li-1", AllocatedTo: "B", Quantity: 3})

		_, err := UpdateAllocation(e, "a-1", AllocationPatch{Quantity: f64Ptr(8)})
		var oa *OverAllocationError
		if !errors.As(err, &oa) {
			t.Fatalf("expected OverAllocationError, got %v", err)
		}
		if oa.Headroom != 7 {
			t.Fatalf("expected headroom 7, got %g", oa.Headroom)
		}
	})

	t.Run("destination rename keeps quantity", func(t *testing.T) {
		next, err := UpdateAllocation(seeded(), "a-1", AllocationPatch{AllocatedTo: strPtr("Building B")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		a := next.Allocations[0]
		if a.AllocatedTo != "Building B" || a.Quantity != 4 {
			t.Fatalf("unexpected allocation %+v", a)
		}
	})

	t.Run("non positive quantity", func(t *testing.T) {
		_, err := UpdateAllocation(seeded(), "a-1", AllocationPatch{Quantity: f64Ptr(-1)})
		if !errors.Is(err, ErrNonPositiveQuantity) {
			t.Fatalf("expected ErrNonPositiveQuantity, got %v", err)
		}
	})
}

func TestDeleteAllocation(t *testing.T) {
	t.Run("removes only the target", func(t *testing.T) {
		e := baseEstimate()
		e, _ = AddLineItem(e, entities.LineItem{ID: "li-1", Quantity: 10, UnitCost: 5})
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-1", LineItemID: "li-1", AllocatedTo: "A", Quantity: 2})
		e, _ = AddAllocation(e, entities.Allocation{ID: "a-2", LineItemID: "li-1", AllocatedTo: "B", Quantity: 2})

		next := DeleteAllocation(e, "a-1")
		if len(next.Allocations) != 1 || next.Allocations[0].ID != "a-2" {
			t.Fatalf("expected only a-2 left, got %+v", next.Allocations)
		}
	})

	t.Run("unknown id is idempotent", func(t *testing.T) {
		e := baseEstimate()
		before := e.UpdatedAt
		next := DeleteAllocation(e, "missing")
		if !next.UpdatedAt.Equal(before) {
			t.Fatalf("expected untouched updatedAt on no-op delete")
		}
	})
}

func TestUpdateScope(t *testing.T) {
	t.Run("nil list leaves section alone, non-nil replaces", func(t *testing.T) {
		e := baseEstimate()
		e = UpdateScope(e, ScopePatch{Inclusions: []string{"base cabinets"}, Exclusions: []string{"appliances"}})

		next := UpdateScope(e, ScopePatch{Exclusions: []string{}})
		if len(next.Scope.Inclusions) != 1 {
			t.Fatalf("expected inclusions untouched, got %v", next.Scope.Inclusions)
		}
		if len(next.Scope.Exclusions) != 0 {
			t.Fatalf("expected exclusions cleared, got %v", next.Scope.Exclusions)
		}
	})

	t.Run("comments", func(t *testing.T) {
		next := UpdateScope(baseEstimate(), ScopePatch{Comments: strPtr("lead time 8 weeks")})
		if next.Scope.Comments != "lead time 8 weeks" {
			t.Fatalf("expected comment set, got %q", next.Scope.Comments)
		}
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		e := baseEstimate()
		before := e.UpdatedAt
		next := UpdateScope(e, ScopePatch{})
		if !next.UpdatedAt.Equal(before) {
			t.Fatalf("expected untouched updatedAt")
		}
	})
}

func TestUpdateDetails(t *testing.T) {
	t.Run("merges set fields only", func(t *testing.T) {
		e := baseEstimate()
		e.ProjectName = "Original"
		pt := entities.ProjectTypeCommercialTI

		next := UpdateDetails(e, DetailsPatch{Client: strPtr("Acme Builders"), ProjectType: &pt, Units: intPtr(24)})
		if next.ProjectName != "Original" {
			t.Fatalf("expected projectName untouched, got %q", next.ProjectName)
		}
		if next.Client != "Acme Builders" || next.ProjectType != entities.ProjectTypeCommercialTI || next.Units != 24 {
			t.Fatalf("unexpected merge result %+v", next)
		}
	})

	t.Run("status transition", func(t *testing.T) {
		st := entities.EstimateStatusSent
		next := UpdateDetails(baseEstimate(), DetailsPatch{Status: &st})
		if next.Status != entities.EstimateStatusSent {
			t.Fatalf("expected status sent, got %q", next.Status)
		}
	})
}

func TestParseShrinkPolicy(t *testing.T) {
	t.Run("default is permit", func(t *testing.T) {
		p, err := ParseShrinkPolicy("")
		if err != nil || p != PermitOverAllocation {
			t.Fatalf("expected permit, got %v (%v)", p, err)
		}
	})

	t.Run("reject", func(t *testing.T) {
		p, err := ParseShrinkPolicy("REJECT")
		if err != nil || p != RejectOverAllocation {
			t.Fatalf("expected reject, got %v (%v)", p, err)
		}
	})

	t.Run("unknown value", func(t *testing.T) {
		if _, err := ParseShrinkPolicy("sometimes"); err == nil {
			t.Fatalf("expected error for unknown policy")
		}
	})
}
