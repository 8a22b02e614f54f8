// Package mutate is the single write path for estimate snapshots. Every
// operation takes the current snapshot by value and returns a new one;
// collections are cloned before modification so earlier-captured snapshots
// stay valid and unchanged. On error the caller's snapshot stands as-is.
package mutate

import (
	"fmt"
	"strings"
	"time"

	"evergreen_estimator/internal/domain/calculations"
	"evergreen_estimator/internal/domain/entities"
)

// ShrinkPolicy decides what happens when a line item's quantity is edited
// below what its allocations already claim. The permissive default keeps the
// original editor behavior: the edit goes through and the negative headroom
// is surfaced as data instead of discarding allocations behind the user's
// back.
type ShrinkPolicy int

const (
	PermitOverAllocation ShrinkPolicy = iota
	RejectOverAllocation
)

// ParseShrinkPolicy maps a config value ("permit" or "reject") to a policy.
func ParseShrinkPolicy(v string) (ShrinkPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "permit":
		return PermitOverAllocation, nil
	case "reject":
		return RejectOverAllocation, nil
	}
	return PermitOverAllocation, fmt.Errorf("unknown shrink policy %q", v)
}

// LineItemPatch carries the fields of a partial line item update. Nil fields
// are left untouched. Total is absent on purpose; it is always recomputed.
type LineItemPatch struct {
	Category    *string
	Description *string
	Quantity    *float64
	UnitCost    *float64
}

// AllocationPatch carries the fields of a partial allocation update. The
// referenced line item cannot be retargeted; delete and re-add instead.
type AllocationPatch struct {
	AllocatedTo *string
	Quantity    *float64
}

// ScopePatch shallow-merges into the scope. A nil list leaves the current
// list alone; a non-nil list (including an empty one) replaces it wholesale.
// Append semantics belong to the caller, not this layer.
type ScopePatch struct {
	Inclusions    []string
	Exclusions    []string
	DeliveryTerms []string
	Comments      *string
}

// DetailsPatch carries the top-level scalar fields of the estimate.
type DetailsPatch struct {
	ProjectName *string
	Client      *string
	Address     *string
	BidDate     *string
	ProjectType *entities.ProjectType
	Buildings   *int
	Units       *int
	Status      *entities.EstimateStatus
}

// Empty reports whether the patch changes nothing.
func (p DetailsPatch) Empty() bool {
	return p.ProjectName == nil && p.Client == nil && p.Address == nil &&
		p.BidDate == nil && p.ProjectType == nil && p.Buildings == nil &&
		p.Units == nil && p.Status == nil
}

// Empty reports whether the patch changes nothing.
func (p ScopePatch) Empty() bool {
	return p.Inclusions == nil && p.Exclusions == nil && p.DeliveryTerms == nil && p.Comments == nil
}

// AddLineItem appends item with its total recomputed, ignoring any
// caller-supplied total. The id must not collide with an existing row.
func AddLineItem(e entities.Estimate, item entities.LineItem) (entities.Estimate, error) {
	return AddLineItems(e, []entities.LineItem{item})
}

// AddLineItems appends a batch of items in one snapshot replacement, so a
// multi-item merge (e.g. a parsed voice clip) lands atomically.
func AddLineItems(e entities.Estimate, items []entities.LineItem) (entities.Estimate, error) {
	if len(items) == 0 {
		return e, nil
	}
	existing := make(map[string]struct{}, len(e.LineItems)+len(items))
	for _, it := range e.LineItems {
		existing[it.ID] = struct{}{}
	}

	next := cloneLineItems(e.LineItems, len(items))
	for _, item := range items {
		if _, ok := existing[item.ID]; ok {
			return e, fmt.Errorf("%w: line item %s", ErrDuplicateID, item.ID)
		}
		existing[item.ID] = struct{}{}
		item.Total = calculations.LineItemTotal(item)
		next = append(next, item)
	}
	e.LineItems = next
	return touch(e), nil
}

// UpdateLineItem merges patch into the identified row and recomputes its
// total. Shrinking the quantity below the allocated sum is governed by
// policy: permitted (negative headroom becomes visible via the derivation
// engine) or rejected with the allocated sum as headroom.
func UpdateLineItem(e entities.Estimate, id string, patch LineItemPatch, policy ShrinkPolicy) (entities.Estimate, error) {
	idx := lineItemIndex(e.LineItems, id)
	if idx < 0 {
		return e, fmt.Errorf("%w: %s", ErrLineItemNotFound, id)
	}

	item := e.LineItems[idx]
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.UnitCost != nil {
		item.UnitCost = *patch.UnitCost
	}
	item.Total = calculations.LineItemTotal(item)

	if policy == RejectOverAllocation && patch.Quantity != nil {
		if calculations.UnallocatedQuantity(item.Quantity, calculations.AllocationsFor(e.Allocations, id)) < 0 {
			allocated := 0.0
			for _, a := range calculations.AllocationsFor(e.Allocations, id) {
				allocated += a.Quantity
			}
			return e, &OverAllocationError{LineItemID: id, Requested: item.Quantity, Headroom: allocated}
		}
	}

	next := cloneLineItems(e.LineItems, 0)
	next[idx] = item
	e.LineItems = next
	return touch(e), nil
}

// DeleteLineItem removes the row and cascades to every allocation that
// references it. Deleting an unknown id is an idempotent no-op.
func DeleteLineItem(e entities.Estimate, id string) entities.Estimate {
	if lineItemIndex(e.LineItems, id) < 0 {
		return e
	}

	items := make([]entities.LineItem, 0, len(e.LineItems))
	for _, it := range e.LineItems {
		if it.ID != id {
			items = append(items, it)
		}
	}
	allocations := make([]entities.Allocation, 0, len(e.Allocations))
	for _, a := range e.Allocations {
		if a.LineItemID != id {
			allocations = append(allocations, a)
		}
	}
	e.LineItems = items
	e.Allocations = allocations
	return touch(e)
}

// AddAllocation appends a, deriving its total from the referenced line
// item's current unit cost. The quantity must fit in the item's remaining
// headroom.
func AddAllocation(e entities.Estimate, a entities.Allocation) (entities.Estimate, error) {
	idx := lineItemIndex(e.LineItems, a.LineItemID)
	if idx < 0 {
		return e, fmt.Errorf("%w: %s", ErrLineItemNotFound, a.LineItemID)
	}
	for _, existing := range e.Allocations {
		if existing.ID == a.ID {
			return e, fmt.Errorf("%w: allocation %s", ErrDuplicateID, a.ID)
		}
	}
	if a.Quantity <= 0 {
		return e, ErrNonPositiveQuantity
	}

	item := e.LineItems[idx]
	headroom := calculations.UnallocatedQuantity(item.Quantity, calculations.AllocationsFor(e.Allocations, item.ID))
	if a.Quantity > headroom {
		return e, &OverAllocationError{LineItemID: item.ID, Requested: a.Quantity, Headroom: headroom}
	}

	a.Total = a.Quantity * item.UnitCost
	e.Allocations = append(cloneAllocations(e.Allocations, 1), a)
	return touch(e), nil
}

// UpdateAllocation merges patch into the identified allocation and
// recomputes its total. The headroom check gives this allocation its own
// current quantity back: the new quantity may claim everything the other
// allocations of the same line item have left over.
func UpdateAllocation(e entities.Estimate, id string, patch AllocationPatch) (entities.Estimate, error) {
	idx := -1
	for i, a := range e.Allocations {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return e, fmt.Errorf("%w: %s", ErrAllocationNotFound, id)
	}

	alloc := e.Allocations[idx]
	itemIdx := lineItemIndex(e.LineItems, alloc.LineItemID)
	if itemIdx < 0 {
		return e, fmt.Errorf("%w: %s", ErrLineItemNotFound, alloc.LineItemID)
	}
	item := e.LineItems[itemIdx]

	if patch.AllocatedTo != nil {
		alloc.AllocatedTo = *patch.AllocatedTo
	}
	if patch.Quantity != nil {
		if *patch.Quantity <= 0 {
			return e, ErrNonPositiveQuantity
		}
		others := 0.0
		for _, a := range e.Allocations {
			if a.LineItemID == item.ID && a.ID != id {
				others += a.Quantity
			}
		}
		headroom := item.Quantity - others
		if *patch.Quantity > headroom {
			return e, &OverAllocationError{LineItemID: item.ID, Requested: *patch.Quantity, Headroom: headroom}
		}
		alloc.Quantity = *patch.Quantity
	}
	alloc.Total = alloc.Quantity * item.UnitCost

	next := cloneAllocations(e.Allocations, 0)
	next[idx] = alloc
	e.Allocations = next
	return touch(e), nil
}

// DeleteAllocation removes the allocation; unknown ids are a no-op.
func DeleteAllocation(e entities.Estimate, id string) entities.Estimate {
	found := false
	next := make([]entities.Allocation, 0, len(e.Allocations))
	for _, a := range e.Allocations {
		if a.ID == id {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		return e
	}
	e.Allocations = next
	return touch(e)
}

// UpdateScope shallow-merges patch into the scope sections.
func UpdateScope(e entities.Estimate, patch ScopePatch) entities.Estimate {
	if patch.Empty() {
		return e
	}
	scope := e.Scope
	if patch.Inclusions != nil {
		scope.Inclusions = append([]string{}, patch.Inclusions...)
	}
	if patch.Exclusions != nil {
		scope.Exclusions = append([]string{}, patch.Exclusions...)
	}
	if patch.DeliveryTerms != nil {
		scope.DeliveryTerms = append([]string{}, patch.DeliveryTerms...)
	}
	if patch.Comments != nil {
		scope.Comments = *patch.Comments
	}
	e.Scope = scope
	return touch(e)
}

// UpdateDetails merges the top-level scalar fields.
func UpdateDetails(e entities.Estimate, patch DetailsPatch) entities.Estimate {
	if patch.Empty() {
		return e
	}
	if patch.ProjectName != nil {
		e.ProjectName = *patch.ProjectName
	}
	if patch.Client != nil {
		e.Client = *patch.Client
	}
	if patch.Address != nil {
		e.Address = *patch.Address
	}
	if patch.BidDate != nil {
		e.BidDate = *patch.BidDate
	}
	if patch.ProjectType != nil {
		e.ProjectType = *patch.ProjectType
	}
	if patch.Buildings != nil {
		e.Buildings = *patch.Buildings
	}
	if patch.Units != nil {
		e.Units = *patch.Units
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	return touch(e)
}

func touch(e entities.Estimate) entities.Estimate {
	e.UpdatedAt = time.Now().UTC()
	return e
}

func lineItemIndex(items []entities.LineItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func cloneLineItems(items []entities.LineItem, extra int) []entities.LineItem {
	out := make([]entities.LineItem, len(items), len(items)+extra)
	copy(out, items)
	return out
}

func cloneAllocations(allocations []entities.Allocation, extra int) []entities.Allocation {
	out := make([]entities.Allocation, len(allocations), len(allocations)+extra)
	copy(out, allocations)
	return out
}
