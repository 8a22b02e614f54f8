// Package calculations holds the derivation engine: stateless, deterministic
// functions over estimate snapshots. Nothing here mutates its input.
package calculations

import "evergreen_estimator/internal/domain/entities"

// LineItemTotal derives the price of one row.
func LineItemTotal(item entities.LineItem) float64 {
	return item.Quantity * item.UnitCost
}

// GrandTotal sums the totals of all line items.
func GrandTotal(items []entities.LineItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Total
	}
	return sum
}

// CategorySubtotal sums the totals of the items whose category equals
// category. An empty category is a group of its own, not a default bucket.
func CategorySubtotal(items []entities.LineItem, category string) float64 {
	sum := 0.0
	for _, item := range items {
		if item.Category == category {
			sum += item.Total
		}
	}
	return sum
}

// Categories lists the distinct categories in first-seen order.
func Categories(items []entities.LineItem) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		out = append(out, item.Category)
	}
	return out
}

// AllocationTotal sums the totals of the given allocations.
func AllocationTotal(allocations []entities.Allocation) float64 {
	sum := 0.0
	for _, a := range allocations {
		sum += a.Total
	}
	return sum
}

// AllocationsFor filters allocations down to those referencing lineItemID.
func AllocationsFor(allocations []entities.Allocation, lineItemID string) []entities.Allocation {
	out := make([]entities.Allocation, 0, len(allocations))
	for _, a := range allocations {
		if a.LineItemID == lineItemID {
			out = append(out, a)
		}
	}
	return out
}

// UnallocatedQuantity is the line item quantity minus everything its
// allocations have claimed. The result is signed on purpose: externally
// loaded data can be over-allocated, and callers need to see that rather
// than a silently clamped zero.
func UnallocatedQuantity(lineItemQuantity float64, allocations []entities.Allocation) float64 {
	allocated := 0.0
	for _, a := range allocations {
		allocated += a.Quantity
	}
	return lineItemQuantity - allocated
}
