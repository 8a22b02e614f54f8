package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrLineItemNotFound    = errors.New("line item not found")
	ErrAllocationNotFound  = errors.New("allocation not found")
	ErrDuplicateID         = errors.New("duplicate id")
	ErrNonPositiveQuantity = errors.New("allocation quantity must be positive")
	ErrOverAllocation      = errors.New("allocation exceeds unallocated quantity")
)

// OverAllocationError reports how much headroom a rejected allocation had
// left, so callers can surface the allowed quantity in their message.
// It unwraps to ErrOverAllocation for errors.Is checks.
type OverAllocationError struct {
	LineItemID string
	Requested  float64
	Headroom   float64
}

func (e *OverAllocationError) Error() string {
	return fmt.Sprintf("allocation of %g exceeds unallocated quantity %g for line item %s",
		e.Requested, e.Headroom, e.LineItemID)
}

func (e *OverAllocationError) Unwrap() error { return ErrOverAllocation }
