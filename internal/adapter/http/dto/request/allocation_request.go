package request

import (
	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/domain/mutate"
)

// AllocationRequest assigns part of a line item's quantity to a destination.
type AllocationRequest struct {
	LineItemID  string  `json:"lineItemId" binding:"required"`
	AllocatedTo string  `json:"allocatedTo" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"required,gt=0"`
}

func (r AllocationRequest) ToAllocation() entities.Allocation {
	return entities.Allocation{
		LineItemID:  r.LineItemID,
		AllocatedTo: r.AllocatedTo,
		Quantity:    r.Quantity,
	}
}

// AllocationPatchRequest updates destination and/or quantity. The referenced
// line item cannot be changed through a patch.
type AllocationPatchRequest struct {
	AllocatedTo *string  `json:"allocatedTo"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gt=0"`
}

func (r AllocationPatchRequest) ToPatch() mutate.AllocationPatch {
	return mutate.AllocationPatch{
		AllocatedTo: r.AllocatedTo,
		Quantity:    r.Quantity,
	}
}
