package request

import (
	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/domain/mutate"
)

// LineItemRequest creates one priced row. Any caller-supplied total is
// deliberately not bindable; totals are derived server-side.
type LineItemRequest struct {
	Category    string  `json:"category"`
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity" binding:"gte=0"`
	UnitCost    float64 `json:"unitCost" binding:"gte=0"`
}

func (r LineItemRequest) ToLineItem() entities.LineItem {
	return entities.LineItem{
		Category:    r.Category,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
	}
}

// LineItemPatchRequest is the partial-update form; nil fields stay as-is.
type LineItemPatchRequest struct {
	Category    *string  `json:"category"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity" binding:"omitempty,gte=0"`
	UnitCost    *float64 `json:"unitCost" binding:"omitempty,gte=0"`
}

func (r LineItemPatchRequest) ToPatch() mutate.LineItemPatch {
	return mutate.LineItemPatch{
		Category:    r.Category,
		Description: r.Description,
		Quantity:    r.Quantity,
		UnitCost:    r.UnitCost,
	}
}
