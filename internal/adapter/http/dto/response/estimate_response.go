package response

import (
	"time"

	"evergreen_estimator/internal/domain/calculations"
	"evergreen_estimator/internal/domain/entities"
)

type LineItemResponse struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	Total       float64 `json:"total"`
	// Unallocated is signed: loaded data can be over-allocated and the
	// editor shows that instead of clamping it away.
	Unallocated float64 `json:"unallocated"`
}

type AllocationResponse struct {
	ID          string  `json:"id"`
	LineItemID  string  `json:"lineItemId"`
	AllocatedTo string  `json:"allocatedTo"`
	Quantity    float64 `json:"quantity"`
	Total       float64 `json:"total"`
}

type ScopeResponse struct {
	Inclusions    []string `json:"inclusions"`
	Exclusions    []string `json:"exclusions"`
	DeliveryTerms []string `json:"deliveryTerms"`
	Comments      string   `json:"comments"`
}

type CategorySubtotalResponse struct {
	Category string  `json:"category"`
	Subtotal float64 `json:"subtotal"`
}

// EstimateResponse is the full snapshot plus the derived figures the editor
// renders: per-row unallocated quantity, category subtotals in first-seen
// order, and the grand and allocation totals.
type EstimateResponse struct {
	ID              string                     `json:"id"`
	ProjectName     string                     `json:"projectName"`
	Address         string                     `json:"address"`
	Client          string                     `json:"client"`
	BidDate         string                     `json:"bidDate"`
	ProjectType     string                     `json:"projectType"`
	Buildings       int                        `json:"buildings"`
	Units           int                        `json:"units"`
	LineItems       []LineItemResponse         `json:"lineItems"`
	Allocations     []AllocationResponse       `json:"allocations"`
	Scope           ScopeResponse              `json:"scope"`
	Status          string                     `json:"status"`
	Categories      []CategorySubtotalResponse `json:"categories"`
	GrandTotal      float64                    `json:"grandTotal"`
	AllocationTotal float64                    `json:"allocationTotal"`
	CreatedAt       time.Time                  `json:"createdAt"`
	UpdatedAt       time.Time                  `json:"updatedAt"`
}

func FromEstimate(e entities.Estimate) EstimateResponse {
	items := make([]LineItemResponse, 0, len(e.LineItems))
	for _, item := range e.LineItems {
		items = append(items, LineItemResponse{
			ID:          item.ID,
			Category:    item.Category,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			Total:       item.Total,
			Unallocated: calculations.UnallocatedQuantity(item.Quantity, calculations.AllocationsFor(e.Allocations, item.ID)),
		})
	}

	allocations := make([]AllocationResponse, 0, len(e.Allocations))
	for _, a := range e.Allocations {
		allocations = append(allocations, AllocationResponse{
			ID:          a.ID,
			LineItemID:  a.LineItemID,
			AllocatedTo: a.AllocatedTo,
			Quantity:    a.Quantity,
			Total:       a.Total,
		})
	}

	categories := make([]CategorySubtotalResponse, 0)
	for _, category := range calculations.Categories(e.LineItems) {
		categories = append(categories, CategorySubtotalResponse{
			Category: category,
			Subtotal: calculations.CategorySubtotal(e.LineItems, category),
		})
	}

	return EstimateResponse{
		ID:          e.ID,
		ProjectName: e.ProjectName,
		Address:     e.Address,
		Client:      e.Client,
		BidDate:     e.BidDate,
		ProjectType: string(e.ProjectType),
		Buildings:   e.Buildings,
		Units:       e.Units,
		LineItems:   items,
		Allocations: allocations,
		Scope: ScopeResponse{
			Inclusions:    e.Scope.Inclusions,
			Exclusions:    e.Scope.Exclusions,
			DeliveryTerms: e.Scope.DeliveryTerms,
			Comments:      e.Scope.Comments,
		},
		Status:          string(e.Status),
		Categories:      categories,
		GrandTotal:      calculations.GrandTotal(e.LineItems),
		AllocationTotal: calculations.AllocationTotal(e.Allocations),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func FromEstimates(list []entities.Estimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(list))
	for _, e := range list {
		out = append(out, FromEstimate(e))
	}
	return out
}
