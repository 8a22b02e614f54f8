package entities

import (
	"time"

	"github.com/google/uuid"
)

// EstimateStatus represents the lifecycle of an estimate.
//
// Domain notes:
//   - Estimates start as drafts and stay editable in any status.
//   - Status is plain data; no transition rules are enforced by the model.
type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "draft"
	EstimateStatusSent     EstimateStatus = "sent"
	EstimateStatusArchived EstimateStatus = "archived"
)

// ProjectType classifies the construction project being bid.
type ProjectType string

const (
	ProjectTypeMultiFamily  ProjectType = "Multi-Family"
	ProjectTypeTownhome     ProjectType = "Townhome"
	ProjectTypeCommercialTI ProjectType = "Commercial TI"
)

// LineItem is one priced row of the estimate.
//
// Total is derived: it always equals Quantity * UnitCost after any mutation
// and is never independently settable. Callers supplying a Total have it
// overwritten by the mutation layer.
type LineItem struct {
	ID          string  `json:"id" dynamodbav:"id"`
	Category    string  `json:"category" dynamodbav:"category"`
	Description string  `json:"description" dynamodbav:"description"`
	Quantity    float64 `json:"quantity" dynamodbav:"quantity"`
	UnitCost    float64 `json:"unitCost" dynamodbav:"unitCost"`
	Total       float64 `json:"total" dynamodbav:"total"`
}

// Allocation assigns a portion of a line item's quantity to a named
// destination such as "Building 1" or "Common Areas".
//
// Total is derived from Quantity and the referenced line item's unit cost at
// allocation time. The sum of Quantity over a line item's allocations must
// not exceed the line item's own quantity; the mutation layer enforces this,
// pure queries report the signed remainder as-is.
type Allocation struct {
	ID          string  `json:"id" dynamodbav:"id"`
	LineItemID  string  `json:"lineItemId" dynamodbav:"lineItemId"`
	AllocatedTo string  `json:"allocatedTo" dynamodbav:"allocatedTo"`
	Quantity    float64 `json:"quantity" dynamodbav:"quantity"`
	Total       float64 `json:"total" dynamodbav:"total"`
}

// ScopeDetails holds the narrative sections of the estimate. Each list is an
// independently ordered sequence; there are no cross-field invariants.
type ScopeDetails struct {
	Inclusions    []string `json:"inclusions" dynamodbav:"inclusions"`
	Exclusions    []string `json:"exclusions" dynamodbav:"exclusions"`
	DeliveryTerms []string `json:"deliveryTerms" dynamodbav:"deliveryTerms"`
	Comments      string   `json:"comments" dynamodbav:"comments"`
}

// Estimate is the aggregate root: project metadata, the itemized costs, their
// allocations to buildings/units/areas, and the scope text.
//
// Every save persists a complete snapshot; the aggregate is never partially
// written. All field changes go through the mutation layer, which refreshes
// UpdatedAt on every successful operation.
type Estimate struct {
	ID          string         `json:"id" dynamodbav:"id"`
	ProjectName string         `json:"projectName" dynamodbav:"projectName"`
	Address     string         `json:"address" dynamodbav:"address"`
	Client      string         `json:"client" dynamodbav:"client"`
	BidDate     string         `json:"bidDate" dynamodbav:"bidDate"`
	ProjectType ProjectType    `json:"projectType" dynamodbav:"projectType"`
	Buildings   int            `json:"buildings" dynamodbav:"buildings"`
	Units       int            `json:"units" dynamodbav:"units"`
	LineItems   []LineItem     `json:"lineItems" dynamodbav:"lineItems"`
	Allocations []Allocation   `json:"allocations" dynamodbav:"allocations"`
	Scope       ScopeDetails   `json:"scope" dynamodbav:"scope"`
	Status      EstimateStatus `json:"status" dynamodbav:"status"`
	CreatedAt   time.Time      `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt" dynamodbav:"updatedAt"`
}

// BidDateLayout is the calendar-date form used for Estimate.BidDate.
const BidDateLayout = "2006-01-02"

// NewEstimate returns a fresh draft with today's bid date and single-building,
// single-unit defaults. No validation happens here; an estimate may exist in
// an incomplete state and validation is a separate advisory concern.
func NewEstimate() Estimate {
	now := time.Now().UTC()
	return Estimate{
		ID:          uuid.NewString(),
		BidDate:     now.Format(BidDateLayout),
		ProjectType: ProjectTypeMultiFamily,
		Buildings:   1,
		Units:       1,
		LineItems:   []LineItem{},
		Allocations: []Allocation{},
		Scope: ScopeDetails{
			Inclusions:    []string{},
			Exclusions:    []string{},
			DeliveryTerms: []string{},
		},
		Status:    EstimateStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ValidProjectType reports whether v is one of the known project types.
func ValidProjectType(v ProjectType) bool {
	switch v {
	case ProjectTypeMultiFamily, ProjectTypeTownhome, ProjectTypeCommercialTI:
		return true
	}
	return false
}

// ValidEstimateStatus reports whether v is one of the known statuses.
func ValidEstimateStatus(v EstimateStatus) bool {
	switch v {
	case EstimateStatusDraft, EstimateStatusSent, EstimateStatusArchived:
		return true
	}
	return false
}
