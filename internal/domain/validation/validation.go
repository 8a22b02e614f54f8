// Package validation computes the advisory checklist for an estimate
// snapshot. Validation never blocks a mutation; it gates "ready" status and
// drives progress reporting in the editor.
package validation

import (
	"strings"

	"evergreen_estimator/internal/domain/calculations"
	"evergreen_estimator/internal/domain/entities"
)

// ValidationError names one missing or invalid required field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate returns the required-field errors in declaration order, so UI
// checklists render deterministically. Empty result means all checks pass.
func Validate(e entities.Estimate) []ValidationError {
	errs := []ValidationError{}

	if strings.TrimSpace(e.ProjectName) == "" {
		errs = append(errs, ValidationError{Field: "projectName", Message: "Project name is required"})
	}
	if strings.TrimSpace(e.Client) == "" {
		errs = append(errs, ValidationError{Field: "client", Message: "Client is required"})
	}
	if strings.TrimSpace(e.Address) == "" {
		errs = append(errs, ValidationError{Field: "address", Message: "Address is required"})
	}
	if strings.TrimSpace(e.BidDate) == "" {
		errs = append(errs, ValidationError{Field: "bidDate", Message: "Bid date is required"})
	}
	if e.ProjectType == "" {
		errs = append(errs, ValidationError{Field: "projectType", Message: "Project type is required"})
	}
	if e.Buildings < 1 {
		errs = append(errs, ValidationError{Field: "buildings", Message: "Buildings must be at least 1"})
	}
	if e.Units < 1 {
		errs = append(errs, ValidationError{Field: "units", Message: "Units must be at least 1"})
	}

	return errs
}

// IsComplete reports whether every required field validates and the estimate
// actually prices something.
func IsComplete(e entities.Estimate) bool {
	return len(Validate(e)) == 0 &&
		len(e.LineItems) > 0 &&
		calculations.GrandTotal(e.LineItems) > 0
}

// Readiness is the derived progress report for an estimate snapshot.
// HasScopeContent is advisory only: an empty scope is flagged but does not
// hold an estimate back from being ready.
type Readiness struct {
	Errors          []ValidationError `json:"errors"`
	Complete        bool              `json:"complete"`
	HasLineItems    bool              `json:"hasLineItems"`
	HasAllocations  bool              `json:"hasAllocations"`
	HasScopeContent bool              `json:"hasScopeContent"`
	Ready           bool              `json:"ready"`
}

// Evaluate derives the full readiness report. Ready requires a complete
// estimate whose line items, if any, have at least one allocation.
func Evaluate(e entities.Estimate) Readiness {
	r := Readiness{
		Errors:         Validate(e),
		Complete:       IsComplete(e),
		HasLineItems:   len(e.LineItems) > 0,
		HasAllocations: len(e.Allocations) > 0,
		HasScopeContent: len(e.Scope.Inclusions) > 0 ||
			len(e.Scope.Exclusions) > 0 ||
			len(e.Scope.DeliveryTerms) > 0,
	}
	r.Ready = r.Complete && (r.HasAllocations || !r.HasLineItems)
	return r
}
