package request

import "evergreen_estimator/internal/domain/mutate"

// ScopeRequest replaces scope sections wholesale. A field absent from the
// JSON leaves its list untouched; an explicit empty array clears it. Append
// semantics are a client convenience built on read-modify-write.
type ScopeRequest struct {
	Inclusions    []string `json:"inclusions"`
	Exclusions    []string `json:"exclusions"`
	DeliveryTerms []string `json:"deliveryTerms"`
	Comments      *string  `json:"comments"`
}

func (r ScopeRequest) ToPatch() mutate.ScopePatch {
	return mutate.ScopePatch{
		Inclusions:    r.Inclusions,
		Exclusions:    r.Exclusions,
		DeliveryTerms: r.DeliveryTerms,
		Comments:      r.Comments,
	}
}
