package response

import (
	"evergreen_estimator/internal/usecase"
)

type VoiceItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	Confidence  float64 `json:"confidence"`
	NeedsReview bool    `json:"needsReview"`
}

// VoiceMergeResponse reports what one voice clip did to the estimate.
// Confidence and needsReview ride along for display; they were not enforced
// during the merge.
type VoiceMergeResponse struct {
	Transcript     string              `json:"transcript"`
	Type           string              `json:"type"`
	ItemsAdded     int                 `json:"itemsAdded"`
	DetailsUpdated bool                `json:"detailsUpdated"`
	ScopeUpdated   bool                `json:"scopeUpdated"`
	Items          []VoiceItemResponse `json:"items"`
	Estimate       EstimateResponse    `json:"estimate"`
}

func FromVoiceOutcome(o usecase.VoiceMergeOutcome) VoiceMergeResponse {
	items := make([]VoiceItemResponse, 0, len(o.Result.Items))
	for _, item := range o.Result.Items {
		items = append(items, VoiceItemResponse{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitCost:    item.UnitCost,
			Confidence:  item.Confidence,
			NeedsReview: item.NeedsReview,
		})
	}
	return VoiceMergeResponse{
		Transcript:     o.Transcript,
		Type:           string(o.Result.Type),
		ItemsAdded:     o.ItemsAdded,
		DetailsUpdated: o.DetailsUpdated,
		ScopeUpdated:   o.ScopeUpdated,
		Items:          items,
		Estimate:       FromEstimate(o.Estimate),
	}
}
