package entities

// VoiceResultType tags which kind of fragment a voice parse produced.
type VoiceResultType string

const (
	VoiceResultLineItems      VoiceResultType = "lineItems"
	VoiceResultProjectDetails VoiceResultType = "projectDetails"
	VoiceResultScope          VoiceResultType = "scope"
	VoiceResultMixed          VoiceResultType = "mixed"
)

// VoiceParsedItem is a candidate line item extracted from a voice clip.
// Confidence and NeedsReview are carried for display only; they never block
// insertion.
type VoiceParsedItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitCost    float64 `json:"unitCost"`
	Confidence  float64 `json:"confidence"`
	NeedsReview bool    `json:"needsReview"`
}

// VoiceParsedProjectDetails is a partial set of project fields extracted from
// a voice clip. Nil fields were not mentioned.
type VoiceParsedProjectDetails struct {
	ProjectName *string      `json:"projectName,omitempty"`
	Client      *string      `json:"client,omitempty"`
	Address     *string      `json:"address,omitempty"`
	ProjectType *ProjectType `json:"projectType,omitempty"`
	Buildings   *int         `json:"buildings,omitempty"`
	Units       *int         `json:"units,omitempty"`
	BidDate     *string      `json:"bidDate,omitempty"`
}

// VoiceParsedScope is a partial scope fragment. List fields, when present,
// are appended to the corresponding scope section during the merge.
type VoiceParsedScope struct {
	Inclusions    []string `json:"inclusions,omitempty"`
	Exclusions    []string `json:"exclusions,omitempty"`
	DeliveryTerms []string `json:"deliveryTerms,omitempty"`
	Comments      *string  `json:"comments,omitempty"`
}

// VoiceParseResult is the structured record returned by the speech/NLU
// collaborator. The core treats it purely as data and applies usable
// fragments in one atomic merge; a failed result is a no-op.
type VoiceParseResult struct {
	Type           VoiceResultType            `json:"type"`
	Items          []VoiceParsedItem          `json:"items,omitempty"`
	ProjectDetails *VoiceParsedProjectDetails `json:"projectDetails,omitempty"`
	Scope          *VoiceParsedScope          `json:"scope,omitempty"`
	Success        bool                       `json:"success"`
	Error          string                     `json:"error,omitempty"`
}
