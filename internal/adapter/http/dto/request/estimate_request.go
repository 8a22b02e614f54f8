package request

import (
	"errors"
	"strings"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/domain/mutate"
)

var (
	ErrInvalidProjectType = errors.New("invalid project type")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidBidDate     = errors.New("invalid bid date")
)

// EstimateDetailsRequest carries the top-level scalar fields of an estimate.
// Absent fields are left untouched, so the same payload serves both create
// and partial update. Required-field completeness is the validation
// service's concern, not binding's: an estimate may be saved incomplete.
type EstimateDetailsRequest struct {
	ProjectName *string `json:"projectName"`
	Client      *string `json:"client"`
	Address     *string `json:"address"`
	BidDate     *string `json:"bidDate"`
	ProjectType *string `json:"projectType"`
	Buildings   *int    `json:"buildings"`
	Units       *int    `json:"units"`
	Status      *string `json:"status"`
}

// ToPatch validates the enum-valued fields and converts to a domain patch.
func (r EstimateDetailsRequest) ToPatch() (mutate.DetailsPatch, error) {
	patch := mutate.DetailsPatch{
		ProjectName: r.ProjectName,
		Client:      r.Client,
		Address:     r.Address,
		Buildings:   r.Buildings,
		Units:       r.Units,
	}

	if r.BidDate != nil {
		v := strings.TrimSpace(*r.BidDate)
		if v == "" {
			return mutate.DetailsPatch{}, ErrInvalidBidDate
		}
		patch.BidDate = &v
	}
	if r.ProjectType != nil {
		pt := entities.ProjectType(strings.TrimSpace(*r.ProjectType))
		if !entities.ValidProjectType(pt) {
			return mutate.DetailsPatch{}, ErrInvalidProjectType
		}
		patch.ProjectType = &pt
	}
	if r.Status != nil {
		st := entities.EstimateStatus(strings.TrimSpace(*r.Status))
		if !entities.ValidEstimateStatus(st) {
			return mutate.DetailsPatch{}, ErrInvalidStatus
		}
		patch.Status = &st
	}

	return patch, nil
}
