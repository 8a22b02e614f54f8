package interfaces

import (
	"context"

	"evergreen_estimator/internal/domain/entities"
)

// IEstimateRepository abstracts snapshot persistence for Estimate.
//
// The storage is a key-value mapping id -> full snapshot. Save upserts;
// GetByID returns a zero-ID estimate when nothing is stored under id, so
// callers can distinguish "missing" without a sentinel error from the driver.
type IEstimateRepository interface {
	Save(ctx context.Context, e entities.Estimate) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context) ([]entities.Estimate, error)
	Delete(ctx context.Context, id string) error
}
