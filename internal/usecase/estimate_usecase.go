package usecase

import (
	"context"
	"errors"
	"strings"

	"evergreen_estimator/internal/domain/entities"
	"evergreen_estimator/internal/domain/mutate"
	"evergreen_estimator/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEstimateNotFound  = errors.New("estimate not found")
	ErrInvalidEstimateID = errors.New("invalid estimate id")
)

// IEstimateUseCase exposes all editing operations on estimates. Every
// operation loads the current snapshot, applies one mutation through the
// domain mutate package, persists the whole new snapshot, and returns it.
// An error leaves the stored snapshot untouched.
type IEstimateUseCase interface {
	Create(ctx context.Context, patch mutate.DetailsPatch) (entities.Estimate, error)
	GetByID(ctx context.Context, id string) (entities.Estimate, error)
	List(ctx context.Context) ([]entities.Estimate, error)
	Delete(ctx context.Context, id string) error

	UpdateDetails(ctx context.Context, id string, patch mutate.DetailsPatch) (entities.Estimate, error)
	UpdateScope(ctx context.Context, id string, patch mutate.ScopePatch) (entities.Estimate, error)

	AddLineItem(ctx context.Context, id string, item entities.LineItem) (entities.Estimate, error)
	UpdateLineItem(ctx context.Context, id, itemID string, patch mutate.LineItemPatch) (entities.Estimate, error)
	DeleteLineItem(ctx context.Context, id, itemID string) (entities.Estimate, error)

	AddAllocation(ctx context.Context, id string, allocation entities.Allocation) (entities.Estimate, error)
	UpdateAllocation(ctx context.Context, id, allocationID string, patch mutate.AllocationPatch) (entities.Estimate, error)
	DeleteAllocation(ctx context.Context, id, allocationID string) (entities.Estimate, error)
}

type EstimateUseCase struct {
	repo   interfaces.IEstimateRepository
	policy mutate.ShrinkPolicy
}

var _ IEstimateUseCase = (*EstimateUseCase)(nil)

func NewEstimateUseCase(repo interfaces.IEstimateRepository, policy mutate.ShrinkPolicy) *EstimateUseCase {
	return &EstimateUseCase{repo: repo, policy: policy}
}

func (u *EstimateUseCase) Create(ctx context.Context, patch mutate.DetailsPatch) (entities.Estimate, error) {
	e := entities.NewEstimate()
	if !patch.Empty() {
		e = mutate.UpdateDetails(e, patch)
	}
	return u.repo.Save(ctx, e)
}

func (u *EstimateUseCase) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	return u.load(ctx, id)
}

func (u *EstimateUseCase) List(ctx context.Context) ([]entities.Estimate, error) {
	return u.repo.List(ctx)
}

// Delete removes the whole estimate. Unknown ids are a no-op, matching the
// idempotent delete semantics of the row-level operations.
func (u *EstimateUseCase) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidEstimateID
	}
	return u.repo.Delete(ctx, id)
}

func (u *EstimateUseCase) UpdateDetails(ctx context.Context, id string, patch mutate.DetailsPatch) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, mutate.UpdateDetails(e, patch))
}

func (u *EstimateUseCase) UpdateScope(ctx context.Context, id string, patch mutate.ScopePatch) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, mutate.UpdateScope(e, patch))
}

func (u *EstimateUseCase) AddLineItem(ctx context.Context, id string, item entities.LineItem) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if strings.TrimSpace(item.ID) == "" {
		item.ID = uuid.NewString()
	}
	next, err := mutate.AddLineItem(e, item)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, next)
}

func (u *EstimateUseCase) UpdateLineItem(ctx context.Context, id, itemID string, patch mutate.LineItemPatch) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	next, err := mutate.UpdateLineItem(e, itemID, patch, u.policy)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, next)
}

func (u *EstimateUseCase) DeleteLineItem(ctx context.Context, id, itemID string) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, mutate.DeleteLineItem(e, itemID))
}

func (u *EstimateUseCase) AddAllocation(ctx context.Context, id string, allocation entities.Allocation) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if strings.TrimSpace(allocation.ID) == "" {
		allocation.ID = uuid.NewString()
	}
	next, err := mutate.AddAllocation(e, allocation)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, next)
}

func (u *EstimateUseCase) UpdateAllocation(ctx context.Context, id, allocationID string, patch mutate.AllocationPatch) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	next, err := mutate.UpdateAllocation(e, allocationID, patch)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, next)
}

func (u *EstimateUseCase) DeleteAllocation(ctx context.Context, id, allocationID string) (entities.Estimate, error) {
	e, err := u.load(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	return u.repo.Save(ctx, mutate.DeleteAllocation(e, allocationID))
}

func (u *EstimateUseCase) load(ctx context.Context, id string) (entities.Estimate, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Estimate{}, ErrInvalidEstimateID
	}
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Estimate{}, err
	}
	if e.ID == "" {
		return entities.Estimate{}, ErrEstimateNotFound
	}
	return e, nil
}
