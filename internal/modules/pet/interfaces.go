package pet

import (
	"context"

	"petcare/internal/domain"
)

type PetRepositoryInterface interface {
	FindAllByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error)
	Create(ctx context.Context, pet *domain.Pet) error
	FindByIDWithDetails(ctx context.Context, id int64) (*domain.Pet, error)
	AddWeight(ctx context.Context, log *domain.WeightLog) error
	AddVaccine(ctx context.Context, v *domain.Vaccine) error
}
