package repository

import (
	"context"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) FindAllByOwner(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var pets []domain.Pet
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&pets).Error
	return pets, err
}

func (r *PetRepository) Create(ctx context.Context, pet *domain.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *PetRepository) FindByIDWithDetails(ctx context.Context, id int64) (*domain.Pet, error) {
	var pet domain.Pet
	err := r.db.WithContext(ctx).
		Preload("Vaccines", func(db *gorm.DB) *gorm.DB { return db.Order("date DESC") }).
		Preload("WeightLogs", func(db *gorm.DB) *gorm.DB { return db.Order("date ASC") }).
		First(&pet, id).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (r *PetRepository) AddWeight(ctx context.Context, log *domain.WeightLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *PetRepository) AddVaccine(ctx context.Context, v *domain.Vaccine) error {
	return r.db.WithContext(ctx).Create(v).Error
}
