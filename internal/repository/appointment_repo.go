package repository

import (
	"context"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) FindAllClinics(ctx context.Context) ([]domain.Clinic, error) {
	var clinics []domain.Clinic
	err := r.db.WithContext(ctx).Preload("Vets").Find(&clinics).Error
	return clinics, err
}

func (r *AppointmentRepository) FindAllByUser(ctx context.Context, userID int64) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.db.WithContext(ctx).
		Preload("Pet").
		Preload("Vet").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}
