package appointment

import (
	"context"
	"strings"
	"time"

	"petcare/internal/domain"
	"petcare/internal/pkg/apperr"
)

var ErrInvalidSchedule = apperr.New(apperr.BadRequest, "INVALID_SCHEDULE", "Invalid appointment date or time")

type AppointmentRepositoryInterface interface {
	FindAllClinics(ctx context.Context) ([]domain.Clinic, error)
	FindAllByUser(ctx context.Context, userID int64) ([]domain.Appointment, error)
	Create(ctx context.Context, a *domain.Appointment) error
}

type Service struct {
	repo AppointmentRepositoryInterface
}

func NewService(repo AppointmentRepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetClinics(ctx context.Context) ([]domain.Clinic, error) {
	return s.repo.FindAllClinics(ctx)
}

func (s *Service) GetUserAppointments(ctx context.Context, userID int64) ([]domain.Appointment, error) {
	return s.repo.FindAllByUser(ctx, userID)
}

func (s *Service) CreateAppointment(ctx context.Context, userID int64, req CreateAppointmentRequest) (*domain.Appointment, error) {
	when, err := time.Parse("2006-01-02T15:04", req.Date+"T"+req.Time)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	a := &domain.Appointment{
		UserID: userID,
		PetID:  req.PetID,
		VetID:  req.VetID,
		Date:   when,
		Type:   req.Type,
		Reason: strings.Join(req.Symptoms, ", "),
		Notes:  req.Notes,
		Status: domain.AppointmentUpcoming,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
