package pet

import (
	"context"
	"errors"
	"strings"
	"time"

	"petcare/internal/domain"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service struct {
	pets PetRepositoryInterface
}

func NewService(pets PetRepositoryInterface) *Service {
	return &Service{pets: pets}
}

func (s *Service) GetUserPets(ctx context.Context, userID int64) ([]domain.Pet, error) {
	return s.pets.FindAllByOwner(ctx, userID)
}

func (s *Service) CreatePet(ctx context.Context, userID int64, req CreatePetRequest) (*domain.Pet, error) {
	p := &domain.Pet{
		OwnerID:   userID,
		Name:      req.Name,
		Species:   req.Species,
		Breed:     req.Breed,
		Gender:    req.Gender,
		Color:     req.Color,
		Microchip: req.Microchip,
		Avatar:    speciesAvatar(req.Species),
	}

	if req.BirthDate != "" {
		birth, err := time.Parse(dateLayout, req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		p.BirthDate = &birth
	}

	if err := s.pets.Create(ctx, p); err != nil {
		return nil, err
	}

	// An initial weight becomes the first log entry.
	if req.Weight != nil && *req.Weight > 0 {
		log := &domain.WeightLog{PetID: p.ID, Weight: *req.Weight, Date: time.Now()}
		if err := s.pets.AddWeight(ctx, log); err != nil {
			return nil, err
		}
	}

	return p, nil
}

// GetPetDetails loads a pet with its vaccines and weight history, refusing
// access to anyone but the owner.
func (s *Service) GetPetDetails(ctx context.Context, petID, userID int64) (*domain.Pet, error) {
	p, err := s.pets.FindByIDWithDetails(ctx, petID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, err
	}
	if p.OwnerID != userID {
		return nil, ErrNotOwner
	}
	return p, nil
}

func (s *Service) AddWeight(ctx context.Context, userID, petID int64, req AddWeightRequest) (*domain.WeightLog, error) {
	if _, err := s.GetPetDetails(ctx, petID, userID); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	log := &domain.WeightLog{PetID: petID, Weight: req.Weight, Date: date}
	if err := s.pets.AddWeight(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

func (s *Service) AddVaccine(ctx context.Context, userID, petID int64, req AddVaccineRequest) (*domain.Vaccine, error) {
	if _, err := s.GetPetDetails(ctx, petID, userID); err != nil {
		return nil, err
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	v := &domain.Vaccine{PetID: petID, Name: req.Name, Date: date}
	if req.NextDate != "" {
		next, err := time.Parse(dateLayout, req.NextDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		v.NextDate = &next
	}

	if err := s.pets.AddVaccine(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func speciesAvatar(species string) string {
	switch strings.ToLower(species) {
	case "dog", "chien":
		return "🐕"
	case "cat", "chat":
		return "🐈"
	default:
		return "🐾"
	}
}
