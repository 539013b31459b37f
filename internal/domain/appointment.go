package domain

import "time"

type AppointmentStatus string

const (
	AppointmentUpcoming  AppointmentStatus = "upcoming"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"user_id"`
	PetID     int64             `json:"pet_id"`
	VetID     int64             `json:"vet_id"`
	Date      time.Time         `json:"date"`
	Type      string            `json:"type"`
	Reason    string            `json:"reason,omitempty"`
	Notes     string            `json:"notes,omitempty"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`

	Pet *Pet `json:"pet,omitempty"`
	Vet *Vet `json:"vet,omitempty"`
}

type Clinic struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone,omitempty"`
	Image   string  `json:"image,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	Vets    []Vet   `json:"vets,omitempty"`
}

type Vet struct {
	ID        int64  `json:"id"`
	ClinicID  int64  `json:"clinic_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}
