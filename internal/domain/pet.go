package domain

import "time"

type Pet struct {
	ID        int64      `json:"id"`
	OwnerID   int64      `json:"owner_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`
	Breed     string     `json:"breed,omitempty"`
	Gender    string     `json:"gender,omitempty"`
	Color     string     `json:"color,omitempty"`
	Microchip string     `json:"microchip,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Vaccines   []Vaccine   `json:"vaccines,omitempty"`
	WeightLogs []WeightLog `json:"weight_logs,omitempty"`
}

type Vaccine struct {
	ID       int64      `json:"id"`
	PetID    int64      `json:"pet_id"`
	Name     string     `json:"name"`
	Date     time.Time  `json:"date"`
	NextDate *time.Time `json:"next_date,omitempty"`
}

type WeightLog struct {
	ID     int64     `json:"id"`
	PetID  int64     `json:"pet_id"`
	Weight float64   `json:"weight"`
	Date   time.Time `json:"date"`
}
