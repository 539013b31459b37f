package pet

type CreatePetRequest struct {
	Name      string   `json:"name" binding:"required"`
	Species   string   `json:"species" binding:"required"`
	Breed     string   `json:"breed"`
	Gender    string   `json:"gender"`
	Color     string   `json:"color"`
	Microchip string   `json:"microchip"`
	BirthDate string   `json:"birthDate"`
	Weight    *float64 `json:"weight"`
}

type AddWeightRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Date   string  `json:"date" binding:"required"`
}

type AddVaccineRequest struct {
	Name     string `json:"name" binding:"required"`
	Date     string `json:"date" binding:"required"`
	NextDate string `json:"nextDate"`
}
