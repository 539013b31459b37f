package appointment

type CreateAppointmentRequest struct {
	PetID    int64    `json:"petId" binding:"required"`
	VetID    int64    `json:"vetId" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Time     string   `json:"time" binding:"required"`
	Type     string   `json:"type" binding:"required"`
	Symptoms []string `json:"symptoms"`
	Notes    string   `json:"notes"`
}
