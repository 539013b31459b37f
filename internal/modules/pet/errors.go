package pet

import "petcare/internal/pkg/apperr"

var (
	ErrPetNotFound = apperr.New(apperr.NotFound, "PET_NOT_FOUND", "Pet not found")
	ErrNotOwner    = apperr.New(apperr.Forbidden, "FORBIDDEN", "You don't own this pet")
	ErrInvalidDate = apperr.New(apperr.BadRequest, "INVALID_DATE", "Invalid date, expected YYYY-MM-DD")
)
