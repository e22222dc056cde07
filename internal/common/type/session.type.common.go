package types

import (
	"github.com/google/uuid"
)

// AdminWithAuth is the identity carried inside admin JWTs.
type AdminWithAuth struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Email string    `json:"email" validate:"required,email"`
	Role  string    `json:"role" validate:"required,oneof=admin"`
}
