package admin

import (
	"context"
	"time"

	types "topup-store/internal/common/type"
)

const tokenTTL = 12 * time.Hour

type Service struct {
	ctx      context.Context
	email    string
	password string
}

type IService interface {
	Login(req *LoginRequest) *types.Response
}

// NewService takes the single admin account configured by ADMIN_EMAIL and
// ADMIN_PASSWORD. Login is refused while either is empty.
func NewService(ctx context.Context, email, password string) IService {
	return &Service{
		ctx:      ctx,
		email:    email,
		password: password,
	}
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
