package admin

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"
	"topup-store/internal/pkg/jwt"
	"topup-store/internal/pkg/logger"
	"topup-store/internal/pkg/validation"

	"github.com/google/uuid"
)

var errInvalidCredentials = errors.New("invalid email or password")

func (s *Service) Login(req *LoginRequest) *types.Response {
	if err := validation.Validate(req); err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
			Error:   err,
		})
	}

	if s.email == "" || s.password == "" {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Admin login is disabled",
		})
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(req.Email)), []byte(strings.ToLower(s.email))) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.password)) == 1
	if !emailOK || !passOK {
		logger.Warning.Printf("Failed admin login for %s", req.Email)
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusUnauthorized,
			Message: "Invalid email or password",
			Error:   errInvalidCredentials,
		})
	}

	token, exp, err := jwt.GenerateToken(types.AdminWithAuth{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("admin:"+strings.ToLower(s.email))),
		Email: strings.ToLower(s.email),
		Role:  "admin",
	}, tokenTTL)
	if err != nil {
		return helper.ParseResponse(&types.Response{
			Code:    http.StatusInternalServerError,
			Message: "Failed to issue token",
			Error:   err,
		})
	}

	return helper.ParseResponse(&types.Response{
		Code:    http.StatusOK,
		Message: "Logged in",
		Data:    LoginResponse{Token: token, ExpiresAt: *exp},
	})
}
