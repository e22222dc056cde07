package helper

import (
	"net/http"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/logger"
)

// ParseResponse normalizes a service response: it fills a default message and logs server-side errors.
func ParseResponse(r *types.Response) *types.Response {
	if r.Code == 0 {
		r.Code = http.StatusOK
	}
	if r.Message == "" {
		r.Message = http.StatusText(r.Code)
	}
	if r.Error != nil && r.Code >= http.StatusInternalServerError {
		logger.Error.Printf("%s: %v", r.Message, r.Error)
	}
	return r
}

// ToResponseAPI converts a service response into the JSON envelope. Internal error details are hidden.
func ToResponseAPI(r *types.Response) types.ResponseAPI {
	res := types.ResponseAPI{
		Status:  r.Code,
		Message: r.Message,
		Data:    r.Data,
	}
	if r.Error != nil && r.Code < http.StatusInternalServerError {
		res.Error = r.Error.Error()
	}
	return res
}
