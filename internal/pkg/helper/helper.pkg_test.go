package helper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	types "topup-store/internal/common/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponseFillsDefaults(t *testing.T) {
	r := ParseResponse(&types.Response{})
	assert.Equal(t, http.StatusOK, r.Code)
	assert.Equal(t, "OK", r.Message)
}

func TestToResponseAPIHidesInternalErrors(t *testing.T) {
	internal := ToResponseAPI(ParseResponse(&types.Response{
		Code:  http.StatusInternalServerError,
		Error: errors.New("pq: connection refused"),
	}))
	assert.Empty(t, internal.Error)

	client := ToResponseAPI(ParseResponse(&types.Response{
		Code:  http.StatusBadRequest,
		Error: errors.New("payment method is required"),
	}))
	assert.Equal(t, "payment method is required", client.Error)
}

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = fmt.Fprint(w, "png-bytes")
	}))
	defer srv.Close()

	res, err := NewHTTPClient(nil).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(res.Body))
	assert.Equal(t, "image/png", res.Headers.Get("Content-Type"))
}

func TestFetchRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewHTTPClient(nil).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestStringToStructEmptyInput(t *testing.T) {
	res, err := StringToStruct[map[string]string]("  ")
	require.NoError(t, err)
	assert.Nil(t, res)
}
