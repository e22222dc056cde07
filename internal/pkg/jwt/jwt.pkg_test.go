package jwt

import (
	"testing"
	"time"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, validation.Setup())

	admin := types.AdminWithAuth{ID: uuid.New(), Email: "owner@shop.test", Role: "admin"}
	token, exp, err := GenerateToken(admin, time.Hour)
	require.NoError(t, err)
	require.True(t, exp.After(time.Now()))

	got, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, admin, *got)
}

func TestValidateTokenRejectsOtherSecret(t *testing.T) {
	require.NoError(t, validation.Setup())
	t.Setenv("JWT_SECRET", "secret-a")
	token, _, err := GenerateToken(types.AdminWithAuth{ID: uuid.New(), Email: "a@shop.test", Role: "admin"}, time.Hour)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-b")
	_, err = ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, validation.Setup())
	token, _, err := GenerateToken(types.AdminWithAuth{ID: uuid.New(), Email: "a@shop.test", Role: "admin"}, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	require.Error(t, err)
}
