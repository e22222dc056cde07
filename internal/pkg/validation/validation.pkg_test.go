package validation

import (
	"testing"

	"topup-store/internal/common/enum"

	"github.com/stretchr/testify/require"
)

type cartPayload struct {
	CartItemID string               `json:"cart_item_id" validate:"required,cartItemID"`
	Values     map[string]string    `json:"values" validate:"mapStringString"`
	Status     enum.OrderStatusEnum `json:"status" validate:"omitempty,enum"`
}

type receiptPayload struct {
	ContentType string `json:"content_type" validate:"required,imageMime"`
}

func TestValidateCartPayload(t *testing.T) {
	require.NoError(t, Setup())

	ok := cartPayload{CartItemID: "diamonds-86:::1712", Values: map[string]string{"diamonds-86_0_user_id": ""}}
	require.NoError(t, Validate(ok))

	err := Validate(cartPayload{CartItemID: ":::1712"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "cart_item_id")

	err = Validate(cartPayload{CartItemID: "a", Values: map[string]string{"": "x"}})
	require.Error(t, err)

	err = Validate(cartPayload{CartItemID: "a", Status: enum.OrderStatusEnum("lost")})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status")
}

func TestIsImageMime(t *testing.T) {
	require.True(t, IsImageMime("image/png"))
	require.True(t, IsImageMime("IMAGE/JPEG; charset=binary"))
	require.False(t, IsImageMime("application/pdf"))
	require.False(t, IsImageMime(""))

	require.NoError(t, Setup())
	require.NoError(t, Validate(receiptPayload{ContentType: "image/webp"}))
	require.Error(t, Validate(receiptPayload{ContentType: "text/html"}))
}

func TestSniffImageMime(t *testing.T) {
	require.Equal(t, "image/png", SniffImageMime([]byte("\x89PNG\r\n\x1a\n0000")))
	require.Equal(t, "image/jpeg", SniffImageMime([]byte("\xff\xd8\xff\xe0")))
	require.Equal(t, "image/gif", SniffImageMime([]byte("GIF89a")))
	require.Empty(t, SniffImageMime([]byte("<html><body>hi</body></html>")))
	require.Empty(t, SniffImageMime([]byte("%PDF-1.7")))
	require.Empty(t, SniffImageMime(nil))
}
