package validation

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const cartItemSeparator = ":::"

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// validateCartItemID requires a non-empty menu item id before the separator.
func validateCartItemID(fl validator.FieldLevel) bool {
	id := fl.Field().String()
	if strings.TrimSpace(id) == "" {
		return false
	}
	original, _, _ := strings.Cut(id, cartItemSeparator)
	return strings.TrimSpace(original) != ""
}

func validateImageMime(fl validator.FieldLevel) bool {
	return IsImageMime(fl.Field().String())
}

// IsImageMime reports whether the content type is accepted for receipts.
func IsImageMime(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return imageMimeTypes[ct]
}

// SniffImageMime detects the type from the leading bytes and returns it when
// it is an accepted receipt image, or "" otherwise.
func SniffImageMime(data []byte) string {
	ct := http.DetectContentType(data)
	if !IsImageMime(ct) {
		return ""
	}
	return ct
}
