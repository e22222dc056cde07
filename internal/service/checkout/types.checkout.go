package checkout

import (
	"fmt"
	"sort"
	"strings"

	types "topup-store/internal/common/type"

	"github.com/samber/lo"
)

const (
	// cartItemSeparator splits a cart item id into menu item id and instance suffix.
	cartItemSeparator = ":::"
	// FallbackIGNKey holds the in-game name when no cart item defines custom fields.
	FallbackIGNKey = "default_ign"
)

type CartItem struct {
	ID                string              `json:"id" validate:"required,cartItemID"`
	Name              string              `json:"name" validate:"required"`
	Quantity          int                 `json:"quantity" validate:"gte=1"`
	Price             int64               `json:"price" validate:"gte=0"`
	TotalPrice        int64               `json:"total_price" validate:"gte=0"`
	SelectedVariation *types.Variation    `json:"selected_variation,omitempty"`
	CustomFields      []types.CustomField `json:"custom_fields,omitempty" validate:"omitempty,dive"`
}

// OriginalID is the menu item id the cart item was created from.
func (c CartItem) OriginalID() string {
	id, _, _ := strings.Cut(c.ID, cartItemSeparator)
	return id
}

func (c CartItem) HasCustomFields() bool {
	return len(c.CustomFields) > 0
}

// FieldValueKey builds the key a field value is stored under. The position keeps
// two fields with the same key on one item apart.
func FieldValueKey(originalID string, position int, fieldKey string) string {
	return fmt.Sprintf("%s_%d_%s", originalID, position, fieldKey)
}

type FieldSlot struct {
	Position    int    `json:"position"`
	Key         string `json:"key"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
	ValueKey    string `json:"value_key"`
	Value       string `json:"value"`
}

// FieldGroup is one field collection target: all cart items sharing an original id.
type FieldGroup struct {
	OriginalID string      `json:"original_id"`
	Name       string      `json:"name"`
	Fields     []FieldSlot `json:"fields"`
}

type BulkField struct {
	Position int    `json:"position"`
	Label    string `json:"label"`
	Value    string `json:"value"`
}

// ReceiptFile describes the receipt image the buyer picked.
type ReceiptFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type ReceiptUpload struct {
	ReceiptFile
	Data []byte `json:"-"`
}

type ViewState struct {
	View     string `json:"view"`
	Category string `json:"category"`
	Search   string `json:"search"`
}

// ValidationError carries field level messages keyed by field value key.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := lo.Keys(e.Fields)
	sort.Strings(keys)
	return "validation failed: " + strings.Join(keys, ", ")
}
