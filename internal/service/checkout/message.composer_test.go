package checkout

import (
	"strings"
	"testing"

	types "topup-store/internal/common/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groupOf(originalID, name string, labels ...string) FieldGroup {
	g := FieldGroup{OriginalID: originalID, Name: name}
	for pos, label := range labels {
		g.Fields = append(g.Fields, FieldSlot{
			Position: pos,
			Label:    label,
			ValueKey: FieldValueKey(originalID, pos, label),
		})
	}
	return g
}

func TestFormatPrice(t *testing.T) {
	c := NewComposer("idr")
	assert.Equal(t, "150,000 IDR", c.FormatPrice(150000))
	assert.Equal(t, "0 IDR", c.FormatPrice(0))
	assert.Equal(t, "1,250", NewComposer("").FormatPrice(1250))
}

func TestJoinLabels(t *testing.T) {
	assert.Equal(t, "", joinLabels(nil))
	assert.Equal(t, "A", joinLabels([]string{"A"}))
	assert.Equal(t, "A & B", joinLabels([]string{"A", "B"}))
	assert.Equal(t, "A, B & C", joinLabels([]string{"A", "B", "C"}))
}

func TestComposeMessageGroupsIdenticalValues(t *testing.T) {
	a := groupOf("a", "A", "IGN")
	b := groupOf("b", "B", "IGN")
	in := ComposeInput{
		Cart:              []CartItem{item("a:::1", "A", 1, 10000), item("b:::1", "B", 2, 5000)},
		Groups:            []FieldGroup{a, b},
		FieldValues:       map[string]string{a.Fields[0].ValueKey: "X", b.Fields[0].ValueKey: "X"},
		PaymentMethodName: "BCA",
		ReceiptURL:        "https://cdn.test/r.png",
	}

	text := NewComposer("IDR").ComposeMessage(in)
	assert.Contains(t, text, "A\nB\nIGN: X")
	assert.Equal(t, 1, strings.Count(text, "IGN: X"))
	assert.Equal(t, `New Order

A
B
IGN: X

Order Details:
- A x1 = 10,000 IDR
- B x2 = 10,000 IDR

Total: 20,000 IDR
Payment Method: BCA
Receipt: https://cdn.test/r.png`, text)
}

func TestComposeMessageSeparatesDifferentValues(t *testing.T) {
	a := groupOf("a", "A", "User ID", "Zone ID")
	b := groupOf("b", "B", "User ID", "Zone ID")
	in := ComposeInput{
		Groups: []FieldGroup{a, b},
		FieldValues: map[string]string{
			a.Fields[0].ValueKey: "111", a.Fields[1].ValueKey: "2001",
			b.Fields[0].ValueKey: "222", b.Fields[1].ValueKey: "2001",
		},
	}

	text := NewComposer("IDR").ComposeMessage(in)
	assert.Contains(t, text, "A\nUser ID: 111\nZone ID: 2001\n\nB\nUser ID: 222\nZone ID: 2001")
}

func TestComposeMessageJoinsLabelsWhenValuesMatch(t *testing.T) {
	a := groupOf("a", "A", "Email", "Username", "Login")
	in := ComposeInput{
		Groups: []FieldGroup{a},
		FieldValues: map[string]string{
			a.Fields[0].ValueKey: "me@x.io", a.Fields[1].ValueKey: "me@x.io", a.Fields[2].ValueKey: "me@x.io",
		},
	}
	assert.Contains(t, NewComposer("IDR").ComposeMessage(in), "A\nEmail, Username & Login: me@x.io")
}

func TestComposeMessageSkipsItemsWithoutValues(t *testing.T) {
	a := groupOf("a", "A", "IGN")
	b := groupOf("b", "B", "IGN")
	in := ComposeInput{
		Groups:      []FieldGroup{a, b},
		FieldValues: map[string]string{a.Fields[0].ValueKey: "X", b.Fields[0].ValueKey: "   "},
	}
	text := NewComposer("IDR").ComposeMessage(in)
	assert.Contains(t, text, "A\nIGN: X")
	assert.NotContains(t, text, "B\n")
}

func TestComposeMessageFallbackIGN(t *testing.T) {
	in := ComposeInput{
		Cart: []CartItem{{
			ID: "pulsa:::1", Name: "Pulsa", Quantity: 1, Price: 11000, TotalPrice: 11000,
			SelectedVariation: &types.Variation{ID: "v1", Name: "10k", Price: 11000},
		}},
		FieldValues:       map[string]string{FallbackIGNKey: "Slayer"},
		PaymentMethodName: "QRIS",
	}
	text := NewComposer("IDR").ComposeMessage(in)
	assert.Contains(t, text, "New Order\n\nIGN: Slayer\n\nOrder Details:")
	assert.Contains(t, text, "- Pulsa (10k) x1 = 11,000 IDR")
}

func TestCustomerInfoDisambiguatesLabels(t *testing.T) {
	a := groupOf("a", "Game A", "User ID")
	b := groupOf("b", "Game B", "User ID")
	info := CustomerInfo(ComposeInput{
		Groups:            []FieldGroup{a, b},
		FieldValues:       map[string]string{a.Fields[0].ValueKey: "1", b.Fields[0].ValueKey: "2"},
		PaymentMethodName: "BCA",
	})
	assert.Equal(t, map[string]string{
		"Payment Method":   "BCA",
		"User ID":          "1",
		"User ID (Game B)": "2",
	}, info)
}

func TestCustomerInfoFallbackIGN(t *testing.T) {
	info := CustomerInfo(ComposeInput{FieldValues: map[string]string{FallbackIGNKey: "Neo"}, PaymentMethodName: "BCA"})
	assert.Equal(t, map[string]string{"Payment Method": "BCA", "IGN": "Neo"}, info)
}

func TestBuildOrderPayload(t *testing.T) {
	cart := []CartItem{
		{ID: "ml:::1", Name: "ML", Quantity: 2, Price: 20000, TotalPrice: 40000, SelectedVariation: &types.Variation{Name: "86 Diamonds"}},
		item("ff:::2", "FF", 1, 15000),
	}
	payload := NewComposer("IDR").BuildOrderPayload(ComposeInput{
		Cart:              cart,
		FieldValues:       map[string]string{FallbackIGNKey: "Neo"},
		PaymentMethodName: "BCA",
		ReceiptURL:        "ref",
	}, "pm-1")

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "ml", payload.Items[0].MenuItemID)
	assert.Equal(t, "ml:::1", payload.Items[0].CartItemID)
	assert.Equal(t, "86 Diamonds", payload.Items[0].Variation)
	assert.Equal(t, int64(55000), payload.TotalPrice)
	assert.Equal(t, "pm-1", payload.PaymentMethodID)
	assert.Equal(t, "ref", payload.ReceiptURL)
	assert.Equal(t, "Neo", payload.CustomerInfo["IGN"])
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+62 812-3456", "New Order\nTotal: 1,000 IDR & more")
	assert.Equal(t, "https://wa.me/628123456?text=New%20Order%0ATotal%3A%201%2C000%20IDR%20%26%20more", link)
	assert.Equal(t, "https://wa.me/?text=hi", WhatsAppLink("", "hi"))
}
