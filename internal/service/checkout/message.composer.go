package checkout

import (
	"fmt"
	"net/url"
	"strings"

	types "topup-store/internal/common/type"
	"topup-store/internal/pkg/helper"

	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ComposeInput is everything the composer reads.
type ComposeInput struct {
	Cart              []CartItem
	Groups            []FieldGroup
	FieldValues       map[string]string
	PaymentMethodName string
	ReceiptURL        string
}

type Composer struct {
	currency string
	printer  *message.Printer
}

func NewComposer(currency string) *Composer {
	return &Composer{
		currency: strings.ToUpper(strings.TrimSpace(currency)),
		printer:  message.NewPrinter(language.English),
	}
}

// FormatPrice renders 150000 as "150,000 IDR".
func (c *Composer) FormatPrice(amount int64) string {
	formatted := c.printer.Sprintf("%d", amount)
	if c.currency == "" {
		return formatted
	}
	return formatted + " " + c.currency
}

func TotalPrice(cart []CartItem) int64 {
	return lo.SumBy(cart, func(item CartItem) int64 { return item.TotalPrice })
}

type labeledValue struct {
	label string
	value string
}

type fieldBlock struct {
	names  []string
	values []labeledValue
}

func filledValues(g FieldGroup, values map[string]string) []labeledValue {
	filled := []labeledValue{}
	for _, f := range g.Fields {
		v := strings.TrimSpace(values[f.ValueKey])
		if v == "" {
			continue
		}
		filled = append(filled, labeledValue{label: f.Label, value: v})
	}
	return filled
}

// fieldBlocks groups items whose filled label/value pairs are identical.
// Items with nothing filled are left out.
func fieldBlocks(groups []FieldGroup, values map[string]string) []*fieldBlock {
	blocks := []*fieldBlock{}
	bySignature := map[string]*fieldBlock{}

	for _, g := range groups {
		filled := filledValues(g, values)
		if len(filled) == 0 {
			continue
		}

		signature := strings.Join(lo.Map(filled, func(lv labeledValue, _ int) string {
			return lv.label + "\x00" + lv.value
		}), "\x01")

		if block, ok := bySignature[signature]; ok {
			block.names = append(block.names, g.Name)
			continue
		}
		block := &fieldBlock{names: []string{g.Name}, values: filled}
		bySignature[signature] = block
		blocks = append(blocks, block)
	}
	return blocks
}

// joinLabels renders ["A", "B", "C"] as "A, B & C".
func joinLabels(labels []string) string {
	if len(labels) <= 1 {
		return strings.Join(labels, "")
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " & " + labels[len(labels)-1]
}

func (b *fieldBlock) render() string {
	lines := append([]string{}, b.names...)

	first := b.values[0].value
	allSame := lo.EveryBy(b.values, func(lv labeledValue) bool { return lv.value == first })
	if allSame && len(b.values) > 1 {
		labels := lo.Map(b.values, func(lv labeledValue, _ int) string { return lv.label })
		lines = append(lines, fmt.Sprintf("%s: %s", joinLabels(labels), first))
	} else {
		for _, lv := range b.values {
			lines = append(lines, fmt.Sprintf("%s: %s", lv.label, lv.value))
		}
	}
	return strings.Join(lines, "\n")
}

func (c *Composer) customerSection(in ComposeInput) string {
	if len(in.Groups) == 0 {
		return "IGN: " + in.FieldValues[FallbackIGNKey]
	}
	rendered := lo.Map(fieldBlocks(in.Groups, in.FieldValues), func(b *fieldBlock, _ int) string { return b.render() })
	return strings.Join(rendered, "\n\n")
}

func (c *Composer) orderLine(item CartItem) string {
	name := item.Name
	if item.SelectedVariation != nil && item.SelectedVariation.Name != "" {
		name = fmt.Sprintf("%s (%s)", name, item.SelectedVariation.Name)
	}
	return fmt.Sprintf("- %s x%d = %s", name, item.Quantity, c.FormatPrice(item.TotalPrice))
}

// ComposeMessage renders the order summary sent through the messaging client.
func (c *Composer) ComposeMessage(in ComposeInput) string {
	sections := []string{"New Order"}
	if customer := c.customerSection(in); customer != "" {
		sections = append(sections, customer)
	}

	details := []string{"Order Details:"}
	for _, item := range in.Cart {
		details = append(details, c.orderLine(item))
	}
	sections = append(sections, strings.Join(details, "\n"))

	sections = append(sections, strings.Join([]string{
		"Total: " + c.FormatPrice(TotalPrice(in.Cart)),
		"Payment Method: " + in.PaymentMethodName,
		"Receipt: " + in.ReceiptURL,
	}, "\n"))

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// CustomerInfo builds the customer info map of an order. Labels used by more
// than one item get the item name appended.
func CustomerInfo(in ComposeInput) map[string]string {
	info := map[string]string{"Payment Method": in.PaymentMethodName}

	if len(in.Groups) == 0 {
		info["IGN"] = in.FieldValues[FallbackIGNKey]
		return info
	}

	for _, g := range in.Groups {
		for _, lv := range filledValues(g, in.FieldValues) {
			key := lv.label
			if _, taken := info[key]; taken {
				key = fmt.Sprintf("%s (%s)", lv.label, g.Name)
			}
			for n := 2; ; n++ {
				if _, taken := info[key]; !taken {
					break
				}
				key = fmt.Sprintf("%s (%s #%d)", lv.label, g.Name, n)
			}
			info[key] = lv.value
		}
	}
	return info
}

// BuildOrderPayload builds the structured order for direct submission.
func (c *Composer) BuildOrderPayload(in ComposeInput, paymentMethodID string) *types.CreateOrderPayload {
	items := lo.Map(in.Cart, func(item CartItem, _ int) types.OrderItem {
		variation := ""
		if item.SelectedVariation != nil {
			variation = item.SelectedVariation.Name
		}
		return types.OrderItem{
			MenuItemID: item.OriginalID(),
			CartItemID: item.ID,
			Name:       item.Name,
			Variation:  variation,
			Quantity:   item.Quantity,
			UnitPrice:  item.Price,
			TotalPrice: item.TotalPrice,
		}
	})

	return &types.CreateOrderPayload{
		Items:             items,
		CustomerInfo:      CustomerInfo(in),
		PaymentMethodID:   paymentMethodID,
		PaymentMethodName: in.PaymentMethodName,
		ReceiptURL:        in.ReceiptURL,
		TotalPrice:        TotalPrice(in.Cart),
	}
}

// WhatsAppLink returns the wa.me deep link with text pre-filled.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	// spaces as %20, "+" would show up literally in the chat
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	if helper.IsBlank(digits) {
		return "https://wa.me/?text=" + encoded
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, encoded)
}
