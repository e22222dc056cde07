package ai

import (
	"context"
	"encoding/json"
	"fmt"

	types "topup-store/internal/common/type"

	"github.com/google/generative-ai-go/genai"
)

const receiptPrompt = `You are checking a payment receipt screenshot for a game top-up shop.
Read the transferred amount as an integer without currency symbols or separators,
the transaction reference, the sending bank or wallet name and the recipient name.
Set is_receipt to false when the image is not a payment receipt.
The order total is %d. Set matches_total when the amount equals it.
Confidence is between 0 and 1.`

var receiptSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"amount":        {Type: genai.TypeInteger},
		"reference":     {Type: genai.TypeString},
		"bank_name":     {Type: genai.TypeString},
		"recipient":     {Type: genai.TypeString},
		"is_receipt":    {Type: genai.TypeBoolean},
		"matches_total": {Type: genai.TypeBoolean},
		"confidence":    {Type: genai.TypeNumber},
	},
	Required: []string{"amount", "is_receipt", "matches_total", "confidence"},
}

// ReviewReceipt extracts payment details from a receipt image.
func (a *AiClient) ReviewReceipt(ctx context.Context, image []byte, contentType string, expectedTotal int64) (*types.ReceiptReview, error) {
	res, err := a.PromptWithImageAndSchema(ctx, fmt.Sprintf(receiptPrompt, expectedTotal), image, contentType, receiptSchema)
	if err != nil {
		return nil, err
	}

	review, err := parseReceiptReview(res.Response)
	if err != nil {
		return nil, err
	}
	review.Model = a.geminiModel
	review.TokenUsed = res.TokenUsed
	// the model is told the total, but the comparison is ours to make
	review.MatchesTotal = review.IsReceipt && review.Amount == expectedTotal
	return review, nil
}

func parseReceiptReview(raw string) (*types.ReceiptReview, error) {
	var review types.ReceiptReview
	if err := json.Unmarshal([]byte(raw), &review); err != nil {
		return nil, fmt.Errorf("failed to parse receipt review: %w", err)
	}
	return &review, nil
}
