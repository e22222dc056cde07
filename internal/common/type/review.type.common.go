package types

// ReceiptReview is what the AI reviewer read from a payment screenshot.
type ReceiptReview struct {
	Amount       int64   `json:"amount"`
	Reference    string  `json:"reference"`
	BankName     string  `json:"bank_name"`
	Recipient    string  `json:"recipient"`
	IsReceipt    bool    `json:"is_receipt"`
	MatchesTotal bool    `json:"matches_total"`
	Confidence   float64 `json:"confidence"`
	Model        string  `json:"model,omitempty"`
	TokenUsed    int     `json:"token_used,omitempty"`
}
