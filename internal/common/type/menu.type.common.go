package types

// CustomField is one input a menu item asks the buyer for, such as a player id.
type CustomField struct {
	Key         string `json:"key" validate:"required"`
	Label       string `json:"label" validate:"required"`
	Placeholder string `json:"placeholder,omitempty"`
	Required    bool   `json:"required"`
}

type Variation struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Price int64  `json:"price" validate:"gte=0"`
}
