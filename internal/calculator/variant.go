package calculator

import "strings"

// Variant selects which cost factors a calculation models.
type Variant string

const (
	Basic    Variant = "basic"    // base price is entered by the user
	Priced   Variant = "priced"   // base price comes from the fold table
	Extended Variant = "extended" // priced plus land, curing and producer costs
)

// Variants lists all variants in menu order.
func Variants() []Variant {
	return []Variant{Basic, Priced, Extended}
}

func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case Basic, Priced, Extended:
		return v, nil
	}
	return "", &ValidationError{Field: FieldVariant, Value: s, Reason: "must be one of basic, priced, extended"}
}

func (v Variant) String() string {
	return string(v)
}

// Title is the human readable name shown in menus.
func (v Variant) Title() string {
	switch v {
	case Basic:
		return "Basic"
	case Priced:
		return "Priced"
	case Extended:
		return "Extended"
	}
	return string(v)
}

func (v Variant) usesFoldTable() bool {
	return v == Priced || v == Extended
}
