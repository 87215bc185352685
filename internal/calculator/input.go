package calculator

import (
	"fmt"
	"math"
)

// Input field names used in validation errors.
const (
	FieldVariant   = "variant"
	FieldBeanCount = "bean_count"
	FieldFolds     = "folds"
	FieldBasePrice = "base_price_per_oz_usd"
	FieldUSDToBRL  = "usd_to_brl_rate"
	FieldEURToBRL  = "eur_to_brl_rate"
	FieldEURToUSD  = "eur_to_usd_rate"
)

// Input holds the numbers a user enters for one calculation.
type Input struct {
	Variant   Variant `json:"variant"`
	BeanCount int     `json:"bean_count"`
	Folds     int     `json:"folds"`

	// BasePricePerOzUSD is only read by the basic variant. Nil falls back
	// to the reference 1-fold price.
	BasePricePerOzUSD *float64 `json:"base_price_per_oz_usd,omitempty"`

	USDToBRL float64 `json:"usd_to_brl_rate"`
	EURToBRL float64 `json:"eur_to_brl_rate,omitempty"`
	EURToUSD float64 `json:"eur_to_usd_rate,omitempty"`
}

// Price is a helper for filling Input.BasePricePerOzUSD.
func Price(v float64) *float64 {
	return &v
}

// validate expects in.Variant to be normalized by ParseVariant.
func (c *Calculator) validate(in Input) error {
	if in.BeanCount < 0 {
		return &ValidationError{Field: FieldBeanCount, Value: in.BeanCount, Reason: "must not be negative"}
	}
	if in.Folds < 1 {
		return &ValidationError{Field: FieldFolds, Value: in.Folds, Reason: "must be at least 1"}
	}
	if in.Variant == Basic && in.BasePricePerOzUSD != nil {
		p := *in.BasePricePerOzUSD
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return &ValidationError{Field: FieldBasePrice, Value: p, Reason: "must be a non-negative number"}
		}
	}
	if err := validateRate(FieldUSDToBRL, in.USDToBRL, c.minRate); err != nil {
		return err
	}
	if in.Variant == Extended {
		if err := validateRate(FieldEURToUSD, in.EURToUSD, 0); err != nil {
			return err
		}
		if err := validateRate(FieldEURToBRL, in.EURToBRL, c.minRate); err != nil {
			return err
		}
	}
	return nil
}

func validateRate(field string, rate, min float64) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
		return &ValidationError{Field: field, Value: rate, Reason: "must be positive"}
	}
	if rate < min {
		return &ValidationError{Field: field, Value: rate, Reason: fmt.Sprintf("must be at least %g", min)}
	}
	return nil
}

// basePrice resolves the USD per ounce price used for the variant.
func basePrice(in Input) (float64, error) {
	if in.Variant.usesFoldTable() {
		p, ok := FoldPrice(in.Folds)
		if !ok {
			return 0, &ConfigurationError{Folds: in.Folds}
		}
		return p, nil
	}
	if in.BasePricePerOzUSD != nil {
		return *in.BasePricePerOzUSD, nil
	}
	p, _ := FoldPrice(ReferenceFold)
	return p, nil
}
