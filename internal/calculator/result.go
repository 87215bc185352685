package calculator

import "math"

// Result carries every derived quantity at full precision.
type Result struct {
	Input             Input   `json:"input"`
	BasePricePerOzUSD float64 `json:"base_price_per_oz_usd"`

	TotalBeanWeightG         float64 `json:"total_bean_weight_g"`
	RequiredWeightPerGallonG float64 `json:"required_weight_per_gallon_g"`
	GallonsNeeded            float64 `json:"gallons_needed"`
	FinalVolumeML            float64 `json:"final_volume_ml"`
	FinalVolumeOz            float64 `json:"final_volume_oz"`
	AlcoholVolumeML          float64 `json:"alcohol_volume_ml"`
	WaterVolumeML            float64 `json:"water_volume_ml"`
	PriceUSD                 float64 `json:"price_usd"`
	PriceBRL                 float64 `json:"price_brl"`
	BeanCostUSD              float64 `json:"bean_cost_usd"`
	AddedValueUSD            float64 `json:"added_value_usd"`

	// Costs is set for the extended variant only.
	Costs *Costs `json:"costs,omitempty"`
}

// Costs are the cultivation, curing and production economics of the
// extended variant.
type Costs struct {
	CultivationSpaceM2  float64 `json:"cultivation_space_m2"`
	CultivationSpaceHa  float64 `json:"cultivation_space_ha"`
	ProducerCostMinUSD  float64 `json:"producer_cost_min_usd"`
	ProducerCostMaxUSD  float64 `json:"producer_cost_max_usd"`
	ProducerCostMeanUSD float64 `json:"producer_cost_mean_usd"`
	ProducerCostMeanBRL float64 `json:"producer_cost_mean_brl"`
	CuringSpaceM2       float64 `json:"curing_space_m2"`
	CuringSpaceHa       float64 `json:"curing_space_ha"`
	AlcoholCostUSD      float64 `json:"alcohol_cost_usd"`
	LandPriceUSD        float64 `json:"land_price_usd"`
	TotalCostsUSD       float64 `json:"total_costs_usd"`
	FinalBalanceUSD     float64 `json:"final_balance_usd"`
}

// Row is one labelled line of a worksheet.
type Row struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Rounded returns the value rounded to two decimals for display.
func (r Row) Rounded() float64 {
	return Round2(r.Value)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Worksheet returns the main result rows in display order.
func (r Result) Worksheet() []Row {
	rows := []Row{
		{"Beans (count)", float64(r.Input.BeanCount)},
		{"Folds", float64(r.Input.Folds)},
		{"Bean Weight (g)", r.TotalBeanWeightG},
		{"Alcohol Volume (mL)", r.AlcoholVolumeML},
		{"Water Volume (mL)", r.WaterVolumeML},
		{"Final Volume (mL)", r.FinalVolumeML},
		{"Final Volume (oz)", r.FinalVolumeOz},
		{"Base Price per oz (USD)", r.BasePricePerOzUSD},
		{"Extract Price (USD)", r.PriceUSD},
		{"Extract Price (BRL)", r.PriceBRL},
		{"Bean Cost (USD)", r.BeanCostUSD},
		{"Bean Cost per kg (USD)", BeanCostPerKgUSD},
		{"Added Value (USD)", r.AddedValueUSD},
	}
	if k := r.Costs; k != nil {
		rows = append(rows,
			Row{"Producer Cost Min (USD)", k.ProducerCostMinUSD},
			Row{"Producer Cost Max (USD)", k.ProducerCostMaxUSD},
			Row{"Producer Cost Mean (BRL)", k.ProducerCostMeanBRL},
			Row{"Cultivation Space (m²)", k.CultivationSpaceM2},
			Row{"Cultivation Space (ha)", k.CultivationSpaceHa},
			Row{"Curing Space (m²)", k.CuringSpaceM2},
			Row{"Curing Space (ha)", k.CuringSpaceHa},
		)
	}
	return rows
}

// CostBreakdown returns the extended cost rows, or nil for other variants.
func (r Result) CostBreakdown() []Row {
	k := r.Costs
	if k == nil {
		return nil
	}
	return []Row{
		{"Alcohol Cost (USD)", k.AlcoholCostUSD},
		{"Producer Cost Mean (USD)", k.ProducerCostMeanUSD},
		{"Land Price (USD)", k.LandPriceUSD},
		{"Extract Price (USD)", r.PriceUSD},
		{"Final Balance (USD)", k.FinalBalanceUSD},
	}
}
