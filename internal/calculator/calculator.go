// Package calculator turns a vanilla bean count and a fold strength into
// the extract pricing worksheet: volumes, alcohol/water split, prices and,
// for the extended variant, land, curing and producer costs.
package calculator

// Calculator is stateless and safe for concurrent use.
type Calculator struct {
	minRate float64
}

type Option func(*Calculator)

// WithMinRate rejects BRL exchange rates (USD→BRL, EUR→BRL) below min.
// EUR→USD only has to be positive. All rates must be positive regardless
// of min.
func WithMinRate(min float64) Option {
	return func(c *Calculator) {
		if min > 0 {
			c.minRate = min
		}
	}
}

func New(opts ...Option) *Calculator {
	c := &Calculator{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultCalculator = New()

// Calculate runs in with no configured minimum exchange rate.
func Calculate(in Input) (Result, error) {
	return defaultCalculator.Calculate(in)
}

// Calculate validates in and derives the full worksheet. No partial result
// is returned on error.
func (c *Calculator) Calculate(in Input) (Result, error) {
	variant, err := ParseVariant(string(in.Variant))
	if err != nil {
		return Result{}, err
	}
	in.Variant = variant

	if err := c.validate(in); err != nil {
		return Result{}, err
	}
	price, err := basePrice(in)
	if err != nil {
		return Result{}, err
	}

	r := Result{Input: in, BasePricePerOzUSD: price}

	r.TotalBeanWeightG = float64(in.BeanCount) * BeanWeightPerBeanG
	r.RequiredWeightPerGallonG = WeightPerGallon1FoldG * float64(in.Folds)
	r.GallonsNeeded = r.TotalBeanWeightG / r.RequiredWeightPerGallonG

	r.FinalVolumeML = r.GallonsNeeded * MLPerGallon
	r.FinalVolumeOz = r.GallonsNeeded * OuncesPerGallon
	r.AlcoholVolumeML = AlcoholFraction * r.FinalVolumeML
	r.WaterVolumeML = r.FinalVolumeML - r.AlcoholVolumeML

	r.PriceUSD = r.FinalVolumeOz * price
	r.PriceBRL = r.FinalVolumeOz * (price * in.USDToBRL)

	r.BeanCostUSD = r.TotalBeanWeightG * (BeanCostPerKgUSD / GramsPerKg)
	r.AddedValueUSD = r.PriceUSD - r.BeanCostUSD

	if in.Variant == Extended {
		r.Costs = extendedCosts(in, r)
	}
	return r, nil
}

func extendedCosts(in Input, r Result) *Costs {
	k := &Costs{}

	k.CultivationSpaceM2 = (float64(in.BeanCount) / BeansPerCultivationUnit) * M2PerCultivationUnit
	k.CultivationSpaceHa = k.CultivationSpaceM2 / M2PerHectare

	k.ProducerCostMinUSD = k.CultivationSpaceHa * GreenVanillaMinEUR * in.EURToUSD
	k.ProducerCostMaxUSD = k.CultivationSpaceHa * GreenVanillaMaxEUR * in.EURToUSD
	k.ProducerCostMeanUSD = (k.ProducerCostMinUSD + k.ProducerCostMaxUSD) / 2
	k.ProducerCostMeanBRL = k.CultivationSpaceHa * (GreenVanillaMinEUR + GreenVanillaMaxEUR) / 2 * in.EURToBRL

	k.CuringSpaceM2 = (r.TotalBeanWeightG / GramsPerKg) / CuringThroughputKgPerMonth * CuringSpacePerThroughputM2
	k.CuringSpaceHa = k.CuringSpaceM2 / M2PerHectare

	k.AlcoholCostUSD = (r.AlcoholVolumeML / MLPerLiter) * AlcoholPricePerLiterUSD
	k.LandPriceUSD = (LandPricePerHectareBRL / in.USDToBRL) * (k.CultivationSpaceHa + k.CuringSpaceM2/M2PerHectare)

	k.TotalCostsUSD = k.AlcoholCostUSD + k.ProducerCostMeanUSD + k.LandPriceUSD
	k.FinalBalanceUSD = r.PriceUSD - k.TotalCostsUSD
	return k
}
