package calculator

// Physical and economic constants of the extract worksheet.
const (
	BeanWeightPerBeanG    = 3.0
	OuncesPerGallon       = 128.0
	GramsPerOunce         = 28.3495
	MLPerGallon           = 3785.41
	WeightPerGallon1FoldG = 378.47 // weight of beans per gallon at 1-fold
	AlcoholFraction       = 0.35

	BeanCostPerKgUSD = 150.0
	GramsPerKg       = 1000.0
	MLPerLiter       = 1000.0

	AlcoholPricePerLiterUSD = 23.0
	LandPricePerHectareBRL  = 14300.0
	BeansPerCultivationUnit = 30.0
	M2PerCultivationUnit    = 4.0
	M2PerHectare            = 10000.0

	GreenVanillaMinEUR = 15.6
	GreenVanillaMaxEUR = 16.6

	CuringThroughputKgPerMonth = 800.0
	CuringSpacePerThroughputM2 = 1600.0
)

// ReferenceFold is the fold whose table price is used when a basic
// calculation has no explicit base price.
const ReferenceFold = 1

// foldPrices maps fold level to the base extract price in USD per ounce.
var foldPrices = map[int]float64{
	1: 1.0,
	2: 20.0,
	3: 30.0,
}

// FoldPrice returns the base price per ounce for folds.
func FoldPrice(folds int) (float64, bool) {
	p, ok := foldPrices[folds]
	return p, ok
}

// Folds lists the fold levels present in the price table in ascending order.
func Folds() []int {
	return []int{1, 2, 3}
}
