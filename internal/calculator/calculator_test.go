package calculator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func TestCalculate_Basic(t *testing.T) {
	res, err := Calculate(Input{
		Variant:           Basic,
		BeanCount:         333,
		Folds:             1,
		BasePricePerOzUSD: Price(1.0),
		USDToBRL:          5.0,
	})
	require.NoError(t, err)

	assert.Equal(t, 999.0, res.TotalBeanWeightG)
	assert.InDelta(t, 2.6396, res.GallonsNeeded, 1e-4)
	assert.InDelta(t, 9991.87, Round2(res.FinalVolumeML), 1e-9)
	assert.InDelta(t, 337.87, Round2(res.FinalVolumeOz), 1e-9)
	assert.InDelta(t, res.FinalVolumeOz*1.0, res.PriceUSD, tolerance)
	assert.InDelta(t, res.FinalVolumeOz*5.0, res.PriceBRL, tolerance)
	assert.InDelta(t, 149.85, res.BeanCostUSD, tolerance)
	assert.InDelta(t, res.PriceUSD-149.85, res.AddedValueUSD, tolerance)
	assert.Nil(t, res.Costs)
	assert.Nil(t, res.CostBreakdown())
}

func TestCalculate_BasicWithoutPriceUsesReference(t *testing.T) {
	res, err := Calculate(Input{Variant: Basic, BeanCount: 100, Folds: 3, USDToBRL: 5})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.BasePricePerOzUSD)
	assert.InDelta(t, res.FinalVolumeOz, res.PriceUSD, tolerance)
}

func TestCalculate_PricedLooksUpFoldPrice(t *testing.T) {
	res, err := Calculate(Input{Variant: Priced, BeanCount: 333, Folds: 2, USDToBRL: 5})
	require.NoError(t, err)

	assert.Equal(t, 20.0, res.BasePricePerOzUSD)
	assert.InDelta(t, res.FinalVolumeOz*20.0, res.PriceUSD, tolerance)
	assert.InDelta(t, 3378.66, Round2(res.PriceUSD), 1e-9)
}

func TestCalculate_PricedIgnoresEnteredPrice(t *testing.T) {
	res, err := Calculate(Input{Variant: Priced, BeanCount: 10, Folds: 3, BasePricePerOzUSD: Price(-4), USDToBRL: 5})
	require.NoError(t, err)
	assert.Equal(t, 30.0, res.BasePricePerOzUSD)
}

func TestCalculate_Extended(t *testing.T) {
	res, err := Calculate(Input{
		Variant:   Extended,
		BeanCount: 333,
		Folds:     2,
		USDToBRL:  5.0,
		EURToUSD:  1.08,
		EURToBRL:  6.0,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Costs)
	k := res.Costs

	assert.InDelta(t, 44.4, k.CultivationSpaceM2, tolerance)
	assert.InDelta(t, 0.00444, k.CultivationSpaceHa, tolerance)
	assert.InDelta(t, 0.07480512, k.ProducerCostMinUSD, tolerance)
	assert.InDelta(t, 0.07960032, k.ProducerCostMaxUSD, tolerance)
	assert.InDelta(t, 0.07720272, k.ProducerCostMeanUSD, tolerance)
	assert.InDelta(t, 0.428904, k.ProducerCostMeanBRL, tolerance)
	assert.InDelta(t, 1.998, k.CuringSpaceM2, tolerance)
	assert.InDelta(t, 0.0001998, k.CuringSpaceHa, tolerance)
	assert.InDelta(t, 40.22, Round2(k.AlcoholCostUSD), 1e-9)
	assert.InDelta(t, 13.269828, k.LandPriceUSD, 1e-6)
	assert.InDelta(t, k.AlcoholCostUSD+k.ProducerCostMeanUSD+k.LandPriceUSD, k.TotalCostsUSD, tolerance)
	assert.InDelta(t, 3325.09, Round2(k.FinalBalanceUSD), 1e-9)

	breakdown := res.CostBreakdown()
	require.Len(t, breakdown, 5)
	assert.Equal(t, "Final Balance (USD)", breakdown[4].Label)
	assert.Equal(t, res.PriceUSD, breakdown[3].Value)
}

func TestCalculate_ZeroBeans(t *testing.T) {
	for _, v := range Variants() {
		for _, folds := range Folds() {
			res, err := Calculate(Input{Variant: v, BeanCount: 0, Folds: folds, USDToBRL: 5, EURToUSD: 1.1, EURToBRL: 6})
			require.NoError(t, err, "variant %s folds %d", v, folds)

			assert.Zero(t, res.GallonsNeeded)
			assert.Zero(t, res.FinalVolumeML)
			assert.Zero(t, res.FinalVolumeOz)
			assert.Zero(t, res.AlcoholVolumeML)
			assert.Zero(t, res.WaterVolumeML)
			assert.Zero(t, res.PriceUSD)
			assert.Zero(t, res.PriceBRL)
		}
	}
}

func TestCalculate_Scaling(t *testing.T) {
	one, err := Calculate(Input{Variant: Basic, BeanCount: 120, Folds: 1, USDToBRL: 5})
	require.NoError(t, err)
	doubleBeans, err := Calculate(Input{Variant: Basic, BeanCount: 240, Folds: 1, USDToBRL: 5})
	require.NoError(t, err)
	tripleFolds, err := Calculate(Input{Variant: Basic, BeanCount: 120, Folds: 3, USDToBRL: 5})
	require.NoError(t, err)

	assert.InDelta(t, one.GallonsNeeded*2, doubleBeans.GallonsNeeded, tolerance)
	assert.InDelta(t, one.GallonsNeeded/3, tripleFolds.GallonsNeeded, tolerance)
}

func TestCalculate_VolumeConsistency(t *testing.T) {
	for beans := 1; beans <= 2000; beans += 97 {
		for _, folds := range []int{1, 2, 3, 7} {
			res, err := Calculate(Input{Variant: Basic, BeanCount: beans, Folds: folds, USDToBRL: 4.9})
			require.NoError(t, err)

			assert.InDelta(t, res.FinalVolumeML, res.AlcoholVolumeML+res.WaterVolumeML, tolerance)
			assert.InDelta(t, OuncesPerGallon/MLPerGallon, res.FinalVolumeOz/res.FinalVolumeML, tolerance)
		}
	}
}

func TestCalculate_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		calc  *Calculator
		in    Input
		field string
	}{
		{"zero folds", New(), Input{Variant: Basic, BeanCount: 10, Folds: 0, USDToBRL: 5}, FieldFolds},
		{"negative folds", New(), Input{Variant: Priced, BeanCount: 10, Folds: -2, USDToBRL: 5}, FieldFolds},
		{"negative beans", New(), Input{Variant: Basic, BeanCount: -1, Folds: 1, USDToBRL: 5}, FieldBeanCount},
		{"negative base price", New(), Input{Variant: Basic, BeanCount: 1, Folds: 1, BasePricePerOzUSD: Price(-0.5), USDToBRL: 5}, FieldBasePrice},
		{"zero usd rate", New(), Input{Variant: Basic, BeanCount: 1, Folds: 1}, FieldUSDToBRL},
		{"usd rate below minimum", New(WithMinRate(1)), Input{Variant: Basic, BeanCount: 1, Folds: 1, USDToBRL: 0.5}, FieldUSDToBRL},
		{"missing eur usd rate", New(), Input{Variant: Extended, BeanCount: 1, Folds: 1, USDToBRL: 5, EURToBRL: 6}, FieldEURToUSD},
		{"negative eur brl rate", New(), Input{Variant: Extended, BeanCount: 1, Folds: 1, USDToBRL: 5, EURToUSD: 1.1, EURToBRL: -6}, FieldEURToBRL},
		{"eur brl rate below minimum", New(WithMinRate(1)), Input{Variant: Extended, BeanCount: 1, Folds: 1, USDToBRL: 5, EURToUSD: 1.1, EURToBRL: 0.9}, FieldEURToBRL},
		{"extended spelled in caps still validates eur rates", New(), Input{Variant: "EXTENDED", BeanCount: 1, Folds: 1, USDToBRL: 5}, FieldEURToUSD},
		{"unknown variant", New(), Input{Variant: "deluxe", BeanCount: 1, Folds: 1, USDToBRL: 5}, FieldVariant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.calc.Calculate(tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.field, Field(err))
			assert.Equal(t, Result{}, res)
		})
	}
}

func TestCalculate_FoldMissingFromTable(t *testing.T) {
	_, err := Calculate(Input{Variant: Priced, BeanCount: 10, Folds: 4, USDToBRL: 5})
	require.Error(t, err)

	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, 4, cerr.Folds)
	assert.ErrorIs(t, err, ErrConfiguration)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Equal(t, FieldFolds, Field(err))

	// basic has no fold table
	_, err = Calculate(Input{Variant: Basic, BeanCount: 10, Folds: 4, USDToBRL: 5})
	assert.NoError(t, err)
}

func TestCalculate_VariantNormalized(t *testing.T) {
	res, err := Calculate(Input{Variant: " Extended ", BeanCount: 333, Folds: 2, USDToBRL: 5, EURToUSD: 1.08, EURToBRL: 6})
	require.NoError(t, err)
	assert.Equal(t, Extended, res.Input.Variant)
	assert.Equal(t, 20.0, res.BasePricePerOzUSD)
	require.NotNil(t, res.Costs)
	assert.Len(t, res.CostBreakdown(), 5)

	res, err = Calculate(Input{Variant: "Priced", BeanCount: 333, Folds: 2, USDToBRL: 5})
	require.NoError(t, err)
	assert.Equal(t, Priced, res.Input.Variant)
	assert.Equal(t, 20.0, res.BasePricePerOzUSD)

	_, err = Calculate(Input{Variant: "Priced", BeanCount: 10, Folds: 9, USDToBRL: 5})
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestCalculate_EURToUSDBelowMinimumRate(t *testing.T) {
	res, err := New(WithMinRate(1)).Calculate(Input{
		Variant: Extended, BeanCount: 333, Folds: 1, USDToBRL: 5, EURToUSD: 0.98, EURToBRL: 5.2,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Costs)
	assert.InDelta(t, res.Costs.CultivationSpaceHa*GreenVanillaMinEUR*0.98, res.Costs.ProducerCostMinUSD, tolerance)
}

func TestWorksheet_Order(t *testing.T) {
	res, err := Calculate(Input{Variant: Extended, BeanCount: 30, Folds: 1, USDToBRL: 5, EURToUSD: 1, EURToBRL: 6})
	require.NoError(t, err)

	rows := res.Worksheet()
	require.Len(t, rows, 20)
	assert.Equal(t, "Beans (count)", rows[0].Label)
	assert.Equal(t, 30.0, rows[0].Value)
	assert.Equal(t, "Added Value (USD)", rows[12].Label)
	assert.Equal(t, "Curing Space (ha)", rows[19].Label)

	basic, err := Calculate(Input{Variant: Basic, BeanCount: 30, Folds: 1, USDToBRL: 5})
	require.NoError(t, err)
	assert.Len(t, basic.Worksheet(), 13)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 337.87, Round2(337.8656168256401))
	assert.Equal(t, 0.0, Round2(0.004))
	assert.Equal(t, 1.01, Row{Value: 1.005000001}.Rounded())
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Extended ")
	require.NoError(t, err)
	assert.Equal(t, Extended, v)

	_, err = ParseVariant("premium")
	assert.ErrorIs(t, err, ErrValidation)
}
