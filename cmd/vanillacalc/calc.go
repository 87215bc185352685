package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"vanilla-bot/internal/calculator"
	"vanilla-bot/internal/report"
	"vanilla-bot/pkg/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func newCalcCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate the extract worksheet",
		Long: `calc runs one calculation and prints the worksheet rounded to cents.

Variants:
  basic     base price per ounce from --base-price (default: 1-fold price)
  priced    base price per ounce from the fold table (folds 1-3)
  extended  priced plus cultivation land, curing space and producer costs`,
		Example: `  vanillacalc calc --beans 333 --folds 1 --base-price 1 --usd-brl 5
  vanillacalc calc --variant extended --beans 333 --folds 2 --eur-usd 1.08 --eur-brl 6 --xlsx out.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, v)
		},
	}

	cmd.Flags().String("variant", "basic", "worksheet variant: basic, priced or extended")
	cmd.Flags().Int("beans", 333, "number of vanilla beans")
	cmd.Flags().Int("folds", 1, "fold strength of the extract")
	cmd.Flags().Float64("base-price", 1.0, "base extract price per ounce in USD (basic only)")
	cmd.Flags().Float64("usd-brl", 5.0, "USD to BRL exchange rate")
	cmd.Flags().Float64("eur-brl", 6.0, "EUR to BRL exchange rate (extended only)")
	cmd.Flags().Float64("eur-usd", 1.08, "EUR to USD exchange rate (extended only)")
	cmd.Flags().Float64("min-rate", 1.0, "lowest accepted USD→BRL and EUR→BRL rate")
	cmd.Flags().Bool("json", false, "print the full result as JSON")
	cmd.Flags().String("xlsx", "", "also write the worksheet to this Excel file")

	_ = v.BindPFlags(cmd.Flags())
	return cmd
}

func runCalc(cmd *cobra.Command, v *viper.Viper) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := "warn"
	if verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		return err
	}
	defer log.Sync()

	variant, err := calculator.ParseVariant(v.GetString("variant"))
	if err != nil {
		return err
	}

	in := calculator.Input{
		Variant:   variant,
		BeanCount: v.GetInt("beans"),
		Folds:     v.GetInt("folds"),
		USDToBRL:  v.GetFloat64("usd-brl"),
		EURToBRL:  v.GetFloat64("eur-brl"),
		EURToUSD:  v.GetFloat64("eur-usd"),
	}
	if v.IsSet("base-price") {
		in.BasePricePerOzUSD = calculator.Price(v.GetFloat64("base-price"))
	}

	res, err := calculator.New(calculator.WithMinRate(v.GetFloat64("min-rate"))).Calculate(in)
	if err != nil {
		return err
	}

	log.Debug("Calculation completed",
		zap.String("variant", variant.String()),
		zap.Int("beans", in.BeanCount),
		zap.Int("folds", in.Folds),
		zap.Float64("price_usd", res.PriceUSD))

	if path := v.GetString("xlsx"); path != "" {
		if err := report.SaveWorksheet(path, res); err != nil {
			return err
		}
		log.Debug("Worksheet written", zap.String("path", path))
	}

	out := cmd.OutOrStdout()
	if v.GetBool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	return printResult(out, res)
}

func printResult(w io.Writer, res calculator.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	printRows(tw, res.Worksheet())
	if breakdown := res.CostBreakdown(); breakdown != nil {
		fmt.Fprintln(tw)
		printRows(tw, breakdown)
	}
	return tw.Flush()
}

func printRows(w io.Writer, rows []calculator.Row) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%12.2f\n", row.Label, row.Rounded())
	}
}
