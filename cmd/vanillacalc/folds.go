package main

import (
	"fmt"

	"vanilla-bot/internal/calculator"

	"github.com/spf13/cobra"
)

func newFoldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "folds",
		Short: "List the base extract price per fold level",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, f := range calculator.Folds() {
				p, _ := calculator.FoldPrice(f)
				fmt.Fprintf(out, "%d-fold\t%.2f USD/oz\t%.2f g beans/gal\n", f, p, calculator.WeightPerGallon1FoldG*float64(f))
			}
			return nil
		},
	}
}
