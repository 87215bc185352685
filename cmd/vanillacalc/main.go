// Package main is the vanillacalc command line calculator.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "vanillacalc",
		Short: "Vanilla extract pricing worksheet",
		Long: `vanillacalc converts a count of vanilla beans and a fold strength into the
extract pricing worksheet: bean weight, alcohol and water volumes, final volume,
prices in USD and BRL and, for the extended variant, land, curing and producer
costs.

Flags can also be set through VANILLA_* environment variables or a vanilla.yaml
config file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default: ./vanilla.yaml or ~/.config/vanilla/vanilla.yaml)")
	root.PersistentFlags().Bool("verbose", false, "log calculation details to stderr")

	root.AddCommand(newCalcCmd(v))
	root.AddCommand(newFoldsCmd())
	root.AddCommand(newMigrateCmd(v))
	return root
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("vanilla")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "vanilla"))
		}
	}

	v.SetEnvPrefix("VANILLA")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}
