// Package cmd wires the voyager CLI: cobra commands over the planning
// engine, with viper-layered configuration.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "voyager",
	Short: "Relativistic motion planner for a single spacecraft",
	Long: `Voyager plans a thrust sequence that collects artifacts in a 2D
universe of gravitating bodies, timed wormholes, and relativistic time
dilation. Worlds are described in TOML files; runs can be streamed,
archived, and replayed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .voyager.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose diagnostics")
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".voyager")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("VOYAGER")
	viper.AutomaticEnv()

	// It's fine if no config file is found; we use defaults.
	_ = viper.ReadInConfig()

	if v, _ := rootCmd.Flags().GetBool("verbose"); v || viper.GetBool("verbose") {
		viper.Set("verbose", true)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
}
