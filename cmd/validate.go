package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrogator/voyager/internal/engine"
	"github.com/astrogator/voyager/internal/worldfile"
)

var validateCmd = &cobra.Command{
	Use:   "validate <world.toml>",
	Short: "Check that a world file parses and constructs a valid engine",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		doc, err := worldfile.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			os.Exit(1)
		}
		cfg, err := doc.EngineConfig()
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			os.Exit(1)
		}
		if _, err := engine.New(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "✓ %s — %d bodies, %d wormholes, %d artifacts, k=%d\n",
			path, len(cfg.World.Bodies), len(cfg.World.Wormholes), len(cfg.World.Artifacts), cfg.K)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
