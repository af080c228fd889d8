package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/astrogator/voyager/internal/engine"
	"github.com/astrogator/voyager/internal/worldfile"
)

var finalCmd = &cobra.Command{
	Use:   "final",
	Short: "Headless evaluation: plan a world and emit a JSON verdict",
	Long: `Final runs the planner without streaming frames and writes a single
JSON verdict to stdout. The exit code is non-zero when no path exists, so
the command composes with graders and scripts.`,
	RunE: runFinal,
}

func init() {
	finalCmd.Flags().StringP("world", "w", "", "world TOML file to load")
	_ = finalCmd.MarkFlagRequired("world")

	rootCmd.AddCommand(finalCmd)
}

// verdict is the machine-readable outcome of a final evaluation.
type verdict struct {
	World     string  `json:"world"`
	K         int     `json:"k"`
	Solved    bool    `json:"solved"`
	Steps     int     `json:"steps,omitempty"`
	Cost      float64 `json:"cost,omitempty"`
	Collected int     `json:"collected,omitempty"`
	Expanded  int     `json:"expanded"`
	ElapsedMS int64   `json:"elapsed_ms"`
	Error     string  `json:"error,omitempty"`
}

func runFinal(cmd *cobra.Command, args []string) error {
	worldPath, _ := cmd.Flags().GetString("world")

	doc, err := worldfile.Load(worldPath)
	if err != nil {
		return err
	}
	engCfg, err := doc.EngineConfig()
	if err != nil {
		return err
	}
	eng, err := engine.New(engCfg)
	if err != nil {
		return err
	}
	defer eng.Shutdown()

	name := doc.Name
	if name == "" {
		name = filepath.Base(worldPath)
	}
	v := verdict{World: name, K: engCfg.K}

	started := time.Now()
	computeErr := eng.Compute()
	v.ElapsedMS = time.Since(started).Milliseconds()

	if computeErr != nil {
		if !errors.Is(computeErr, engine.ErrNoPath) {
			return computeErr
		}
		v.Error = computeErr.Error()
	} else {
		result := eng.Result()
		last := result.Path[len(result.Path)-1]
		v.Solved = true
		v.Steps = len(result.Path)
		v.Cost = result.TotalCost
		v.Collected = last.State.Collected.Len()
		v.Expanded = result.Expanded
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding verdict: %w", err)
	}
	if !v.Solved {
		return computeErr
	}
	return nil
}
