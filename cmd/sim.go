package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/astrogator/voyager/internal/config"
	"github.com/astrogator/voyager/internal/engine"
	"github.com/astrogator/voyager/internal/store"
	"github.com/astrogator/voyager/internal/telemetry"
	"github.com/astrogator/voyager/internal/tui"
	"github.com/astrogator/voyager/internal/ui"
	"github.com/astrogator/voyager/internal/world"
	"github.com/astrogator/voyager/internal/worldfile"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Plan a run for a world file and stream its frames",
	RunE:  runSim,
}

func init() {
	simCmd.Flags().StringP("world", "w", "", "world TOML file to load")
	simCmd.Flags().UintP("round", "r", 0, "round label recorded with the run")
	simCmd.Flags().BoolP("graphics", "g", false, "open the playback viewer after planning")
	simCmd.Flags().Bool("record", false, "archive the run in the SQLite store")
	simCmd.Flags().String("telemetry", "", "append JSONL telemetry to this file")
	simCmd.Flags().Bool("watch", false, "rerun whenever the world file changes")
	_ = simCmd.MarkFlagRequired("world")

	rootCmd.AddCommand(simCmd)
}

// simOptions collects the resolved sim flags.
type simOptions struct {
	worldPath     string
	round         uint
	graphics      bool
	record        bool
	telemetryPath string
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	printer := ui.New()

	opts := simOptions{}
	opts.worldPath, _ = cmd.Flags().GetString("world")
	opts.round, _ = cmd.Flags().GetUint("round")
	opts.graphics, _ = cmd.Flags().GetBool("graphics")
	opts.record, _ = cmd.Flags().GetBool("record")
	opts.telemetryPath, _ = cmd.Flags().GetString("telemetry")
	if opts.telemetryPath == "" {
		opts.telemetryPath = cfg.TelemetryPath
	}
	if cfg.Graphics {
		opts.graphics = true
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return simOnce(cfg, printer, opts)
	}

	// Watch mode reruns the full plan on every change; each run is an
	// independent computation, not online replanning.
	if err := simOnce(cfg, printer, opts); err != nil {
		printer.Error(err.Error())
	}
	return watchWorld(cfg, printer, opts)
}

// simOnce runs one complete plan-stream-record cycle.
func simOnce(cfg config.Config, printer *ui.Printer, opts simOptions) error {
	doc, err := worldfile.Load(opts.worldPath)
	if err != nil {
		return err
	}
	engCfg, err := doc.EngineConfig()
	if err != nil {
		return err
	}

	name := doc.Name
	if name == "" {
		name = filepath.Base(opts.worldPath)
	}
	printer.WorldLoaded(name, len(engCfg.World.Bodies), len(engCfg.World.Wormholes), len(engCfg.World.Artifacts), engCfg.K)

	eng, err := engine.New(engCfg)
	if err != nil {
		return err
	}
	defer eng.Shutdown()

	var emitter *telemetry.Emitter
	if opts.telemetryPath != "" {
		emitter, err = telemetry.NewEmitter(opts.telemetryPath)
		if err != nil {
			return err
		}
		defer emitter.Close()
	}

	_ = emitter.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindSearchStart, Data: map[string]any{
		"world": name, "k": engCfg.K, "round": opts.round,
	}})

	started := time.Now()
	err = eng.Compute()
	elapsed := time.Since(started)

	if err != nil {
		printer.Failed(err, elapsed)
		_ = emitter.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindRunFailed, Data: map[string]any{
			"world": name, "error": err.Error(),
		}})
		if opts.record {
			if recErr := recordRun(cfg, printer, name, engCfg.K, store.StatusFailed, 0, 0, nil); recErr != nil {
				printer.Error(recErr.Error())
			}
		}
		return err
	}

	result := eng.Result()
	printer.Solved(len(result.Path), result.TotalCost, result.Expanded, elapsed)
	_ = emitter.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindSearchDone, Data: map[string]any{
		"world": name, "steps": len(result.Path), "cost": result.TotalCost, "expanded": result.Expanded,
	}})

	frames, err := drainFrames(eng)
	if err != nil {
		return err
	}
	for i, frame := range frames {
		if !opts.graphics {
			printer.Frame(i, frame)
		}
		_ = emitter.Emit(telemetry.Event{Timestamp: time.Now(), Kind: telemetry.KindFrame, Data: frame})
	}

	last := frames[len(frames)-1]
	printer.Summary(ui.SummaryData{
		World:     name,
		K:         engCfg.K,
		Steps:     len(frames),
		TotalCost: result.TotalCost,
		Expanded:  result.Expanded,
		Collected: len(last.Ship.Collected),
		FuelLeft:  last.Ship.Fuel,
		Elapsed:   elapsed,
	})

	if opts.record {
		if err := recordRun(cfg, printer, name, engCfg.K, store.StatusSolved, result.TotalCost, result.Expanded, frames); err != nil {
			return err
		}
	}

	if opts.graphics {
		return tui.Run(name, frames)
	}
	return nil
}

// drainFrames steps the engine to completion.
func drainFrames(eng *engine.Engine) ([]world.Frame, error) {
	var frames []world.Frame
	for {
		frame, err := eng.Step()
		if errors.Is(err, engine.ErrRunComplete) {
			return frames, nil
		}
		if err != nil {
			return nil, err
		}
		frames = append(frames, frame)
	}
}

// recordRun archives a run in the configured store.
func recordRun(cfg config.Config, printer *ui.Printer, worldName string, k int, status string, cost float64, expanded int, frames []world.Frame) error {
	path, err := archivePath(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()
	st, err := store.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.SaveRun(ctx, worldName, k, status, cost, expanded, frames)
	if err != nil {
		return err
	}
	printer.Recorded(id)
	return nil
}

// archivePath resolves the store path under the data dir.
func archivePath(cfg config.Config) (string, error) {
	path := cfg.ArchivePath
	if !filepath.IsAbs(path) {
		path = filepath.Join(cfg.DataDir, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return path, nil
}

// watchWorld blocks, rerunning the sim whenever the world file is written.
func watchWorld(cfg config.Config, printer *ui.Printer, opts simOptions) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file atomically,
	// which would orphan a watch on the file itself.
	dir := filepath.Dir(opts.worldPath)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	target := filepath.Clean(opts.worldPath)
	printer.Info("watching " + target + " — ctrl-c to stop")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			printer.WatchTriggered(target)
			if err := simOnce(cfg, printer, opts); err != nil {
				printer.Error(err.Error())
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Debug("watch error", "err", err)
		}
	}
}
