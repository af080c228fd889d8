package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/astrogator/voyager/internal/config"
	"github.com/astrogator/voyager/internal/store"
	"github.com/astrogator/voyager/internal/tui"
	"github.com/astrogator/voyager/internal/ui"
)

var replayCmd = &cobra.Command{
	Use:   "replay [run-id]",
	Short: "List archived runs, or replay one by id",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runReplay,
}

func init() {
	replayCmd.Flags().BoolP("graphics", "g", false, "open the playback viewer instead of printing frames")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
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

	if len(args) == 0 {
		return listRuns(ctx, st)
	}
	return replayRun(ctx, cmd, st, args[0])
}

func listRuns(ctx context.Context, st *store.Store) error {
	runs, err := st.Runs(ctx)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no archived runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWORLD\tK\tSTATUS\tCOST\tSTEPS\tEXPANDED\tWHEN")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%.3f\t%d\t%s\t%s\n",
			r.ID, r.World, r.K, r.Status, r.Cost, r.Steps,
			humanize.Comma(int64(r.Expanded)),
			humanize.Time(r.CreatedAt))
	}
	return w.Flush()
}

func replayRun(ctx context.Context, cmd *cobra.Command, st *store.Store, id string) error {
	meta, err := st.Run(ctx, id)
	if err != nil {
		return err
	}
	frames, err := st.Frames(ctx, id)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames (status %s)", id, meta.Status)
	}

	if graphics, _ := cmd.Flags().GetBool("graphics"); graphics {
		return tui.Run(meta.World, frames)
	}
	for i, frame := range frames {
		fmt.Fprintln(os.Stdout, ui.FrameLine(i, frame))
	}
	return nil
}
