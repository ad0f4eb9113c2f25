package cmd

import (
	"encoding/json"
	"log/slog"
	"os"
	"time"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/hcluster"
	"github.com/spf13/cobra"
)

func newHClusterCommand(f *flags) *cobra.Command {
	command := cobra.Command{
		Use:   "hcluster <file>",
		Short: "Print the hierarchical clustering tree of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			fn, err := distance.Lookup(f.Distance)
			if err != nil {
				return err
			}
			data, labels, err := f.load(args[0])
			if err != nil {
				return err
			}

			slog.Info("Clustering",
				slog.String("file", args[0]),
				slog.String("dist", f.Distance),
				slog.Int("rows", len(data)),
				slog.Bool("columns", f.Columns))
			trainer := hcluster.NewTrainer(fn,
				hcluster.WithConcurrency(f.concurrency()),
				hcluster.WithProgress(max(1, len(data)/10), func(done, total int) {
					slog.Debug("Merging", slog.Int("merged", done), slog.Int("total", total))
				}))
			root, err := trainer.Fit(data)
			if err != nil {
				return err
			}
			if err := hcluster.Fprint(cmd.OutOrStdout(), root, labels); err != nil {
				return err
			}

			if f.Layout != "" {
				if err := writeLayout(f.Layout, hcluster.Layout(root, hcluster.LayoutOptions{})); err != nil {
					return err
				}
				slog.Info("Layout written", slog.String("out", f.Layout))
			}
			slog.Info("Clustering completed",
				slog.Int("height", root.Height()),
				slog.Float64("depth", root.Depth()),
				slog.Duration("took", time.Since(now)))
			return nil
		},
	}
	command.Flags().StringVar(&f.Layout, "layout", f.Layout, "Write the dendrogram geometry as JSON to this file")
	return &command
}

func writeLayout(path string, d hcluster.Drawing) error {
	o, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err := o.Close()
		if err != nil {
			slog.Error("Error closing layout file",
				slog.String("out", path),
				slog.Any("err", err))
		}
	}()
	enc := json.NewEncoder(o)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
