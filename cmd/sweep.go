package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mawngo/pcluster/internal/plot"
	"github.com/spf13/cobra"
)

func newSweepCommand(f *flags) *cobra.Command {
	command := cobra.Command{
		Use:   "sweep <file>",
		Short: "Report the kmeans total distance for a range of cluster counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			data, _, err := f.load(args[0])
			if err != nil {
				return err
			}
			trainer, err := f.kmeansTrainer()
			if err != nil {
				return err
			}

			points, err := trainer.Sweep(data, f.From, f.To)
			if err != nil {
				return err
			}
			for _, p := range points {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%g\n", p.K, p.TotalDistance); err != nil {
					return err
				}
			}

			if f.Output != "" {
				o, err := os.Create(f.Output)
				if err != nil {
					return err
				}
				err = plot.Elbow(o, points)
				if cerr := o.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("write chart %s: %w", f.Output, err)
				}
				slog.Info("Chart written", slog.String("out", f.Output))
			}
			slog.Info("Sweep completed",
				slog.Int("from", f.From),
				slog.Int("to", f.To),
				slog.Duration("took", time.Since(now)))
			return nil
		},
	}

	command.Flags().IntVar(&f.From, "from", f.From, "Smallest cluster count")
	command.Flags().IntVar(&f.To, "to", f.To, "Cluster count to stop before")
	command.Flags().IntVarP(&f.Round, "round", "i", f.Round, "Maximum number of kmeans iterations")
	command.Flags().Int64Var(&f.Seed, "seed", f.Seed, "Seed of the initial centroids [0=random]")
	command.Flags().StringVarP(&f.Output, "out", "o", f.Output, "Write a PNG chart of the sweep to this file")
	command.Flags().SortFlags = false
	return &command
}
