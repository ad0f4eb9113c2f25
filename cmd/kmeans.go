package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/kmeans"
	"github.com/spf13/cobra"
)

const (
	engineLloyd  = "lloyd"
	engineMuesli = "muesli"
)

func newKMeansCommand(f *flags) *cobra.Command {
	command := cobra.Command{
		Use:   "kmeans <file>",
		Short: "Split the rows of a table into k clusters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			data, labels, err := f.load(args[0])
			if err != nil {
				return err
			}

			slog.Info("Partitioning",
				slog.String("file", args[0]),
				slog.String("engine", f.Engine),
				slog.Int("k", f.K),
				slog.Int("rows", len(data)))

			var m *kmeans.Model
			switch f.Engine {
			case engineLloyd:
				trainer, err := f.kmeansTrainer()
				if err != nil {
					return err
				}
				m, err = trainer.Fit(data)
				if err != nil {
					return err
				}
			case engineMuesli:
				m, err = kmeans.Partition(data, f.K, f.Delta)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown engine %q, expected %s or %s", f.Engine, engineLloyd, engineMuesli)
			}

			out := cmd.OutOrStdout()
			for i, g := range m.Groups() {
				if _, err := fmt.Fprintf(out, "cluster %d (%d)\n", i, len(g)); err != nil {
					return err
				}
				for _, r := range g {
					if _, err := fmt.Fprintf(out, "  %s\n", labels[r]); err != nil {
						return err
					}
				}
			}
			slog.Info("Partition completed",
				slog.Float64("total", m.TotalDistance()),
				slog.Int("iter", m.Iter()),
				slog.Bool("converged", m.Converged()),
				slog.Duration("took", time.Since(now)))
			return nil
		},
	}

	command.Flags().IntVarP(&f.K, "clusters", "k", f.K, "Number of clusters")
	command.Flags().IntVarP(&f.Round, "round", "i", f.Round, "Maximum number of kmeans iterations")
	command.Flags().Int64Var(&f.Seed, "seed", f.Seed, "Seed of the initial centroids [0=random]")
	command.Flags().StringVar(&f.Engine, "engine", f.Engine, "Kmeans implementation [lloyd,muesli]")
	command.Flags().Float64VarP(&f.Delta, "delta", "d", f.Delta, "Share of rows allowed to change cluster at convergence (muesli engine)")
	command.Flags().SortFlags = false
	return &command
}

func (f *flags) kmeansTrainer() (kmeans.Trainer, error) {
	fn, err := distance.Lookup(f.Distance)
	if err != nil {
		return kmeans.Trainer{}, err
	}
	options := []kmeans.TrainerOption{
		kmeans.WithMaxIterations(f.Round),
		kmeans.WithConcurrency(f.concurrency()),
		kmeans.WithProgress(func(iter int) {
			slog.Debug("Iteration", slog.Int("iter", iter))
		}),
	}
	if f.Seed != 0 {
		options = append(options, kmeans.WithRand(rand.New(rand.NewSource(f.Seed))))
	}
	return kmeans.NewTrainer(f.K, fn, options...), nil
}
