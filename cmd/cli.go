package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/mawngo/pcluster/internal/dataset"
	"github.com/mawngo/pcluster/internal/distance"
	"github.com/mawngo/pcluster/internal/matrix"
	"github.com/phsym/console-slog"
	"github.com/spf13/cobra"
)

func Init() *slog.LevelVar {
	level := &slog.LevelVar{}
	logger := slog.New(
		console.NewHandler(os.Stderr, &console.HandlerOptions{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	slog.SetDefault(logger)
	cobra.EnableCommandSorting = false
	return level
}

type CLI struct {
	command *cobra.Command
}

// NewCLI create new CLI instance and set up application config.
func NewCLI() *CLI {
	level := Init()

	f := flags{
		Distance:    "pearson",
		Concurrency: max(1, runtime.NumCPU()/2),
		K:           4,
		Round:       100,
		Engine:      engineLloyd,
		Delta:       0.01,
		From:        2,
		To:          12,
	}

	command := cobra.Command{
		Use:   "pcluster",
		Short: "Cluster the rows of tab separated tables",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			debug, err := cmd.Flags().GetBool("debug")
			if err != nil {
				return err
			}
			if debug {
				level.Set(slog.LevelDebug)
			}
			if f.Config != "" {
				return applyConfig(cmd.Flags(), f.Config)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	command.PersistentFlags().StringVar(&f.Config, "config", f.Config, "YAML file with flag values, flags given on the command line win")
	command.PersistentFlags().StringVar(&f.Distance, "dist", f.Distance, fmt.Sprintf("Distance measurement %v", distance.Names()))
	command.PersistentFlags().IntVarP(&f.Concurrency, "concurrency", "t", f.Concurrency, "Maximum goroutines used computing distances [0=auto]")
	command.PersistentFlags().BoolVar(&f.Columns, "columns", f.Columns, "Cluster the columns instead of the rows")
	command.PersistentFlags().Bool("debug", false, "Enable debug mode")

	command.AddCommand(
		newHClusterCommand(&f),
		newKMeansCommand(&f),
		newSweepCommand(&f),
	)
	return &CLI{&command}
}

type flags struct {
	Config      string
	Distance    string
	Concurrency int
	Columns     bool
	Layout      string
	K           int
	Round       int
	Seed        int64
	Engine      string
	Delta       float64
	From        int
	To          int
	Output      string
}

func (f *flags) concurrency() int {
	if f.Concurrency < 1 {
		return runtime.NumCPU()
	}
	return f.Concurrency
}

// load reads the table at path and returns the matrix to cluster with the label of each of its rows.
func (f *flags) load(path string) (matrix.Matrix, []string, error) {
	now := time.Now()
	table, err := dataset.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("Loaded table",
		slog.String("path", path),
		slog.Int("rows", len(table.RowNames)),
		slog.Int("cols", len(table.ColNames)),
		slog.Duration("took", time.Since(now)))

	if !f.Columns {
		return table.Data, table.RowNames, nil
	}
	data, err := table.Data.Transpose()
	if err != nil {
		return nil, nil, err
	}
	return data, table.ColNames, nil
}

func (cli *CLI) Execute() error {
	err := cli.command.Execute()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
	}
	return err
}
