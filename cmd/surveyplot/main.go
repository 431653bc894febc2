// Package main provides the CLI entry point for surveyplot.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/config"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

var (
	verbose bool
	logger  *zap.Logger

	configPath string
	outDir     string
	only       []string
	parallel   int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "surveyplot",
		Short: "Render literature-survey figures from Excel workbooks",
		Long: `surveyplot reads the summary sheets of a survey workbook and writes
heatmaps, stacked or percent-filled bar charts and treemaps as vector PDF.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every pipeline stage")

	runCmd := &cobra.Command{
		Use:   "run [input.xlsx]",
		Short: "Render the reports of a report file, or the built-in survey reports",
		Args:  cobra.MaximumNArgs(1),
		RunE:  run,
	}
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Report file (default: built-in survey reports)")
	runCmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for relative output paths")
	runCmd.Flags().StringSliceVar(&only, "only", nil, "Render only the named reports")
	runCmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "Reports rendered at once")

	sheetsCmd := &cobra.Command{
		Use:   "sheets input.xlsx",
		Short: "List sheets and their detected table ranges",
		Args:  cobra.ExactArgs(1),
		RunE:  sheets,
	}

	rootCmd.AddCommand(runCmd, newRenderCmd(), sheetsCmd)
	rootCmd.AddCommand(newExtractionCmds()...)
	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	file := config.Default()
	if configPath != "" {
		var err error
		if file, err = config.Load(configPath); err != nil {
			return err
		}
	}

	reports, err := file.Select(only...)
	if err != nil {
		return err
	}

	opts := surveyplot.Options{
		Logger:    logger,
		Workbook:  file.Workbook,
		OutputDir: outDir,
		Parallel:  parallel,
	}
	if len(args) == 1 {
		opts.Workbook = args[0]
	}
	if outDir == "" {
		opts.OutputDir = file.OutputDir
	}

	paths, err := surveyplot.GenerateAll(cmd.Context(), reports, opts)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	if err != nil {
		return fmt.Errorf("rendering failed: %w", err)
	}
	return nil
}

func sheets(cmd *cobra.Command, args []string) error {
	f, err := parser.OpenWorkbook(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	infos, err := parser.ListSheets(f)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, s := range infos {
		if s.Range == nil {
			fmt.Fprintf(out, "%s\t(empty)\n", s.Name)
			continue
		}
		fmt.Fprintf(out, "%s\t%s\n", s.Name, parser.FormatRange(*s.Range))
	}
	return nil
}
