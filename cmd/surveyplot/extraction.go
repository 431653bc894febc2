package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/config"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/extraction"
	"github.com/ukaji3/surveyplot-go/pkg/surveyplot/parser"
)

var (
	extractionSheet string
	method          string
	bibOutput       string
)

func newExtractionCmds() []*cobra.Command {
	pairsCmd := &cobra.Command{
		Use:   "pairs input.xlsx",
		Short: "List (taxonomy, algorithm) pairs of prioritization primary studies",
		Args:  cobra.ExactArgs(1),
		RunE:  pairs,
	}
	metricsCmd := &cobra.Command{
		Use:   "metrics input.xlsx",
		Short: "List evaluation metrics per method, overall and per taxonomy class",
		Args:  cobra.ExactArgs(1),
		RunE:  metrics,
	}
	metricsCmd.Flags().StringVar(&method, "method", "", "Only prioritization or selection (default: both)")
	sutsCmd := &cobra.Command{
		Use:   "suts input.xlsx",
		Short: "Group primary studies by the origin of their systems under test",
		Args:  cobra.ExactArgs(1),
		RunE:  suts,
	}
	bibCmd := &cobra.Command{
		Use:   "bib input.xlsx",
		Short: "Write every paper of the extraction sheet as a BibTeX entry",
		Args:  cobra.ExactArgs(1),
		RunE:  bib,
	}
	bibCmd.Flags().StringVarP(&bibOutput, "output", "o", "slr.bib", "Output .bib path")

	cmds := []*cobra.Command{pairsCmd, metricsCmd, sutsCmd, bibCmd}
	for _, c := range cmds {
		c.Flags().StringVar(&extractionSheet, "sheet", config.ExtractionSheet, "Data-extraction sheet")
	}
	return cmds
}

func loadPapers(path string) ([]extraction.Paper, error) {
	f, err := parser.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	papers, err := extraction.LoadPapers(f, extractionSheet)
	if err != nil {
		return nil, err
	}
	logger.Debug("papers loaded", zap.String("sheet", extractionSheet), zap.Int("papers", len(papers)))
	return papers, nil
}

func pairs(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(args[0])
	if err != nil {
		return err
	}
	return extraction.WritePairs(cmd.OutOrStdout(), extraction.Pairs(papers))
}

func metrics(cmd *cobra.Command, args []string) error {
	var schemes []*extraction.MetricScheme
	switch method {
	case "":
		schemes = []*extraction.MetricScheme{extraction.PrioritizationMetrics, extraction.SelectionMetrics}
	case extraction.MethodPrioritization:
		schemes = []*extraction.MetricScheme{extraction.PrioritizationMetrics}
	case extraction.MethodSelection:
		schemes = []*extraction.MetricScheme{extraction.SelectionMetrics}
	default:
		return fmt.Errorf("invalid method: %s (must be prioritization or selection)", method)
	}

	papers, err := loadPapers(args[0])
	if err != nil {
		return err
	}
	for _, s := range schemes {
		if err := extraction.WriteMetrics(cmd.OutOrStdout(), extraction.Metrics(papers, s)); err != nil {
			return err
		}
	}
	return nil
}

func suts(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(args[0])
	if err != nil {
		return err
	}
	return extraction.WriteSUTs(cmd.OutOrStdout(), extraction.SUTs(papers))
}

func bib(cmd *cobra.Command, args []string) error {
	papers, err := loadPapers(args[0])
	if err != nil {
		return err
	}

	f, err := os.Create(bibOutput)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	n, err := extraction.WriteBibTeX(f, papers)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Written %d entries to %s\n", n, bibOutput)
	return nil
}
