package cmd

import (
	"github.com/spf13/cobra"
	"github.com/timothy-mendenhall/lc-reconcile-extended/internal/evalcmd"
)

func newEvalCmd() *cobra.Command {
	var opts evalcmd.Options

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure reconciliation accuracy against a labeled dataset",
		Long: `Runs a dataset of labeled headings through the reconciliation pipeline
and reports how often the expected authority URI comes back, and where it
ranks. Datasets are JSONL or Parquet files of
{query, type, expected_uri} records, typically exported from existing
catalog records.`,
		Example: `  # Evaluate the first 100 headings of a dataset
  lc-reconcile eval --dataset headings.parquet --limit 100

  # Full run against a staging host, report to a file
  LC_BASE_URL=https://test.id.loc.gov lc-reconcile eval --dataset headings.jsonl --output report.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalcmd.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.DatasetPath, "dataset", "", "Dataset file (.jsonl or .parquet)")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", "", "Upstream suggest2 host (defaults to LC_BASE_URL, then id.loc.gov)")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write the YAML report to this file instead of stdout")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Evaluate at most this many records (0 = all)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 4, "Concurrent upstream queries")
	_ = cmd.MarkFlagRequired("dataset")

	return cmd
}
