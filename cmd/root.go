package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lc-reconcile",
		Short: "OpenRefine reconciliation service for the Library of Congress suggest API",
		Long: `lc-reconcile matches free-text headings against Library of Congress
authority files and vocabularies (LCNAF, LCSH, LCGFT, TGM, and others).

It implements the OpenRefine reconciliation protocol on top of the
id.loc.gov suggest2 API: each query is resolved to a vocabulary, sent
upstream, and the returned labels are fuzzy-scored and ranked against
the input text.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
