package commands

import (
	"fmt"
	"os"

	"github.com/futig/census-agent/internal/pkg/formatter"
	"github.com/spf13/cobra"
)

// NewSummaryCmd creates the summary command
func NewSummaryCmd(opts *rootOptions) *cobra.Command {
	var (
		format  string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "summary <case-id>",
		Short: "Render the stored records of a case",
		Long: `Render the records stored for a case as markdown or PDF.

Records are read from the configured store, or from a running
fulfillment service when --endpoint is set. Output goes to stdout
unless --out is given.

Examples:
  census-cli summary CASE-1a2b3c4d
  census-cli summary CASE-1a2b3c4d --format pdf --out case.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatter.NewFactory().Create(formatter.Format(format))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			r, err := opts.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer r.Close(ctx)

			records, err := r.Records(ctx, args[0])
			if err != nil {
				return err
			}

			summary, err := formatter.NewCaseSummary(args[0], records)
			if err != nil {
				return err
			}

			body, err := f.Format(summary)
			if err != nil {
				return fmt.Errorf("render summary: %w", err)
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return os.WriteFile(outPath, body, 0o644)
		},
	}

	cmd.Flags().StringVar(&format, "format", string(formatter.FormatMarkdown), "Output format: md or pdf")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")

	return cmd
}
