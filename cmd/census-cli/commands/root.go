package commands

import (
	"github.com/spf13/cobra"
)

// rootOptions are the flags shared by every command
type rootOptions struct {
	env      string
	endpoint string
	token    string
}

// NewRootCmd creates the census-cli root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "census-cli",
		Short: "Drive the census survey bot from the command line",
		Long: `Drive the census survey bot from the command line.

Turns run against an in-process bot wired from the environment
configuration, or against a running fulfillment service when
--endpoint is set.

Examples:
  census-cli turn event.json
  census-cli simulate --people 3
  census-cli simulate --endpoint http://localhost:8080
  census-cli summary CASE-1a2b3c4d --format pdf --out case.pdf`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.env, "env", "local", "Environment whose .env file is loaded")
	cmd.PersistentFlags().StringVar(&opts.endpoint, "endpoint", "", "Base URL of a running fulfillment service")
	cmd.PersistentFlags().StringVar(&opts.token, "token", "", "Bearer token sent to --endpoint")

	cmd.AddCommand(
		NewTurnCmd(opts),
		NewSimulateCmd(opts),
		NewSummaryCmd(opts),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
