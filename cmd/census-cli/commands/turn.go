package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/futig/census-agent/internal/entity"
	"github.com/spf13/cobra"
)

// NewTurnCmd creates the turn command
func NewTurnCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "turn [event-file]",
		Short: "Fulfill one dialog event",
		Long: `Read one dialog platform event as JSON and print the bot's response.

The event is read from the file argument, or from stdin when the
argument is missing or "-".

Examples:
  census-cli turn event.json
  cat event.json | census-cli turn
  census-cli turn event.json --endpoint http://localhost:8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTurn(cmd, opts, args)
		},
	}

	return cmd
}

func runTurn(cmd *cobra.Command, opts *rootOptions, args []string) error {
	raw, err := readEvent(cmd, args)
	if err != nil {
		return err
	}

	var event entity.LexEvent
	if err := sonic.Unmarshal(raw, &event); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrMalformedEvent, err)
	}

	ctx := cmd.Context()
	r, err := opts.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer r.Close(ctx)

	resp, err := r.Turn(ctx, &event)
	if err != nil {
		return err
	}

	return printJSON(cmd.OutOrStdout(), resp)
}

func readEvent(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	raw, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read event file: %w", err)
	}
	return raw, nil
}

func printJSON(w io.Writer, v any) error {
	out, err := sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
