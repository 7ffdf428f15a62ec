package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

// NewAddCommand creates the add command. Multiple args are joined with spaces.
func NewAddCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME...",
		Short: "Create an item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			if strings.TrimSpace(name) == "" {
				return &ExitError{Code: ExitUsageError, Err: errors.New("name is required")}
			}
			item, err := opts.client().CreateItem(cmd.Context(), name)
			if err != nil {
				return classify(err)
			}
			out := &output{format: opts.Format, w: cmd.OutOrStdout()}
			return out.item(item)
		},
	}
}
