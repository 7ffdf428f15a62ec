package cli

import (
	"github.com/spf13/cobra"
)

// NewListCommand creates the list command.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all items, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items, err := opts.client().ListItems(cmd.Context())
			if err != nil {
				return classify(err)
			}
			out := &output{format: opts.Format, w: cmd.OutOrStdout()}
			return out.items(items)
		},
	}
}
