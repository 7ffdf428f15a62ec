// Package cli implements itemctl, a terminal client for the item API.
package cli

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ghuser/itemboard/services/item/application/client"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	APIURL string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// Exit codes for itemctl.
const (
	ExitSuccess    = 0
	ExitFailure    = 1 // API unreachable or answered 5xx
	ExitUsageError = 2 // rejected input, e.g. blank name
)

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// GetExitCode returns ExitFailure for errors that carry no code.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// NewRootCommand creates the itemctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	defaultURL := os.Getenv("API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:3001"
	}

	cmd := &cobra.Command{
		Use:           "itemctl",
		Short:         "List and add items on an item board",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return &ExitError{Code: ExitUsageError, Err: fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", defaultURL, "base URL of the item API")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))

	return cmd
}

func (o *RootOptions) client() *client.Client {
	return client.New(o.APIURL)
}

// classify maps an API failure onto an exit code. A 400 means the server
// rejected the input.
func classify(err error) error {
	var ne *client.NetworkError
	if errors.As(err, &ne) && ne.StatusCode >= 400 && ne.StatusCode < 500 {
		return &ExitError{Code: ExitUsageError, Err: err}
	}
	return &ExitError{Code: ExitFailure, Err: err}
}
