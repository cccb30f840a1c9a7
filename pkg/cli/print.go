package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/pkg/cli/internal/output"
	"github.com/getmockd/contractd/pkg/config"
)

// printResult outputs data as JSON when --json is set, otherwise calls
// textFn with the command's stdout.
func printResult(cmd *cobra.Command, data any, textFn func(w io.Writer)) error {
	if jsonOutput {
		return output.JSON(cmd.OutOrStdout(), data)
	}
	textFn(cmd.OutOrStdout())
	return nil
}

// flattenErrors expands joined errors into their leaves. A LoadError
// holding several errors becomes one LoadError per error.
func flattenErrors(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flattenErrors(e)...)
		}
		return out
	}
	var le *config.LoadError
	if errors.As(err, &le) && le == err {
		inner := flattenErrors(le.Err)
		if len(inner) > 1 {
			out := make([]error, len(inner))
			for i, e := range inner {
				out[i] = &config.LoadError{Path: le.Path, Document: le.Document, Err: e}
			}
			return out
		}
	}
	return []error{err}
}
