package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files|dirs|globs...]",
	Short: "Validate contract files",
	Long: `Validate contract files without using them.

Each document is checked against the contract file schema, converted and
validated: patterns must compile, sides must match their patterns and every
required section must be present. Without arguments the configured contract
locations are used (default: ./contracts).`,
	Example: `  # Validate every contract under ./contracts
  contractd validate

  # Validate selected files
  contractd validate 'specs/**/*.yml' extra/order.json`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

type validateOutput struct {
	Files     []string `json:"files"`
	Contracts []string `json:"contracts"`
	Errors    []string `json:"errors,omitempty"`
	Valid     bool     `json:"valid"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := discover(args)
	if err != nil {
		return err
	}
	contracts, loadErr := loader().LoadAll(files)

	out := validateOutput{Files: files, Contracts: []string{}, Valid: loadErr == nil}
	for _, c := range contracts {
		out.Contracts = append(out.Contracts, c.Name())
	}
	errs := flattenErrors(loadErr)
	for _, e := range errs {
		out.Errors = append(out.Errors, e.Error())
	}

	if err := printResult(cmd, out, func(w io.Writer) {
		if len(errs) > 0 {
			fmt.Fprintln(w, "Validation failed:")
			for _, e := range out.Errors {
				fmt.Fprintf(w, "  - %s\n", e)
			}
			return
		}
		fmt.Fprintf(w, "%d contract(s) in %d file(s) are valid.\n", len(out.Contracts), len(files))
	}); err != nil {
		return err
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d error(s)", len(errs))
	}
	return nil
}
