package cli

import (
	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/pkg/cli/internal/output"
	"github.com/getmockd/contractd/pkg/contract"
)

var sideName string

var stubsCmd = &cobra.Command{
	Use:   "stubs [files|dirs|globs...]",
	Short: "Print the stub-side view of contracts as JSON",
	Long: `Print the stub-side view of contracts as JSON.

The stub side is what a consumer's stub server works with: concrete values
for the response it sends and patterns for the requests it accepts.`,
	Example: `  contractd stubs contracts/fraud.yml
  contractd stubs --name shouldMarkClientAsFraud --seed 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSide(cmd, args, (*contract.Contract).StubSide)
	},
}

var testsCmd = &cobra.Command{
	Use:   "tests [files|dirs|globs...]",
	Short: "Print the test-side view of contracts as JSON",
	Long: `Print the test-side view of contracts as JSON.

The test side is what a producer's generated tests work with: concrete
values for the request they send and patterns for the responses they check.`,
	Example: `  contractd tests contracts/fraud.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSide(cmd, args, (*contract.Contract).TestSide)
	},
}

func init() {
	rootCmd.AddCommand(stubsCmd)
	rootCmd.AddCommand(testsCmd)
	for _, c := range []*cobra.Command{stubsCmd, testsCmd} {
		c.Flags().StringVar(&sideName, "name", "", "Only print the contract with this name")
	}
}

// runSide prints one projection per contract. The output is always JSON.
func runSide(cmd *cobra.Command, args []string, side func(*contract.Contract) map[string]any) error {
	contracts, err := loadContracts(args)
	if err != nil {
		return err
	}

	if sideName != "" {
		c, err := selectContract(contracts, sideName, nil)
		if err != nil {
			return err
		}
		return output.JSON(cmd.OutOrStdout(), side(c))
	}

	views := make([]map[string]any, 0, len(contracts))
	for _, c := range contracts {
		views = append(views, side(c))
	}
	return output.JSON(cmd.OutOrStdout(), views)
}
