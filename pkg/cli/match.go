package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/internal/matching"
	"github.com/getmockd/contractd/pkg/cli/internal/flags"
	"github.com/getmockd/contractd/pkg/cli/internal/output"
	"github.com/getmockd/contractd/pkg/cli/internal/parse"
)

var (
	matchMethod   string
	matchURL      string
	matchHeaders  flags.StringSlice
	matchBody     string
	matchBodyFile string
	matchMinScore int
)

var matchCmd = &cobra.Command{
	Use:   "match [files|dirs|globs...]",
	Short: "Find the contract whose stub side matches a request",
	Long: `Find the contract whose stub side matches a request.

The request is matched the way a stub server would: method, URL, query
parameters, headers, cookies and body are compared with the consumer-side
values and patterns of every contract. When nothing matches, the closest
contracts are listed with the fields that did not match.`,
	Example: `  contractd match contracts -X PUT --url /fraudcheck \
    -H 'Content-Type: application/json' \
    --body '{"clientId": "1234567890", "loanAmount": 99999}'`,
	RunE: runMatch,
}

func init() {
	rootCmd.AddCommand(matchCmd)
	f := matchCmd.Flags()
	f.StringVarP(&matchMethod, "method", "X", http.MethodGet, "Request method")
	f.StringVar(&matchURL, "url", "/", "Request URL (path and query)")
	f.VarP(&matchHeaders, "header", "H", "Request header as name:value (repeatable)")
	f.StringVarP(&matchBody, "body", "d", "", "Request body")
	f.StringVar(&matchBodyFile, "body-file", "", "Read the request body from a file")
	f.IntVar(&matchMinScore, "min-score", 50, "Minimum match percentage for near misses")
	matchCmd.MarkFlagsMutuallyExclusive("body", "body-file")
}

type matchOutput struct {
	Matched    bool                `json:"matched"`
	Contract   string              `json:"contract,omitempty"`
	Result     *matching.Result    `json:"result,omitempty"`
	NearMisses []matching.NearMiss `json:"nearMisses,omitempty"`
}

func runMatch(cmd *cobra.Command, args []string) error {
	contracts, err := loadContracts(args)
	if err != nil {
		return err
	}

	body := []byte(matchBody)
	if matchBodyFile != "" {
		if body, err = os.ReadFile(matchBodyFile); err != nil {
			return err
		}
	}
	header, err := parse.Header(matchHeaders)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(strings.ToUpper(matchMethod), matchURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header = header

	var out matchOutput
	if c, result := matching.Best(contracts, req, body); c != nil {
		out = matchOutput{Matched: true, Contract: c.Name(), Result: result}
	} else {
		out.NearMisses = matching.NearMisses(contracts, req, body, matchMinScore)
	}
	logger.Debug("request matched", "method", req.Method, "url", matchURL, "matched", out.Matched, "nearMisses", len(out.NearMisses))

	if err := printResult(cmd, out, func(w io.Writer) {
		if out.Matched {
			fmt.Fprintf(w, "%s (score %d/%d)\n", out.Contract, out.Result.Score, out.Result.MaxPossibleScore)
			return
		}
		fmt.Fprintln(w, "No contract matches the request.")
		if len(out.NearMisses) == 0 {
			return
		}
		fmt.Fprintln(w, "Closest contracts:")
		t := output.Table(w)
		for _, nm := range out.NearMisses {
			fmt.Fprintf(t, "  %s\t%d%%\t%s\n", nm.Contract, nm.Result.Percentage(), nm.Reason)
		}
		_ = t.Flush()
	}); err != nil {
		return err
	}

	if !out.Matched {
		return errNoMatch
	}
	return nil
}
