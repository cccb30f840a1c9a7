package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/internal/matching"
	"github.com/getmockd/contractd/pkg/contract"
)

var (
	verifyName     string
	verifyResponse string
	verifyMessage  string
)

var verifyCmd = &cobra.Command{
	Use:   "verify [files|dirs|globs...]",
	Short: "Verify a recorded response or message against a contract",
	Long: `Verify a recorded producer response or output message against the
test side of a contract.

The response file is JSON:

  {"status": 200, "headers": {"Content-Type": "application/json"}, "body": {...}}

The message file is JSON:

  {"destination": "shipments", "headers": {...}, "body": {...}}

A string body is used as is, any other body is compared as JSON.`,
	Example: `  contractd verify contracts/fraud.yml --response recorded.json
  contractd verify contracts --name order_shipped --message message.json`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&verifyName, "name", "", "Name of the contract to verify against")
	verifyCmd.Flags().StringVar(&verifyResponse, "response", "", "JSON file holding the recorded response")
	verifyCmd.Flags().StringVar(&verifyMessage, "message", "", "JSON file holding the recorded output message")
	verifyCmd.MarkFlagsMutuallyExclusive("response", "message")
	verifyCmd.MarkFlagsOneRequired("response", "message")
}

type verifyOutput struct {
	Contract   string              `json:"contract"`
	Satisfied  bool                `json:"satisfied"`
	Mismatches []matching.Mismatch `json:"mismatches"`
}

func runVerify(cmd *cobra.Command, args []string) error {
	contracts, err := loadContracts(args)
	if err != nil {
		return err
	}

	var (
		c      *contract.Contract
		misses []matching.Mismatch
	)
	if verifyResponse != "" {
		c, err = selectContract(contracts, verifyName, func(c *contract.Contract) bool { return c.Response() != nil })
		if err != nil {
			return err
		}
		if c.Response() == nil {
			return fmt.Errorf("contract %q has no response", c.Name())
		}
		actual, err := readResponse(verifyResponse)
		if err != nil {
			return err
		}
		misses = matching.VerifyResponse(c.Response(), actual)
	} else {
		c, err = selectContract(contracts, verifyName, func(c *contract.Contract) bool { return c.OutputMessage() != nil })
		if err != nil {
			return err
		}
		if c.OutputMessage() == nil {
			return fmt.Errorf("contract %q has no output message", c.Name())
		}
		msg, err := readMessage(verifyMessage)
		if err != nil {
			return err
		}
		misses = matching.VerifyOutputMessage(c.OutputMessage(), msg)
	}

	logger.Debug("verified", "contract", c.Name(), "mismatches", len(misses))
	out := verifyOutput{Contract: c.Name(), Satisfied: len(misses) == 0, Mismatches: misses}
	if out.Mismatches == nil {
		out.Mismatches = []matching.Mismatch{}
	}
	if err := printResult(cmd, out, func(w io.Writer) {
		if out.Satisfied {
			fmt.Fprintf(w, "%s: satisfied\n", c.Name())
			return
		}
		fmt.Fprintf(w, "%s: %d mismatch(es)\n", c.Name(), len(misses))
		for _, m := range misses {
			fmt.Fprintf(w, "  - %s\n", m)
		}
	}); err != nil {
		return err
	}

	if len(misses) > 0 {
		return fmt.Errorf("verification failed with %d mismatch(es)", len(misses))
	}
	return nil
}

type recordedResponse struct {
	Status  int             `json:"status"`
	Headers map[string]any  `json:"headers"`
	Body    json.RawMessage `json:"body"`
}

type recordedMessage struct {
	Destination string          `json:"destination"`
	Headers     map[string]any  `json:"headers"`
	Body        json.RawMessage `json:"body"`
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func readResponse(path string) (matching.Actual, error) {
	var r recordedResponse
	if err := readJSONFile(path, &r); err != nil {
		return matching.Actual{}, err
	}
	header := http.Header{}
	for name, v := range r.Headers {
		values, err := headerValues(v)
		if err != nil {
			return matching.Actual{}, fmt.Errorf("%s: header %s: %w", path, name, err)
		}
		for _, s := range values {
			header.Add(name, s)
		}
	}
	body, err := rawBody(r.Body)
	if err != nil {
		return matching.Actual{}, fmt.Errorf("%s: %w", path, err)
	}
	return matching.Actual{Status: r.Status, Header: header, Body: body}, nil
}

func readMessage(path string) (matching.Message, error) {
	var m recordedMessage
	if err := readJSONFile(path, &m); err != nil {
		return matching.Message{}, err
	}
	body, err := rawBody(m.Body)
	if err != nil {
		return matching.Message{}, fmt.Errorf("%s: %w", path, err)
	}
	return matching.Message{Destination: m.Destination, Headers: m.Headers, Body: body}, nil
}

func headerValues(v any) ([]string, error) {
	switch x := v.(type) {
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, errors.New("values must be strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return []string{fmt.Sprint(x)}, nil
	}
}

// rawBody returns a JSON string body unquoted and any other body as its
// JSON text.
func rawBody(raw json.RawMessage) ([]byte, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("body: %w", err)
		}
		return []byte(s), nil
	}
	return raw, nil
}
