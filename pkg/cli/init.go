package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/contractd/internal/id"
	"github.com/getmockd/contractd/pkg/config"
)

var (
	initOutput      string
	initForce       bool
	initInteractive bool
	initName        string
	initMethod      string
	initURL         string
	initStatus      int
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter contract file",
	Long: `Create a starter contract file.

The contract is written to contracts/<name>.yml unless --output is given. A
.json output path writes JSON instead of YAML. Without --name a random name
is generated.`,
	Example: `  # Create a contract for GET /health
  contractd init

  # Answer a few questions instead
  contractd init --interactive

  # Pick every value up front
  contractd init --name create_order --method POST --url /orders --status 201 -o orders.yml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	f := initCmd.Flags()
	f.StringVarP(&initOutput, "output", "o", "", "Output file (default contracts/<name>.yml)")
	f.BoolVar(&initForce, "force", false, "Overwrite an existing file")
	f.BoolVarP(&initInteractive, "interactive", "i", false, "Prompt for the contract values")
	f.StringVar(&initName, "name", "", "Contract name (default: generated)")
	f.StringVar(&initMethod, "method", http.MethodGet, "Request method")
	f.StringVar(&initURL, "url", "/health", "Request URL")
	f.IntVar(&initStatus, "status", http.StatusOK, "Response status")
}

type starter struct {
	Name   string
	Method string
	URL    string
	Status int
}

func runInit(cmd *cobra.Command, _ []string) error {
	s := starter{Name: initName, Method: initMethod, URL: initURL, Status: initStatus}
	if s.Name == "" {
		s.Name = id.Name("contract")
	}
	if initInteractive {
		if err := promptStarter(&s); err != nil {
			return err
		}
	}

	path := initOutput
	if path == "" {
		path = filepath.Join("contracts", s.Name+".yml")
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	data, err := renderStarter(s, filepath.Ext(path))
	if err != nil {
		return err
	}
	if _, err := loader().Parse(path, data); err != nil {
		return fmt.Errorf("starter contract is invalid: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	logger.Info("contract created", "path", path, "name", s.Name)

	return printResult(cmd, map[string]string{"path": path, "name": s.Name}, func(w io.Writer) {
		fmt.Fprintf(w, "Created %s\n", filepath.ToSlash(path))
	})
}

func starterFile(s starter) config.File {
	return config.File{
		Description: fmt.Sprintf("%s %s responds with %d", s.Method, s.URL, s.Status),
		Name:        s.Name,
		Request: &config.RequestFile{
			Method:  s.Method,
			URL:     s.URL,
			Headers: map[string]any{"Accept": "application/json"},
		},
		Response: &config.ResponseFile{
			Status:  s.Status,
			Headers: map[string]any{"Content-Type": "application/json"},
			Body:    map[string]any{"status": "ok"},
			Matchers: &config.ResponseMatchers{
				Headers: []config.KeyMatcher{{Key: "Content-Type", ValueMatcher: config.ValueMatcher{Regex: "application/json.*"}}},
			},
		},
	}
}

func renderStarter(s starter, ext string) ([]byte, error) {
	f := starterFile(s)
	if strings.EqualFold(ext, ".json") {
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(f)
}

func promptStarter(s *starter) error {
	status := strconv.Itoa(s.Status)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What is the contract called?").
				Value(&s.Name).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Which method does the consumer send?").
				Options(
					huh.NewOption("GET", http.MethodGet),
					huh.NewOption("POST", http.MethodPost),
					huh.NewOption("PUT", http.MethodPut),
					huh.NewOption("DELETE", http.MethodDelete),
					huh.NewOption("PATCH", http.MethodPatch),
				).
				Value(&s.Method),
			huh.NewInput().
				Title("Which URL does it call?").
				Placeholder("/api/v1/orders").
				Value(&s.URL).
				Validate(func(v string) error {
					if !strings.HasPrefix(v, "/") {
						return errors.New("the URL must start with /")
					}
					return nil
				}),
			huh.NewInput().
				Title("Which status does the producer answer with?").
				Value(&status).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < 100 || n > 599 {
						return errors.New("enter a status between 100 and 599")
					}
					return nil
				}),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	s.Status, _ = strconv.Atoi(status)
	return nil
}
