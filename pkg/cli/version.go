package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// buildInfo is what version reports. The first three fields are set at link
// time through cmd/contractd.
type buildInfo struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Go       string `json:"go"`
	Platform string `json:"platform"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Version:  Version,
		Commit:   Commit,
		Date:     BuildDate,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the one-line form, e.g. "contractd v1.2.0 (abc123, 2026-01-02)".
func (b buildInfo) String() string {
	v := b.Version
	if v != "dev" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return fmt.Sprintf("contractd %s (%s, %s)", v, b.Commit, b.Date)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show contractd version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		return printResult(cmd, info, func(w io.Writer) {
			fmt.Fprintln(w, info)
			fmt.Fprintf(w, "%s %s\n", info.Go, info.Platform)
		})
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
