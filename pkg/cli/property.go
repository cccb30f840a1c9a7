package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/getmockd/contractd/pkg/properties"
)

var propertyCmd = &cobra.Command{
	Use:   "property <key>...",
	Short: "Show how properties resolve",
	Long: `Show how properties resolve and where each value comes from.

A property is looked up, in order, in the options (the properties section of
.contractdrc.yaml and --env-file), the system properties set with -D (first
as contractd.properties.<key>, then <key>) and the environment (first as
CONTRACTD_PROPERTIES_<KEY>, then <KEY>, with dots and dashes turned into
underscores). The first non-empty value wins.`,
	Example: `  contractd property log.level
  contractd -D fraud.limit=5000 property fraud.limit`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProperty,
}

func init() {
	rootCmd.AddCommand(propertyCmd)
}

type propertyOutput struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
	EnvVar string `json:"envVar"`
}

func runProperty(cmd *cobra.Command, args []string) error {
	out := make([]propertyOutput, 0, len(args))
	for _, key := range args {
		v, src := properties.Lookup(cfg.Properties, key)
		source := string(src)
		if src == properties.SourceNone {
			source = "unset"
		}
		out = append(out, propertyOutput{
			Key:    key,
			Value:  v,
			Source: source,
			EnvVar: properties.EnvPrefix + properties.EnvName(key),
		})
	}

	return printResult(cmd, out, func(w io.Writer) {
		for _, p := range out {
			if p.Source == "unset" {
				fmt.Fprintf(w, "%s is unset (env: %s)\n", p.Key, p.EnvVar)
				continue
			}
			fmt.Fprintf(w, "%s=%s (%s)\n", p.Key, p.Value, p.Source)
		}
	})
}
