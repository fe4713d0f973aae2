package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/authrelay/authrelay/internal/config"
)

func init() { //nolint:gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Dump the config as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Reads the configuration the same way start does, including the
` + config.EnvConfigJSON + ` override, and prints the merged result.
Useful to verify what a deployment actually runs with.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			c, err := config.ReadConfig(configPath)
			if err != nil {
				return err
			}

			dump := config.DumpConfig
			if dumpJSON {
				dump = config.DumpConfigJSON
			}

			out, err := dump(c)
			if err != nil {
				return err
			}

			fmt.Print(out)

			return nil
		},
	}
)
