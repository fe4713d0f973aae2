// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/authrelay/authrelay/internal/config"
)

var (
	configPath string // Path to the configuration directory
	cfg        config.Config

	rootCmd = &cobra.Command{
		Use:   "authrelay",
		Short: "authrelay is an OAuth2 login relay issuing signed session tokens",
		Long: `authrelay redirects users to third-party identity providers
(Google, GitHub, Microsoft), exchanges the authorization code, normalizes
the returned profile and issues a signed JWT for subsequent API calls.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint:gochecknoinits
	rootCmd.PersistentFlags().StringVar(
		&configPath,
		"config",
		"./etc/",
		"Path to the directory containing main.toml",
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
