// Package commands implements the rootsctl command line, an admin front end
// for the catalogue API.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"roots-catalog/internal/admin"
	"roots-catalog/internal/client"
	"roots-catalog/internal/config"
)

// session holds what every subcommand needs once flags are parsed.
type session struct {
	apiURL   string
	apiKey   string
	timeout  time.Duration
	logLevel string

	api    admin.API
	logger zerolog.Logger
}

func Execute() error {
	err := newRootCmd(&session{}).Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func newRootCmd(s *session) *cobra.Command {
	root := &cobra.Command{
		Use:           "rootsctl",
		Short:         "Administer the Roots product catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.logger = config.NewLoggerTo(cmd.ErrOrStderr(), config.LoggerConfig{
				Level:  s.logLevel,
				Format: "console",
			})

			// Tests inject their own API.
			if s.api != nil {
				return nil
			}

			cfg := config.LoadClient()
			if cmd.Flags().Changed("api-url") {
				cfg.BaseURL = s.apiURL
			}
			if cmd.Flags().Changed("api-key") {
				cfg.APIKey = s.apiKey
			}
			if cmd.Flags().Changed("timeout") {
				cfg.Timeout = s.timeout
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			s.api = client.New(cfg)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&s.apiURL, "api-url", "", "catalogue API base URL (default $ROOTS_API_URL or http://localhost:8080)")
	root.PersistentFlags().StringVar(&s.apiKey, "api-key", "", "API key (default $ROOTS_API_KEY)")
	root.PersistentFlags().DurationVar(&s.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().StringVar(&s.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(productsCmd(s), uploadCmd(s))
	return root
}
