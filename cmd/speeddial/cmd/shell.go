package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/service"
	"github.com/ekisa-team/speeddial/internal/shell"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Interactive speed dial prompt",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := loadConfig(configPath())
		if err != nil {
			printError("failed to load config", err)
			return err
		}

		svc, err := newQuietService(cfg)
		if err != nil {
			return err
		}
		defer svc.Close()

		return shell.New(svc, cmd.InOrStdin(), cmd.OutOrStdout()).Run(cmd.Context())
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted walkthrough of the registry",
	Long: `Run a scripted walkthrough of the registry.

The demo always uses the built-in defaults: five directories of 200 entries,
no seed entries and the log dialer. The config file is ignored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		svc, err := newQuietService(config.Default())
		if err != nil {
			return err
		}
		defer svc.Close()

		return shell.Demo(cmd.Context(), svc, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(demoCmd)
}

// newQuietService builds a service for terminal use. Rejected operations are
// already reported on stdout, so logging stays at error unless --verbose.
func newQuietService(cfg *config.Config) (*service.SpeedDial, error) {
	log, level := newLogger(cfg, false)
	if !verbose && level.Level() < slog.LevelError {
		level.Set(slog.LevelError)
	}

	svc, err := service.NewFromConfig(cfg, log)
	if err != nil {
		printError("failed to create service", err)
		return nil, err
	}

	return svc, nil
}
