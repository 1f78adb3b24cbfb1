package cli

import (
	"os"

	"buddy-hunt/internal/config"
	"buddy-hunt/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	port       string
	configPath string
)

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buddy-hunt",
		Short: "Progressive quiz with confetti, served over WebSocket and Telegram",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotenv(); err != nil {
				return err
			}
			// CONFIG_PATH may come from .env, so the flag default is resolved late.
			if !cmd.Flags().Changed("config") {
				if env := os.Getenv("CONFIG_PATH"); env != "" {
					configPath = env
				}
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&port, "port", "", "port to listen on (overrides config and PORT)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "path to YAML config")
	cmd.AddCommand(NewStartCmd(&configPath, &port))
	cmd.AddCommand(NewBotCmd(&configPath))
	cmd.AddCommand(NewMigrateCmd(&configPath))
	cmd.AddCommand(NewSeedCmd(&configPath))
	cmd.AddCommand(NewConfettiCmd())
	return cmd
}

// loadConfig reads the config file and builds the logger it describes.
func loadConfig(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	log, err := logger.New(cfg.Env, cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}
