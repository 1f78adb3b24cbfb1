package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"buddy-hunt/internal/config"
	"buddy-hunt/internal/transport/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewBotCmd runs the Telegram bot on its own.
func NewBotCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram quiz bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			d, err := buildService(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer d.Close()

			err = runBot(ctx, cfg, log, d)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func runBot(ctx context.Context, cfg config.Config, log *zap.Logger, d *deps) error {
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token not configured")
	}
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug
	log.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	h := telegram.NewHandler(bot, log.Named("telegram"), d.service, cfg.Quiz.DefaultID, gifOptions(cfg))
	h.SetPollTimeout(cfg.Telegram.Timeout)
	return h.Run(ctx)
}
