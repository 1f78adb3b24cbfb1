package cli

import (
	"buddy-hunt/internal/infra/file"
	pgstore "buddy-hunt/internal/infra/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewSeedCmd upserts the YAML quizzes into Postgres.
func NewSeedCmd(configPath *string) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load YAML quizzes into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			defer log.Sync()

			if dir == "" {
				dir = cfg.Quiz.Dir
			}
			loader, err := file.NewLoader(dir)
			if err != nil {
				return err
			}

			db, err := openBunDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migrateDB(ctx, db, log); err != nil {
				return err
			}

			quizzes := loader.Quizzes()
			if err := pgstore.NewSeeder(db).Upsert(ctx, quizzes...); err != nil {
				return err
			}
			for _, q := range quizzes {
				log.Info("quiz seeded", zap.String("quiz_id", q.ID), zap.Int("questions", len(q.Questions)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory of quiz YAML files (defaults to quiz.dir)")
	return cmd
}
