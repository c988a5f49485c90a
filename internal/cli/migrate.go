package cli

import (
	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizlens/internal/container"
	"github.com/saulo-duarte/quizlens/internal/migration"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := loadSettings(*configPath)
			if err != nil {
				return err
			}
			db, err := container.Bootstrap(ctx, s)
			if err != nil {
				return err
			}
			return migration.Run(ctx, db)
		},
	}
}
