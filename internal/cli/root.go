package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizlens/internal/config"
)

var configPath string

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().ExecuteContext(context.Background())
}

func newRootCmd() *cobra.Command {
	envConfig := os.Getenv("CONFIG_PATH")
	if envConfig == "" {
		envConfig = "config/config.yaml"
	}

	cmd := &cobra.Command{
		Use:           "quizlens",
		Short:         "Questionnaire API with answer tracking and generated analyses",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", envConfig, "path to YAML config")
	cmd.AddCommand(newServeCmd(&configPath))
	cmd.AddCommand(newMigrateCmd(&configPath))
	cmd.AddCommand(newSeedCmd(&configPath))
	cmd.AddCommand(newLambdaCmd(&configPath))
	return cmd
}

func loadSettings(path string) (*config.Settings, error) {
	return config.Load(path)
}
