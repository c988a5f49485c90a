package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/container"
	"github.com/saulo-duarte/quizlens/internal/migration"
)

func newServeCmd(configPath *string) *cobra.Command {
	var (
		port    string
		migrate bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, port, migrate)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "port to listen on (overrides config)")
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func runServer(ctx context.Context, configPath, portFlag string, migrate bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	if portFlag != "" {
		s.Server.Port = portFlag
	}

	c, err := container.New(ctx, s)
	if err != nil {
		return err
	}
	defer c.Close()

	if migrate {
		if err := migration.Run(ctx, c.DB); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:         ":" + s.Server.Port,
		Handler:      c.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	log := config.WithContext(ctx)
	errCh := make(chan error, 1)
	go func() {
		log.Infof("Servidor iniciado na porta %s", s.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Falha ao iniciar servidor")
			return err
		}
	case <-ctx.Done():
		log.Info("Encerrando servidor...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
