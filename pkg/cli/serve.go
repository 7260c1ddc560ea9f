package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/availiq/availiq/pkg/cli/config"
	httpctrl "github.com/availiq/availiq/pkg/controller/http"
	"github.com/availiq/availiq/pkg/service/scheduler"
	"github.com/availiq/availiq/pkg/usecase"
	"github.com/availiq/availiq/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("AVAILIQ_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the webhook server and poll scheduler",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			pollCfg, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
			}

			if !slackCfg.IsWebhookConfigured() {
				return goerr.New("slack-signing-secret is required for serve")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			slackSvc, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize slack service")
			}

			uc := usecase.New(repo, pollCfg, slackSvc)

			sched := scheduler.New(pollCfg, uc)
			if err := sched.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start scheduler")
			}

			handler := httpctrl.New(uc, slackCfg.SigningSecret(),
				httpctrl.WithBotUserID(slackCfg.BotUserID()),
			)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				sched.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				sched.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
