package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recall_keep/internal/devserver"
	"recall_keep/internal/middleware"

	"github.com/spf13/cobra"
)

func newDevServerCmd(a *app) *cobra.Command {
	var (
		port     string
		tokenTTL time.Duration
		login    bool
	)
	cmd := &cobra.Command{
		Use:         "devserver",
		Short:       "固定データを返す開発用バックエンドを起動する",
		Annotations: map[string]string{logToStderr: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = a.cfg.DevServer.Port
			}
			token, err := middleware.IssueToken(a.cfg.DevServer.SecretKey, "dev-user", tokenTTL)
			if err != nil {
				return err
			}
			if login {
				sessions, err := a.openSessions()
				if err != nil {
					return err
				}
				if err := sessions.Save(cmd.Context(), token); err != nil {
					return err
				}
				a.logger.Info("Dev token saved to session store")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dev token: %s\n", token)

			srv := devserver.New(devserver.SampleFixtures(), devserver.Options{
				SecretKey:      a.cfg.DevServer.SecretKey,
				AllowedOrigins: a.cfg.DevServer.AllowedOrigins,
			}, a.logger)
			server := &http.Server{
				Addr:         port,
				Handler:      srv.Handler(),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
				IdleTimeout:  120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Server listening", slog.String("port", port))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			// Graceful Shutdown
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)
			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("could not listen on port %s: %w", port, err)
				}
				return nil
			case <-quit:
			}
			a.logger.Info("Shutting down server...")

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(ctx); err != nil {
				a.logger.Error("Server forced to shutdown", slog.Any("error", err))
				return err
			}
			a.logger.Info("Server exiting")
			return nil
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "待ち受けアドレス (既定は devserver.port)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "発行するトークンの有効期間")
	cmd.Flags().BoolVar(&login, "login", false, "発行したトークンをそのまま保存する")
	return cmd
}
