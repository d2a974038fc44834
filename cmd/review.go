package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"recall_keep/internal/repository"
	"recall_keep/internal/service"
	"recall_keep/internal/tui"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newReviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "期限の来たカードを復習する",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessions, err := a.openSessions()
			if err != nil {
				return err
			}
			if _, err := sessions.Token(ctx); err != nil {
				return err
			}

			recallRepo := repository.NewHTTPRecallRepository(a.newHTTPClient(sessions), a.cfg.API.BaseURL)
			queue := service.NewReviewQueue(ctx, recallRepo, a.cfg, a.logger)
			model := tui.NewReviewModel(ctx, queue, recallRepo, a.cfg.Poll.StatsInterval, a.logger)

			_, runErr := bubbletea.NewProgram(model, bubbletea.WithAltScreen(), bubbletea.WithContext(ctx)).Run()

			// 画面を閉じた後も送信中の評価は最後まで送る
			a.logger.Info("Waiting for pending review submissions")
			queue.Wait()
			a.logger.Info("Review session finished", slog.Int("remaining", queue.Len()))
			return runErr
		},
	}
}
