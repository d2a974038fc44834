package main

import (
	"os"
	"os/signal"
	"syscall"

	"recall_keep/internal/repository"
	"recall_keep/internal/service"
	"recall_keep/internal/tui"

	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newInboxCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inbox",
		Short: "インボックスの項目を選択してまとめて更新する",
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

			inboxRepo := repository.NewHTTPInboxRepository(a.newHTTPClient(sessions), a.cfg.API.BaseURL)
			svc := service.NewInboxService(inboxRepo, a.logger)
			_, err = bubbletea.NewProgram(tui.NewInboxModel(ctx, svc, a.logger), bubbletea.WithAltScreen(), bubbletea.WithContext(ctx)).Run()
			return err
		},
	}
}
