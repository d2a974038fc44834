package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"recall_keep/internal/config"
	"recall_keep/internal/repository"
	"recall_keep/internal/service"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// logToStderr を付けたコマンドは画面を使わないので、ログをファイルではなく標準エラーに出す
const logToStderr = "log-stderr"

type app struct {
	configDir string
	cfg       *config.Config
	logger    *slog.Logger
	closers   []func() error
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "復習キューとインボックスを操作するターミナルクライアント",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config", "configs", "config.yaml を探すディレクトリ")

	root.AddCommand(
		newReviewCmd(a),
		newInboxCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newDevServerCmd(a),
	)
	return root, a
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(a.configDir)
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}
	a.cfg = cfg

	logger, closeLog, err := newLogger(cfg.Log, cmd.Annotations[logToStderr] == "true")
	if err != nil {
		return err
	}
	a.logger = logger
	a.closers = append(a.closers, closeLog)
	slog.SetDefault(logger)
	logger.Info("Command starting", slog.String("command", cmd.Name()), slog.String("version", config.AppVersion))
	return nil
}

// close は開いたDBとログファイルを逆順に閉じます。
func (a *app) close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

// openSessions はセッション保存用の sqlite を開きます。
func (a *app) openSessions() (*service.SessionService, error) {
	db, err := repository.NewDB(a.cfg.Session.Path, a.logger)
	if err != nil {
		return nil, fmt.Errorf("error initializing session store: %w", err)
	}
	a.closers = append(a.closers, func() error { return closeDB(db) })
	return service.NewSessionService(db, repository.NewGormSessionRepository(), a.logger), nil
}

func (a *app) newHTTPClient(sessions *service.SessionService) *http.Client {
	return repository.NewHTTPClient(http.DefaultTransport, sessions, a.cfg.API.Timeout, a.logger)
}

func closeDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
