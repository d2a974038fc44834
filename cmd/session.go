package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var token string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "アクセストークンを保存する",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.openSessions()
			if err != nil {
				return err
			}
			if err := sessions.Save(cmd.Context(), token); err != nil {
				return err
			}
			a.logger.Info("Access token saved")
			fmt.Fprintln(cmd.OutOrStdout(), "ログインしました。")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "バックエンドが発行したアクセストークン")
	cmd.MarkFlagRequired("token")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "保存済みのアクセストークンを削除する",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := a.openSessions()
			if err != nil {
				return err
			}
			if err := sessions.Clear(cmd.Context()); err != nil {
				return err
			}
			a.logger.Info("Access token cleared")
			fmt.Fprintln(cmd.OutOrStdout(), "ログアウトしました。")
			return nil
		},
	}
}
