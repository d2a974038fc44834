// cmd/main.go
package main

import (
	"errors"
	"fmt"
	"os"

	"recall_keep/internal/config"
	"recall_keep/internal/model"
)

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	if closeErr := a.close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, model.ErrUnauthenticated) {
			// 認証情報が無い場合はログイン方法を案内して終了する
			fmt.Fprintf(os.Stderr, "%s\nログインしてください: %s login --token <TOKEN>\n", errorMessage(err), config.AppName)
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", errorMessage(err))
		os.Exit(1)
	}
}

func errorMessage(err error) string {
	var appErr *model.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}
