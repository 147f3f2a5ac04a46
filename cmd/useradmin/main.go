// File: cmd/useradmin/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"user-admin/internal/cache"
	"user-admin/internal/config"
	"user-admin/internal/logging"
)

// 可於測試覆寫
var (
	loadConfig      = config.Load
	newRedisClient  = cache.NewRedisClient
	newFileLogger   = logging.File
	newStderrLogger = logging.Stderr
	runProgram      = func(ctx context.Context, m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		return err
	}
	exitFunc = os.Exit
)

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitFunc(1)
	}
}
