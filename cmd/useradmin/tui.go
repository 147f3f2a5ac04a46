package main

import (
	"github.com/spf13/cobra"

	"user-admin/internal/tui"
)

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive panel (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

func (a *app) runTUI(cmd *cobra.Command) error {
	if err := a.setup(cmd, true, 0); err != nil {
		return err
	}
	defer a.close()
	a.log.Info("panel started")
	return runProgram(ctxOf(cmd), tui.New(a.panel, a.notes, a.cfg.SearchDelay))
}
