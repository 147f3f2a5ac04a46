package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"user-admin/internal/apiclient"
	"user-admin/internal/cache"
	"user-admin/internal/config"
	"user-admin/internal/panel"
)

// app holds the root flags and everything built from them for one command.
type app struct {
	envFile string
	apiURL  string
	timeout time.Duration

	cfg     config.Config
	log     *zap.Logger
	notes   *panel.Notifications
	panel   *panel.Panel
	closers []func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "useradmin",
		Short:         "Manage user records of the user API",
		Long:          "Terminal panel and commands to list, create, edit and delete users stored behind the user REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "Base URL of the user API (overrides USERADMIN_API_URL)")
	root.PersistentFlags().DurationVar(&a.timeout, "timeout", 0, "Per-request timeout (overrides USERADMIN_TIMEOUT)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "Env file to load (default .env if present)")

	root.AddCommand(
		newTUICmd(a),
		newListCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
	)
	return root
}

// setup loads the configuration and builds the panel. fileLog sends logs to
// the configured file instead of stderr.
func (a *app) setup(cmd *cobra.Command, fileLog bool, pageSize int) error {
	cfg, err := loadConfig(a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = a.apiURL
	}
	if flags.Changed("timeout") {
		cfg.Timeout = a.timeout
	}
	if pageSize > 0 {
		cfg.PageSize = pageSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if fileLog {
		a.log, err = newFileLogger(cfg.LogFile)
	} else {
		a.log, err = newStderrLogger()
	}
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() error {
		_ = a.log.Sync()
		return nil
	})

	client, err := apiclient.New(cfg.APIURL,
		apiclient.WithTimeout(cfg.Timeout),
		apiclient.WithLogger(a.log))
	if err != nil {
		return err
	}

	var snaps panel.Snapshotter
	if cfg.SnapshotsEnabled() {
		c, err := newRedisClient(cmd.Context(), cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			a.log.Warn("snapshot cache disabled", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		} else {
			a.closers = append(a.closers, c.Close)
			snaps = cache.NewSnapshots(c, cfg.SnapshotTTL)
		}
	}

	a.notes = &panel.Notifications{}
	a.panel = panel.New(client, a.notes, panel.Options{
		PageSize:  cfg.PageSize,
		StrictAHV: cfg.StrictAHV,
		Snapshots: snaps,
		Logger:    a.log,
	})
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
	a.closers = nil
}

// outcome prints success notifications and turns failures into the error
// returned from the command.
func (a *app) outcome(cmd *cobra.Command, ok bool, err error) error {
	var failures []string
	for _, n := range a.notes.Drain() {
		if n.Kind == panel.KindFailure {
			failures = append(failures, n.Message)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), n.Message)
	}
	switch {
	case len(failures) > 0:
		return errors.New(strings.Join(failures, "; "))
	case err != nil:
		return err
	case !ok:
		return errors.New("request was rejected")
	}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
