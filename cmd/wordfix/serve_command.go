package main

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/bastiangx/wordfix/internal/logger"
	"github.com/bastiangx/wordfix/pkg/rules"
	"github.com/bastiangx/wordfix/pkg/server"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "serve [RULES_FILE]",
		Short: "Serve corrections over MessagePack on stdin/stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.settings(cmd)
			if err != nil {
				return err
			}
			path, err := ctx.rulesPath(args)
			if err != nil {
				return err
			}

			load := func() (*rules.Set, error) { return loadRules(path, s) }
			opts := server.Options{
				Mode:         s.mode,
				MaxTextBytes: ctx.config.Server.MaxTextBytes,
				Normalize:    s.normalize,
			}
			srv, err := server.NewServer(load, opts, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			stop := reloadOnHangup(srv)
			defer stop()

			if !quiet {
				showStartupInfo(cmd.ErrOrStderr(), path, s)
			}
			return srv.Start(cmd.Context())
		},
	}

	addModeFlags(cmd)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Skip the startup banner on stderr")
	return cmd
}

// reloadOnHangup reloads the server's rules on SIGHUP until stop is called.
func reloadOnHangup(srv *server.Server) (stop func()) {
	hup := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(hup, syscall.SIGHUP)

	go func() {
		for {
			select {
			case <-hup:
				if err := srv.Reload(); err != nil {
					log.Errorf("Reload failed, keeping previous rules: %v", err)
				}
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(hup)
		close(done)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(w io.Writer, rulesPath string, s settings) {
	l := logger.NewWithWriter(w, AppName)
	l.SetLevel(log.InfoLevel)

	l.Infof("Version: %s", Version)
	l.Infof("Process ID: [ %d ]", os.Getpid())
	l.Infof("rules: ( %s )", rulesPath)
	l.Infof("mode: %v", s.mode)
	l.Info("status: ready")
}
