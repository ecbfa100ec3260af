package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/pipecue/internal/adapter/editor"
	"github.com/jmylchreest/pipecue/internal/config"
	"github.com/jmylchreest/pipecue/internal/daemon"
	"github.com/jmylchreest/pipecue/internal/notify"
)

const appName = "pipecue"

var serveOpts struct {
	transport string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Play cues for an editor session",
	Long: `Activate pipecue for one editor session.

The transport decides how the editor reports events:
  stdio  newline-delimited JSON on stdin, notifications on stdout
  lsp    a language server on stdin/stdout (didOpen/didClose)
  dbus   the io.github.jmylchreest.PipeCue service on the session bus

pipecue exits when the editor disconnects or on SIGINT/SIGTERM. It exits
non-zero when no audio player can be found.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	for _, c := range []*cobra.Command{rootCmd, serveCmd} {
		c.Flags().StringVar(&serveOpts.transport, "transport", "",
			"Editor transport (stdio, lsp, dbus; default from config)")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	transport := serveOpts.transport
	if transport == "" {
		transport = cfg.Host.Transport
	}

	if transport == config.TransportLSP {
		verbosity := 1
		if globalOpts.verbose {
			verbosity = 2
		}
		commonlog.Configure(verbosity, nil) // Logger used by glsp
	}

	adapter, err := editor.NewAdapter(transport, editor.Options{
		Version: version,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	notifiers := newNotifierSet(adapter.Notifier())
	notifiers.apply(cfg)

	ctrl, _, err := daemon.Activate(daemon.Options{
		Config:   cfg,
		Notifier: notifiers.multi,
		Logger:   logger,
	})
	if err != nil {
		notifiers.multi.Notify("activation", "pipecue Unavailable", err.Error(), notify.LevelError)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watcher := daemon.NewConfigWatcher(configPath(), notifiers.multi, func(c *config.Config) {
		applyLogLevel(c)
		notifiers.apply(c)
	}, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// The session ends with the editor
		defer cancel()
		if err := adapter.Serve(gctx, ctrl); err != nil {
			return fmt.Errorf("%s transport: %w", adapter.Name(), err)
		}
		return nil
	})
	g.Go(func() error {
		return watcher.Run(gctx)
	})

	logger.Info("serving", "transport", adapter.Name(), "version", version)
	err = g.Wait()
	logger.Info("deactivated", "transport", adapter.Name())
	return err
}

// notifierSet keeps the editor notifier and an optional desktop notifier
// behind one Multi that hot reload can rewire.
type notifierSet struct {
	editor  notify.Notifier
	desktop *notify.Desktop
	multi   *notify.Multi
}

func newNotifierSet(editorNotifier notify.Notifier) *notifierSet {
	return &notifierSet{
		editor: editorNotifier,
		multi:  notify.NewMulti(editorNotifier),
	}
}

func (s *notifierSet) apply(c *config.Config) {
	if !c.Notify.Desktop {
		s.multi.Set(s.editor)
		return
	}

	if s.desktop == nil {
		desktop, err := notify.NewDesktop(appName, logger)
		if err != nil {
			logger.Debug("desktop notifications unavailable", "error", err)
			s.multi.Set(s.editor)
			return
		}
		s.desktop = desktop
	}
	s.multi.Set(s.editor, s.desktop)
}
