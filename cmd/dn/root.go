package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/conn-castle/dotnet-layer/internal/acquire"
	"github.com/conn-castle/dotnet-layer/internal/config"
	"github.com/conn-castle/dotnet-layer/internal/events"
	"github.com/conn-castle/dotnet-layer/internal/logging"
	"github.com/conn-castle/dotnet-layer/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", config.DefaultFileName, messages.RootConfigFlag)
	cmd.AddCommand(newAcquireCmd())
	cmd.AddCommand(newUninstallCmd())
	cmd.AddCommand(newStatusCmd())
	return cmd
}

// deps holds everything a command needs after config resolution.
type deps struct {
	cfg         *config.Config
	log         *zap.Logger
	tracker     *acquire.Tracker
	coordinator *acquire.Coordinator
}

// buildDeps loads config and wires the tracker, event stream, logger, and
// coordinator together.
func buildDeps(cmd *cobra.Command) (*deps, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	root, err := cfg.ResolvedRoot()
	if err != nil {
		return nil, err
	}

	tracker := acquire.NewTracker(root)
	stream := events.NewStream()
	stream.Subscribe(logging.EventObserver(log))
	coordinator, err := acquire.New(tracker, acquire.ScriptInvoker{}, cfg.CommandFunc(), stream, log)
	if err != nil {
		return nil, err
	}
	return &deps{cfg: cfg, log: log, tracker: tracker, coordinator: coordinator}, nil
}

// consoleObserver renders lifecycle events for interactive use.
func consoleObserver(out io.Writer) events.Handler {
	return func(e events.Event) {
		switch e.Kind {
		case events.KindStarted:
			_, _ = fmt.Fprintf(out, messages.EventStartedFmt+"\n", e.Version)
		case events.KindCompleted:
			_, _ = fmt.Fprintln(out, color.GreenString(messages.EventCompletedFmt, e.Version, e.Path))
		case events.KindInstallError:
			_, _ = fmt.Fprintln(out, color.RedString(messages.EventInstallErrorFmt, e.Version, e.Detail))
		case events.KindScriptError:
			_, _ = fmt.Fprintln(out, color.RedString(messages.EventScriptErrorFmt, e.Version, e.Detail))
		case events.KindUnexpectedError:
			_, _ = fmt.Fprintln(out, color.RedString(messages.EventUnexpectedErrorFmt, e.Version, e.Detail))
		}
	}
}
