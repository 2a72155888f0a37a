package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"scrollnav/cmd/scrollnav/ui"
	"scrollnav/internal/config"
	"scrollnav/internal/content"
	"scrollnav/internal/logging"
	"scrollnav/internal/watcher"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// runPager starts the interactive pager and, with --watch, the content
// watcher. Both stop when the pager quits or on SIGINT/SIGTERM.
func runPager(cmd *cobra.Command, args []string) error {
	sources, err := content.LoadSources(cfg)
	if err != nil {
		return err
	}
	model, err := ui.NewModel(cfg, sources)
	if err != nil {
		return err
	}
	defer model.Close()

	sigCtx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(gctx),
	)
	model.SetSender(p.Send)

	if watch {
		cw, err := watcher.New(cfg.ContentFiles(), 0, func(paths []string) {
			p.Send(reloadSources(cfg))
		})
		if err != nil {
			return err
		}
		if err := cw.Start(gctx); err != nil {
			return err
		}
		g.Go(func() error {
			<-gctx.Done()
			cw.Stop()
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			logging.UI("pager stopped by signal")
			return nil
		}
		return err
	})

	return g.Wait()
}

// reloadSources re-reads the config file and content for a ReloadMsg.
func reloadSources(current *config.Config) ui.ReloadMsg {
	next := current
	if path := current.Path(); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return ui.ReloadMsg{Err: err}
		}
		next = loaded
	}
	sources, err := content.LoadSources(next)
	return ui.ReloadMsg{Sources: sources, Err: err}
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
