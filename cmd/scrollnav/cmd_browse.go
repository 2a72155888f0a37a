package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"scrollnav/internal/browser"
	"scrollnav/internal/content"
	"scrollnav/internal/logging"
	"scrollnav/internal/navigation"

	"github.com/spf13/cobra"
)

// runBrowse attaches the engine to a live page and prints current-section
// changes until interrupted.
func runBrowse(cmd *cobra.Command, args []string) error {
	target, _ := cmd.Flags().GetString("goto")

	sources, err := content.LoadSources(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, err := browser.Open(ctx, cfg.Browser, args[0])
	if err != nil {
		return err
	}
	defer session.Close()

	engine, err := navigation.New(content.Sections(sources), session)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	last := ""
	release := engine.Activate(session, func(st navigation.State) {
		mu.Lock()
		defer mu.Unlock()
		if st.CurrentSectionID == last {
			return
		}
		last = st.CurrentSectionID
		logging.Navigation("current section %s (%.0f%%)", last, st.Progress(last))
		fmt.Fprintf(out, "%s\t%5.1f%%\n", last, st.Progress(last))
	})
	defer release()

	if target != "" && !engine.ScrollToSection(target) {
		fmt.Fprintf(cmd.ErrOrStderr(), "section %q not found on page\n", target)
	}

	<-ctx.Done()
	return nil
}
