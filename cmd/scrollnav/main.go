package main

import (
	"fmt"
	"os"

	"scrollnav/internal/config"
	"scrollnav/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	watch      bool
	theme      string

	// cfg is loaded once per invocation in PersistentPreRunE.
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "scrollnav",
	Short: "Scroll through a landing page, one section at a time",
	Long: `scrollnav renders a landing page as a sequence of sections in the terminal.

Navigation dots show every section with a fill for how much of it is on
screen, the header tracks progress through the current section, and the
footer offers the previous and next sections.

Run without arguments to start the interactive pager.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if theme != "" {
			cfg.UI.Theme = theme
		}

		opts := cfg.Logging.Options()
		if verbose {
			opts.Level = "debug"
			// The pager owns the terminal; other commands may log to stderr.
			if opts.File == "" && cmd != cmd.Root() {
				opts.File = "stderr"
				opts.Format = "console"
			}
		}
		if err := logging.Initialize(opts); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Boot("%s %s (config=%q run=%s)", cmd.Root().Name(), cmd.Name(), cfg.Path(), logging.RunID())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Sync()
	},
	RunE: runPager,
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the configured sections in order",
	RunE:  listSections,
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Compute navigation state for a scroll offset without a terminal",
	Long: `Lays the page out for a terminal of the given size, scrolls to --offset
and prints the current section and every section's visible progress.

Example:
  scrollnav state --offset 40 --height 24 --json`,
	RunE: showState,
}

var browseCmd = &cobra.Command{
	Use:   "browse [url]",
	Short: "Track section navigation on a live web page",
	Long: `Opens url in Chrome (or attaches to browser.debugger_url) and follows the
page's scroll position, printing each change of the current section.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "scrollnav.yaml", "Config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "", "Color theme: auto, dark or light")
	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload when the config or content files change")

	stateCmd.Flags().Int("offset", 0, "Scroll offset in lines")
	stateCmd.Flags().Int("height", 24, "Terminal height")
	stateCmd.Flags().Int("width", 80, "Terminal width")
	stateCmd.Flags().Bool("json", false, "Print JSON")
	stateCmd.Flags().Bool("plain", false, "Skip markdown rendering")

	browseCmd.Flags().String("goto", "", "Scroll to this section once the page is tracked")

	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	rootCmd.AddCommand(sectionsCmd, stateCmd, browseCmd, initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
