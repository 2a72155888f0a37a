package main

import (
	"fmt"

	"scrollnav/internal/content"

	"github.com/spf13/cobra"
)

// listSections prints the sections in navigation order, as the engine sees them.
func listSections(cmd *cobra.Command, args []string) error {
	sources, err := content.LoadSources(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, s := range content.Sections(sources) {
		fmt.Fprintf(out, "%d. %-20s %s\n", i+1, s.ID, s.Title)
	}
	return nil
}
