package main

import (
	"encoding/json"
	"fmt"

	"scrollnav/cmd/scrollnav/ui"
	"scrollnav/internal/config"
	"scrollnav/internal/content"
	"scrollnav/internal/navigation"

	"github.com/spf13/cobra"
)

// stateReport is the output of the state command.
type stateReport struct {
	Current    string          `json:"current"`
	Offset     int             `json:"offset"`
	Height     int             `json:"height"`
	TotalLines int             `json:"total_lines"`
	Sections   []sectionReport `json:"sections"`
}

type sectionReport struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Top      float64 `json:"top"`
	Height   float64 `json:"height"`
	Progress float64 `json:"progress"`
}

// showState lays the page out headlessly, scrolls and reports ComputeState.
func showState(cmd *cobra.Command, args []string) error {
	offset, _ := cmd.Flags().GetInt("offset")
	height, _ := cmd.Flags().GetInt("height")
	width, _ := cmd.Flags().GetInt("width")
	asJSON, _ := cmd.Flags().GetBool("json")
	plain, _ := cmd.Flags().GetBool("plain")

	report, err := computeReport(cfg, offset, width, height, plain)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "current: %s (offset %d of %d lines, viewport %d)\n",
		report.Current, report.Offset, report.TotalLines, report.Height)
	for _, s := range report.Sections {
		marker := " "
		if s.ID == report.Current {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-20s %5.1f%%  lines %3.0f-%3.0f\n", marker, s.ID, s.Progress, s.Top, s.Top+s.Height)
	}
	return nil
}

func computeReport(cfg *config.Config, offset, width, height int, plain bool) (*stateReport, error) {
	sources, err := content.LoadSources(cfg)
	if err != nil {
		return nil, err
	}

	layoutCfg := ui.NewLayoutConfig(width, height, ui.WidestTitle(content.Sections(sources)))
	viewHeight := layoutCfg.ContentHeight()

	var renderer *content.Renderer
	if !plain {
		theme := config.ThemeLight
		if ui.ResolveTheme(cfg.UI.Theme).IsDark {
			theme = config.ThemeDark
		}
		wrap := layoutCfg.ContentWidth() - 2
		if ww := cfg.UI.WordWrap; ww > 0 && ww < wrap {
			wrap = ww
		}
		if renderer, err = content.NewRenderer(theme, wrap); err != nil {
			return nil, fmt.Errorf("markdown renderer: %w", err)
		}
	}

	opts := content.LayoutOptions{}
	if cfg.UI.FullHeightSections {
		opts.MinSectionHeight = viewHeight
	}
	layout := content.Build(sources, renderer, opts)

	vp := &content.Viewport{Layout: layout, Height: viewHeight}
	engine, err := navigation.New(content.Sections(sources), vp)
	if err != nil {
		return nil, err
	}
	vp.ScrollTo(float64(offset))
	st := engine.Refresh()

	report := &stateReport{
		Current:    st.CurrentSectionID,
		Offset:     vp.Offset,
		Height:     viewHeight,
		TotalLines: layout.Len(),
	}
	for _, b := range layout.Blocks() {
		report.Sections = append(report.Sections, sectionReport{
			ID:       b.Source.Section.ID,
			Title:    b.Source.Section.Title,
			Top:      b.Geometry.OffsetTop,
			Height:   b.Geometry.Height,
			Progress: st.Progress(b.Source.Section.ID),
		})
	}
	return report, nil
}
