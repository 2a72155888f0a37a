// Package content turns configured markdown into rendered terminal lines
// and the per-section geometry the navigation engine measures.
package content

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strings"

	"scrollnav/internal/config"
	"scrollnav/internal/logging"
	"scrollnav/internal/navigation"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Source is one section's unrendered content.
type Source struct {
	Section  navigation.Section
	Color    string
	Markdown string
}

// palette is used for sections without an explicit color.
var palette = []string{"#8BC34A", "#2196F3", "#4db6ac", "#ffd54f", "#e57373", "#ff8a65"}

var headingAttr = regexp.MustCompile(`\s*\{#[^}]*\}\s*$`)

var md = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithAttribute(),
		parser.WithAutoHeadingID(),
	),
)

// SplitDocument splits markdown into sections at level-2 headings. The
// section id is the heading's {#id} attribute or its generated slug. Text
// before the first level-2 heading becomes its own section, titled after the
// first level-1 heading when there is one.
func SplitDocument(src []byte) []Source {
	doc := md.Parser().Parse(text.NewReader(src))

	type cut struct {
		start int
		id    string
		title string
	}
	var cuts []cut
	introTitle := ""
	introID := ""

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		title := strings.TrimSpace(string(h.Text(src)))
		id := headingID(h, title)
		switch h.Level {
		case 1:
			if introTitle == "" && len(cuts) == 0 {
				introTitle, introID = title, id
			}
		case 2:
			cuts = append(cuts, cut{start: lineStart(src, h.Lines().At(0).Start), id: id, title: title})
		}
	}

	var out []Source
	preambleEnd := len(src)
	if len(cuts) > 0 {
		preambleEnd = cuts[0].start
	}
	if pre := strings.TrimSpace(string(src[:preambleEnd])); pre != "" {
		if introID == "" {
			introID, introTitle = "intro", "Introduction"
		}
		out = append(out, Source{
			Section:  navigation.Section{ID: introID, Title: introTitle},
			Markdown: stripHeadingAttrs(pre),
		})
	}

	for i, c := range cuts {
		end := len(src)
		if i+1 < len(cuts) {
			end = cuts[i+1].start
		}
		out = append(out, Source{
			Section:  navigation.Section{ID: c.id, Title: c.title},
			Markdown: stripHeadingAttrs(strings.TrimSpace(string(src[c.start:end]))),
		})
	}

	for i := range out {
		out[i].Color = palette[i%len(palette)]
	}
	return dedupe(out)
}

// LoadSources assembles section content from the config. Unreadable section
// files degrade to a notice in the body; an unreadable document is an error.
func LoadSources(cfg *config.Config) ([]Source, error) {
	log := logging.Get(logging.CategoryContent)

	var fromDoc []Source
	if cfg.Document != "" {
		data, err := os.ReadFile(cfg.Resolve(cfg.Document))
		if err != nil {
			return nil, fmt.Errorf("failed to read document: %w", err)
		}
		fromDoc = SplitDocument(data)
		log.Debug("document %s split into %d sections", cfg.Document, len(fromDoc))
		if len(cfg.Sections) == 0 {
			if err := navigation.ValidateSections(sectionsOf(fromDoc)); err != nil {
				return nil, fmt.Errorf("document %s: %w", cfg.Document, err)
			}
			return fromDoc, nil
		}
	}

	byID := make(map[string]Source, len(fromDoc))
	for _, s := range fromDoc {
		byID[s.Section.ID] = s
	}

	out := make([]Source, 0, len(cfg.Sections))
	for i, sc := range cfg.Sections {
		src := Source{
			Section:  navigation.Section{ID: sc.ID, Title: sc.Title},
			Color:    sc.Color,
			Markdown: sc.Body,
		}
		if src.Color == "" {
			src.Color = palette[i%len(palette)]
		}

		switch {
		case cfg.Document != "":
			if d, ok := byID[sc.ID]; ok {
				src.Markdown = d.Markdown
			} else {
				log.Warn("section %s has no heading in %s", sc.ID, cfg.Document)
			}
		case sc.File != "":
			data, err := os.ReadFile(cfg.Resolve(sc.File))
			if err != nil {
				log.Warn("section %s: %v", sc.ID, err)
				src.Markdown = fmt.Sprintf("*Content unavailable: %s*", sc.File)
			} else {
				src.Markdown = string(data)
			}
		}
		out = append(out, src)
	}
	return out, nil
}

// Sections returns the navigation sections of sources in order.
func Sections(sources []Source) []navigation.Section {
	return sectionsOf(sources)
}

func sectionsOf(sources []Source) []navigation.Section {
	out := make([]navigation.Section, len(sources))
	for i, s := range sources {
		out[i] = s.Section
	}
	return out
}

func headingID(h *ast.Heading, title string) string {
	if v, ok := h.AttributeString("id"); ok {
		if b, ok := v.([]byte); ok && len(b) > 0 {
			return string(b)
		}
	}
	return slug(title)
}

func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func lineStart(src []byte, pos int) int {
	if i := bytes.LastIndexByte(src[:pos], '\n'); i >= 0 {
		return i + 1
	}
	return 0
}

func stripHeadingAttrs(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "#") {
			lines[i] = headingAttr.ReplaceAllString(l, "")
		}
	}
	return strings.Join(lines, "\n")
}

// dedupe suffixes repeated ids so the engine's uniqueness rule holds for
// documents that reuse a heading. A suffix never lands on an id already
// taken, including one a heading spelled out itself.
func dedupe(in []Source) []Source {
	taken := make(map[string]bool, len(in))
	for i := range in {
		id := in[i].Section.ID
		if id == "" {
			id = "section"
		}
		candidate := id
		for n := 1; taken[candidate]; n++ {
			candidate = fmt.Sprintf("%s-%d", id, n)
		}
		in[i].Section.ID = candidate
		taken[candidate] = true
	}
	return in
}
