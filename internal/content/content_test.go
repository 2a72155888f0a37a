package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrollnav/internal/config"
	"scrollnav/internal/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const landingDoc = `# Connect

Communication without borders.

## Why people switch {#advantages}

- Seamless
- Private

## Detailed Features

### Global Reach
Multilingual.

## Terms and Policies {#legal-section}

Be nice.
`

func TestSplitDocument(t *testing.T) {
	sources := SplitDocument([]byte(landingDoc))
	require.Len(t, sources, 4)

	got := make([]navigation.Section, len(sources))
	for i, s := range sources {
		got[i] = s.Section
	}
	assert.Equal(t, []navigation.Section{
		{ID: "connect", Title: "Connect"},
		{ID: "advantages", Title: "Why people switch"},
		{ID: "detailed-features", Title: "Detailed Features"},
		{ID: "legal-section", Title: "Terms and Policies"},
	}, got)

	assert.True(t, strings.HasPrefix(sources[1].Markdown, "## Why people switch"))
	assert.NotContains(t, sources[1].Markdown, "{#advantages}")
	assert.Contains(t, sources[2].Markdown, "### Global Reach", "level-3 headings stay inside their section")
	assert.Equal(t, "## Terms and Policies\n\nBe nice.", sources[3].Markdown)
	for _, s := range sources {
		assert.NotEmpty(t, s.Color)
	}
}

func TestSplitDocument_NoPreambleNoH2(t *testing.T) {
	assert.Empty(t, SplitDocument([]byte("   \n")))

	only := SplitDocument([]byte("Just text, no headings."))
	require.Len(t, only, 1)
	assert.Equal(t, "intro", only[0].Section.ID)
	assert.Equal(t, "Introduction", only[0].Section.Title)
}

func TestSplitDocument_DuplicateIDsAreSuffixed(t *testing.T) {
	sources := SplitDocument([]byte("## Same {#x}\n\na\n\n## Other {#x}\n\nb\n"))
	require.Len(t, sources, 2)
	assert.Equal(t, "x", sources[0].Section.ID)
	assert.Equal(t, "x-1", sources[1].Section.ID)
	assert.NoError(t, navigation.ValidateSections(Sections(sources)))
}

func TestSplitDocument_SuffixSkipsTakenIDs(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "heading spells out a suffixed id",
			doc:  "Preamble text.\n\n## Intro\n\nfirst\n\n## Intro 1\n\nsecond\n",
			want: []string{"intro", "intro-1", "intro-1-1"},
		},
		{
			name: "explicit id claims the next suffix",
			doc:  "## A {#x}\n\n## B {#x-1}\n\n## C {#x}\n\n## D {#x}\n",
			want: []string{"x", "x-1", "x-2", "x-3"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources := SplitDocument([]byte(tt.doc))
			got := make([]string, len(sources))
			for i, s := range sources {
				got[i] = s.Section.ID
			}
			assert.Equal(t, tt.want, got)
			assert.NoError(t, navigation.ValidateSections(Sections(sources)))
		})
	}

	dir := t.TempDir()
	doc := filepath.Join(dir, "intro.md")
	require.NoError(t, os.WriteFile(doc, []byte(tests[0].doc), 0644))
	cfg := config.DefaultConfig()
	cfg.Sections = nil
	cfg.Document = doc
	sources, err := LoadSources(cfg)
	require.NoError(t, err)
	assert.Len(t, sources, 3)
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "terms-policies", slug("Terms & Policies!"))
	assert.Equal(t, "a1-b", slug("  A1 -- b "))
	assert.Equal(t, "", slug("!!!"))
}

func TestLoadSources_InlineAndFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "features.md"), []byte("## From file"), 0644))

	cfgPath := filepath.Join(dir, "scrollnav.yaml")
	cfg := config.DefaultConfig()
	cfg.Sections = []config.SectionConfig{
		{ID: "hero", Title: "Hero", Body: "# Hello"},
		{ID: "features", Title: "Features", File: "features.md"},
		{ID: "missing", Title: "Missing", File: "nope.md"},
	}
	require.NoError(t, cfg.Save(cfgPath))
	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)

	sources, err := LoadSources(loaded)
	require.NoError(t, err)
	require.Len(t, sources, 3)
	assert.Equal(t, "# Hello", sources[0].Markdown)
	assert.Equal(t, "## From file", sources[1].Markdown)
	assert.Contains(t, sources[2].Markdown, "Content unavailable", "unreadable files degrade")
	assert.Equal(t, palette[1], sources[1].Color)
}

func TestLoadSources_Document(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "landing.md"), []byte(landingDoc), 0644))

	t.Run("sections from headings", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Sections = nil
		cfg.Document = filepath.Join(dir, "landing.md")

		sources, err := LoadSources(cfg)
		require.NoError(t, err)
		assert.Len(t, sources, 4)
	})

	t.Run("configured order, bodies by id", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Document = filepath.Join(dir, "landing.md")
		cfg.Sections = []config.SectionConfig{
			{ID: "legal-section", Title: "Legal"},
			{ID: "advantages", Title: "Advantages"},
			{ID: "absent", Title: "Absent", Body: "fallback"},
		}
		sources, err := LoadSources(cfg)
		require.NoError(t, err)
		require.Len(t, sources, 3)
		assert.Contains(t, sources[0].Markdown, "Be nice.")
		assert.Contains(t, sources[1].Markdown, "Seamless")
		assert.Equal(t, "fallback", sources[2].Markdown)
	})

	t.Run("missing document is an error", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Document = filepath.Join(dir, "gone.md")
		_, err := LoadSources(cfg)
		assert.Error(t, err)
	})
}

func sampleSources() []Source {
	return []Source{
		{Section: navigation.Section{ID: "a", Title: "A"}, Markdown: "one\ntwo\nthree"},
		{Section: navigation.Section{ID: "b", Title: "B"}, Markdown: "four"},
		{Section: navigation.Section{ID: "c", Title: "C"}, Markdown: "\n\nfive\nsix\n\n"},
	}
}

func TestBuild_GeometryIsContiguous(t *testing.T) {
	l := Build(sampleSources(), nil, LayoutOptions{})

	// header + blank + body + trailing blank
	want := map[string]navigation.Geometry{
		"a": {OffsetTop: 0, Height: 6},
		"b": {OffsetTop: 6, Height: 4},
		"c": {OffsetTop: 10, Height: 5},
	}
	for id, g := range want {
		got, ok := l.SectionGeometry(id)
		require.True(t, ok, id)
		assert.Equal(t, g, got, id)
	}
	assert.Equal(t, 15, l.Len())
	assert.Equal(t, 15, len(strings.Split(l.Content(), "\n")))

	_, ok := l.SectionGeometry("zzz")
	assert.False(t, ok)
}

func TestBuild_MinSectionHeight(t *testing.T) {
	l := Build(sampleSources(), nil, LayoutOptions{MinSectionHeight: 10})
	for _, b := range l.Blocks() {
		assert.Equal(t, 10.0, b.Geometry.Height, b.Source.Section.ID)
	}
	assert.Equal(t, 30, l.Len())
	assert.Equal(t, 20, l.MaxOffset(10))
}

func TestBuild_WithGlamour(t *testing.T) {
	r, err := NewRenderer(config.ThemeDark, 60)
	require.NoError(t, err)

	sources, err := LoadSources(config.DefaultConfig())
	require.NoError(t, err)
	l := Build(sources, r, LayoutOptions{MinSectionHeight: 24})

	next := 0.0
	for _, b := range l.Blocks() {
		assert.Equal(t, next, b.Geometry.OffsetTop, b.Source.Section.ID)
		assert.GreaterOrEqual(t, b.Geometry.Height, 24.0)
		next = b.Geometry.End()
	}
	assert.Equal(t, float64(l.Len()), next)
}

func TestViewportHost_DrivesEngine(t *testing.T) {
	l := Build(sampleSources(), nil, LayoutOptions{MinSectionHeight: 10})
	vp := &Viewport{Layout: l, Height: 10}

	e, err := navigation.New(l.Sections(), vp)
	require.NoError(t, err)

	require.True(t, e.ScrollToSection("b"))
	assert.Equal(t, 10, vp.Offset)
	st := e.Refresh()
	assert.Equal(t, "b", st.CurrentSectionID)
	assert.Equal(t, 100.0, st.Progress("b"))

	vp.ScrollTo(1000)
	assert.Equal(t, 20, vp.Offset, "clamped to the last full viewport")
	vp.ScrollTo(-5)
	assert.Equal(t, 0, vp.Offset)
}
