package ui

import "testing"

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for black background")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme for white background")
	}

	t.Setenv("COLORFGBG", "")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when COLORFGBG is unset")
	}
}

func TestResolveTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "0;15")
	if ResolveTheme("dark").IsDark != true {
		t.Errorf("dark should be dark")
	}
	if ResolveTheme("light").IsDark {
		t.Errorf("light should be light")
	}
	if ResolveTheme("auto").IsDark {
		t.Errorf("auto should follow COLORFGBG")
	}
}
