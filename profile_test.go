package termtest

import (
	"strings"
	"testing"
)

func TestProfileCellSize(t *testing.T) {
	w, h := XtermProfile.CellSizePixels()
	if w != 8 || h != 16 {
		t.Errorf("expected 8x16, got %dx%d", w, h)
	}

	w, h = Profile{Name: "empty"}.CellSizePixels()
	if w != DefaultCellWidth || h != DefaultCellHeight {
		t.Errorf("expected defaults, got %dx%d", w, h)
	}
}

func TestProfileWindowSize(t *testing.T) {
	w, h := Profile{CellWidth: 10, CellHeight: 20, Rows: 5, Cols: 40}.WindowSizePixels()
	if w != 400 || h != 100 {
		t.Errorf("expected 400x100, got %dx%d", w, h)
	}

	w, h = DefaultProfile.WindowSizePixels()
	if w != 640 || h != 144 {
		t.Errorf("expected 640x144, got %dx%d", w, h)
	}
}

func TestLoadProfiles(t *testing.T) {
	input := `
- name: kitty
  cell_width: 10
  cell_height: 20
- name: small
  cell_width: 6
  cell_height: 12
  rows: 30
  cols: 100
`
	profiles, err := LoadProfiles(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	want := Profile{Name: "small", CellWidth: 6, CellHeight: 12, Rows: 30, Cols: 100}
	if profiles[1] != want {
		t.Errorf("expected %+v, got %+v", want, profiles[1])
	}

	p, ok := FindProfile(profiles, "KITTY")
	if !ok || p.CellHeight != 20 {
		t.Errorf("expected case-insensitive lookup, got %+v, %v", p, ok)
	}
	if _, ok := FindProfile(profiles, "wezterm"); ok {
		t.Error("expected missing profile")
	}
}

func TestLoadProfilesEmpty(t *testing.T) {
	profiles, err := LoadProfiles(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(profiles) != 0 {
		t.Errorf("expected no profiles, got %v", profiles)
	}
}

func TestLoadProfilesInvalid(t *testing.T) {
	inputs := []string{
		"- cell_width: 10\n",
		"- name: bad\n  cell_width: -1\n",
		"name: not-a-list\n",
		"- name: [\n",
	}

	for _, input := range inputs {
		if _, err := LoadProfiles(strings.NewReader(input)); err == nil {
			t.Errorf("expected error for %q", input)
		}
	}
}

func TestBuiltinProfiles(t *testing.T) {
	p, ok := FindProfile(BuiltinProfiles(), "default")
	if !ok || p != DefaultProfile {
		t.Errorf("expected default profile, got %+v", p)
	}
}
