package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	termtest "github.com/danielgatis/go-termtest"
)

func TestParseSize(t *testing.T) {
	rows, cols, err := parseSize("30X100")
	if err != nil || rows != 30 || cols != 100 {
		t.Errorf("expected 30x100, got %dx%d (%v)", rows, cols, err)
	}

	for _, bad := range []string{"", "80", "0x10", "ax10", "10x-1"} {
		if _, _, err := parseSize(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseArea(t *testing.T) {
	area, err := parseArea("5, 30, 70, 30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if area != termtest.NewArea(5, 30, 70, 30) {
		t.Errorf("unexpected area %v", area)
	}

	for _, bad := range []string{"1,2,3", "1,2,3,x", "1,-2,3,4"} {
		if _, err := parseArea(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func writeCapture(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "capture.bin")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRegionsCommand(t *testing.T) {
	path := writeCapture(t, "\x1b[10;20H\x1bPq\"1;1;100;50#0~\x1b\\")

	out, err := run(t, "regions", "--size", "24x80", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "(9, 19) 13x9") {
		t.Errorf("expected region bounds, got %q", out)
	}
}

func TestAssertWithinCommand(t *testing.T) {
	path := writeCapture(t, "\x1b[3;11H\x1bPq\"1;1;200;12~\x1b\\")

	if _, err := run(t, "assert-within", "--area", "0,0,80,24", path); err != nil {
		t.Errorf("expected pass, got %v", err)
	}

	_, err := run(t, "assert-within", "--area", "5,30,70,30", path)
	if err == nil || !strings.Contains(err.Error(), "outside area") {
		t.Errorf("expected bounds error, got %v", err)
	}
}

func TestContentsCommandWithProfile(t *testing.T) {
	path := writeCapture(t, "hello\r\nworld")

	out, err := run(t, "contents", "--profile", "xterm", "--size", "5x20", path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello\nworld\n" {
		t.Errorf("unexpected contents %q", out)
	}

	if _, err := run(t, "contents", "--profile", "nope", path); err == nil {
		t.Error("expected unknown profile error")
	}
	profileFlag = ""
}
