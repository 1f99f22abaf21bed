package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	termtest "github.com/danielgatis/go-termtest"
	"github.com/spf13/cobra"
)

var (
	sizeFlag     string
	profileFlag  string
	profilesFlag string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "termtest",
	Short: "Inspect captured terminal output",
	Long: "termtest feeds a captured byte stream (a file, or - for stdin) into a headless screen\n" +
		"and reports its contents, the Sixel regions it drew, or how two screen models disagree.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&sizeFlag, "size", "24x80", "screen size as ROWSxCOLS")
	flags.StringVar(&profileFlag, "profile", "", "terminal profile used for Sixel cell conversion")
	flags.StringVar(&profilesFlag, "profiles", "", "YAML file with extra terminal profiles")
	flags.StringVar(&logLevelFlag, "log-level", "warn", "log level (debug, info, warn, error)")
}

// newLogger builds the stderr logger selected by --log-level.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(logLevelFlag)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:  level,
		Prefix: "termtest",
	}), nil
}

// parseSize parses "ROWSxCOLS".
func parseSize(s string) (rows, cols int, err error) {
	r, c, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid size %q: expected ROWSxCOLS", s)
	}
	rows, err = strconv.Atoi(strings.TrimSpace(r))
	if err != nil || rows <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: bad row count", s)
	}
	cols, err = strconv.Atoi(strings.TrimSpace(c))
	if err != nil || cols <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q: bad column count", s)
	}
	return rows, cols, nil
}

// parseArea parses "row,col,width,height".
func parseArea(s string) (termtest.Area, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return termtest.Area{}, fmt.Errorf("invalid area %q: expected row,col,width,height", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return termtest.Area{}, fmt.Errorf("invalid area %q: field %d is not a non-negative integer", s, i+1)
		}
		v[i] = n
	}
	return termtest.NewArea(v[0], v[1], v[2], v[3]), nil
}

// resolveProfile looks up --profile among the builtin profiles and those in --profiles.
func resolveProfile() (termtest.Profile, bool, error) {
	if profileFlag == "" {
		return termtest.Profile{}, false, nil
	}

	profiles := termtest.BuiltinProfiles()
	if profilesFlag != "" {
		f, err := os.Open(profilesFlag)
		if err != nil {
			return termtest.Profile{}, false, err
		}
		defer f.Close()

		extra, err := termtest.LoadProfiles(f)
		if err != nil {
			return termtest.Profile{}, false, fmt.Errorf("%s: %w", profilesFlag, err)
		}
		// File profiles come first so they shadow builtins with the same name.
		profiles = append(extra, profiles...)
	}

	p, ok := termtest.FindProfile(profiles, profileFlag)
	if !ok {
		return termtest.Profile{}, false, fmt.Errorf("unknown profile %q", profileFlag)
	}
	return p, true, nil
}

// screenConfig is the resolved global flag set.
type screenConfig struct {
	rows, cols int
	profile    termtest.Profile
	logger     *log.Logger
}

func loadScreenConfig() (screenConfig, error) {
	rows, cols, err := parseSize(sizeFlag)
	if err != nil {
		return screenConfig{}, err
	}
	logger, err := newLogger()
	if err != nil {
		return screenConfig{}, err
	}
	profile, ok, err := resolveProfile()
	if err != nil {
		return screenConfig{}, err
	}
	if !ok {
		profile = termtest.DefaultProfile
	}
	// --size wins over the profile grid.
	profile.Rows, profile.Cols = rows, cols

	return screenConfig{rows: rows, cols: cols, profile: profile, logger: logger}, nil
}

// newScreen builds a screen from the global flags.
func (c screenConfig) newScreen() *termtest.Screen {
	return termtest.New(
		termtest.WithProfile(c.profile),
		termtest.WithLogger(c.logger),
	)
}

// readInput reads the capture file, or stdin for "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loadScreen feeds the capture at path into a screen built from the global flags.
func loadScreen(path string) (*termtest.Screen, error) {
	cfg, err := loadScreenConfig()
	if err != nil {
		return nil, err
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	s := cfg.newScreen()
	s.Feed(data)
	cfg.logger.Debug("capture loaded", "path", path, "bytes", len(data), "regions", len(s.SixelRegions()))
	return s, nil
}
