package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var (
	jsonFlag bool
	areaFlag string
)

func init() {
	regionsCmd.Flags().BoolVar(&jsonFlag, "json", false, "print a JSON report")
	contentsCmd.Flags().BoolVar(&jsonFlag, "json", false, "print a JSON report")
	assertWithinCmd.Flags().StringVar(&areaFlag, "area", "", "expected area as row,col,width,height")
	assertWithinCmd.MarkFlagRequired("area")

	rootCmd.AddCommand(regionsCmd, contentsCmd, assertWithinCmd)
}

var regionsCmd = &cobra.Command{
	Use:   "regions FILE",
	Short: "List the Sixel regions drawn by a capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScreen(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonFlag {
			return writeJSON(out, s.Report())
		}
		regions := s.SixelRegions()
		if len(regions) == 0 {
			fmt.Fprintln(out, "(no sixel regions)")
			return nil
		}
		for i, r := range regions {
			fmt.Fprintf(out, "%d: %s (%dx%d px)\n", i, r.Bounds(), r.WidthPx, r.HeightPx)
		}
		for _, d := range s.Diagnostics() {
			fmt.Fprintf(out, "warning: %s\n", d)
		}
		return nil
	},
}

var contentsCmd = &cobra.Command{
	Use:   "contents FILE",
	Short: "Print the text left on screen by a capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadScreen(args[0])
		if err != nil {
			return err
		}
		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), s.Report())
		}
		fmt.Fprintln(cmd.OutOrStdout(), s.String())
		return nil
	},
}

var assertWithinCmd = &cobra.Command{
	Use:   "assert-within FILE",
	Short: "Fail unless every Sixel region lies inside an area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		area, err := parseArea(areaFlag)
		if err != nil {
			return err
		}
		s, err := loadScreen(args[0])
		if err != nil {
			return err
		}
		if err := s.Capture().AssertAllWithin(area); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d sixel region(s) inside %s\n", len(s.SixelRegions()), area)
		return nil
	},
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
