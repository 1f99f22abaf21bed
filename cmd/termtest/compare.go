package main

import (
	"fmt"

	termtest "github.com/danielgatis/go-termtest"
	"github.com/danielgatis/go-termtest/ansiscreen"
	"github.com/spf13/cobra"
)

var stepFlag int

func init() {
	compareCmd.Flags().IntVar(&stepFlag, "step", 1, "bytes fed per comparison when searching for the first divergence")
	rootCmd.AddCommand(compareCmd)
}

var compareCmd = &cobra.Command{
	Use:   "compare FILE",
	Short: "Compare the tokenizer screen with the ansicode screen on a capture",
	Long: "compare feeds the capture into the go-vte based screen and into the independent\n" +
		"go-ansicode based screen, reports every cell that differs and the byte offset where\n" +
		"they first diverged.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadScreenConfig()
		if err != nil {
			return err
		}
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		newSUT := func() *ansiscreen.Screen {
			return ansiscreen.New(cfg.rows, cfg.cols,
				ansiscreen.WithSizeProvider(cfg.profile),
				ansiscreen.WithLogger(cfg.logger))
		}

		ref, sut := cfg.newScreen(), newSUT()
		ref.Feed(data)
		if _, err := sut.Write(data); err != nil {
			return err
		}

		result := termtest.CompareScreens(ref, sut)
		out := cmd.OutOrStdout()
		if result.Passed {
			fmt.Fprintln(out, "screens match")
			return nil
		}

		offset, err := termtest.FindFirstDivergence(data, cfg.newScreen(), newSUT(), stepFlag)
		if err != nil {
			return err
		}
		if offset >= 0 {
			fmt.Fprintf(out, "first divergence after %d byte(s)\n", offset)
		}
		return result.Err()
	},
}
