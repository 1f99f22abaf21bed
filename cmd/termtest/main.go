// Command termtest inspects captured terminal output: the text grid it draws,
// the Sixel images it places and whether two screen models agree on it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
