// Command fruitfilter is an interactive three-stage filter over a fruit
// table.
package main

import (
	"fmt"
	"os"

	"github.com/Iron-Ham/fruitfilter/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
