// Command pseudo runs 9608 Pseudocode programs.
package main

import (
	"os"

	"github.com/cwbudde/pseudo9608/cmd/pseudo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
