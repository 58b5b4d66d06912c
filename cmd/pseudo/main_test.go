package main

import (
	"os"
	"testing"

	"github.com/cwbudde/pseudo9608/cmd/pseudo/cmd"
	"github.com/rogpeppe/go-internal/testscript"
)

// TestMain lets testscript re-exec this test binary as the "pseudo"
// command itself, so .txtar scripts under testdata/script drive the real
// CLI end to end instead of a mock.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"pseudo": runPseudo,
	}))
}

func runPseudo() int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func TestCLIScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata/script",
	})
}
