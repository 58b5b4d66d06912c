package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/pseudo9608/internal/driver"
	"github.com/cwbudde/pseudo9608/pkg/printer"
	"github.com/spf13/cobra"
)

func runScript(cmd *cobra.Command, args []string) error {
	path := "main.pseudo"
	if len(args) == 1 {
		path = args[0]
	}

	dumpFrame, _ := cmd.Flags().GetString("dump-frame")

	if verbose {
		fmt.Fprintf(os.Stderr, "Running %s\n", path)
	}

	result, err := driver.RunFile(path, driver.Options{})
	if err != nil {
		exitWithError("failed to read %s: %v", path, err)
		return nil
	}

	if result.Diagnostic != "" {
		fmt.Fprintln(os.Stderr, result.Diagnostic)
	}

	if result.ExitCode == driver.ExitOK {
		switch dumpFrame {
		case "text":
			fmt.Fprint(os.Stderr, printer.Frame(result.Frame))
		case "json":
			doc, err := driver.DumpFrameJSON(result)
			if err != nil {
				exitWithError("failed to render frame as JSON: %v", err)
				return nil
			}
			fmt.Fprintln(os.Stderr, doc)
		}
	}

	if result.ExitCode != driver.ExitOK {
		os.Exit(result.ExitCode)
	}
	return nil
}
