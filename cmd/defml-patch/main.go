/*
defml-patch applies ordered patch units to a base document and prints
the patched result together with an execution report.

Usage:

	defml-patch apply base.xml patch1.xml patch2.xml
	defml-patch apply --manifest run.yaml --diff
	defml-patch ops

A manifest lists the base document, the present capabilities and the
ordered patch files, each optionally gated by a boolean expression
over has("Capability").
*/
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "defml-patch",
	Short:         "declarative document patching",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(opsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
