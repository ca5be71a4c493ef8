// Package cmd implements the PriamosBASIC CLI host (§4.N of
// SPEC_FULL.md), the command-line entry point spec.md §1 explicitly
// places outside the core. Grounded on the teacher's
// cmd/dwscript/cmd/root.go: a cobra root command carrying build
// metadata and a persistent --verbose flag, with one subcommand file
// per mode of operation.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

// base is a cosmetic echo of the numeric base LIST output assumes;
// PriamosBASIC's detokenizer always renders numeric literals in
// decimal (§4.D), so this flag never changes what gets printed -- it
// only gets surfaced back in --verbose banners for operator sanity.
var base int

var rootCmd = &cobra.Command{
	Use:   "priamos",
	Short: "PriamosBASIC interpreter",
	Long: `priamos is a Go implementation of PriamosBASIC, a line-numbered
BASIC dialect: numbered lines become stored program text, unnumbered
lines execute immediately.`,
	Version: Version,
	RunE: func(c *cobra.Command, args []string) error {
		return runRepl(c, args)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&base, "base", 10, "numeric base to echo in --verbose banners (cosmetic only)")
}
