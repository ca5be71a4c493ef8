package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(c *cobra.Command, args []string) error {
		fmt.Printf("priamos version %s\n", Version)
		fmt.Printf("Commit: %s\n", GitCommit)
		fmt.Printf("Built:  %s\n", BuildDate)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
