package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekkehard/priamosbasic/internal/interp"
)

var listCmd = &cobra.Command{
	Use:   "list <file>",
	Short: "Tokenize and detokenize a file without executing it",
	Long: `Load a file's numbered lines into the program store and immediately
LIST them back out, without running anything; lines without a line
number are skipped. A dry-run of the LIST path useful for
format-checking a saved program.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer f.Close()

	in := interp.New(os.Stdout)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		// Only lines that start with a line number are entered; any
		// other line would execute immediately, so it is skipped.
		if t := strings.TrimLeft(line, " \t"); t == "" || t[0] < '0' || t[0] > '9' {
			continue
		}
		if err := in.InterpretLine(line); err != nil {
			return fmt.Errorf("list: %s: %w", args[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("list: %w", err)
	}

	return in.List(os.Stdout, 0, 0xFFFFFF)
}
