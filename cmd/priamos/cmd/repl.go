package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/external"
	"github.com/ekkehard/priamosbasic/internal/interp"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive PriamosBASIC REPL",
	Long: `Read lines from standard input: a line starting with a line number
is stored into the program; any other line executes immediately.
Type LIST to see the stored program, or an empty line / Ctrl-D to exit.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(_ *cobra.Command, _ []string) error {
	in := interp.New(os.Stdout)
	external.New().Register(in.Builtins())

	scanner := bufio.NewScanner(os.Stdin)
	return runInputLoop(scanner, os.Stdout, in)
}

func runInputLoop(scanner *bufio.Scanner, out io.Writer, in *interp.Interpreter) error {
	for {
		fmt.Fprint(out, "] ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := scanner.Text()
		if line == "" {
			return nil
		}
		if err := in.InterpretLine(line); err != nil {
			if be, ok := err.(*errors.BasicError); ok {
				fmt.Fprintln(os.Stderr, be.Format(false))
			} else {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}
}
