package cmd

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekkehard/priamosbasic/internal/errors"
	"github.com/ekkehard/priamosbasic/internal/external"
	"github.com/ekkehard/priamosbasic/internal/interp"
	"github.com/ekkehard/priamosbasic/internal/util"
)

var traceRun bool

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Load and run a PriamosBASIC program",
	Long: `Feed a file's lines through the same interpret_line seam the REPL
uses, then execute the stored program in line-number order. GOTO/
GOSUB and the rest of the control-flow statement family are outside
the core, so RUN here is a strictly linear, top-to-bottom pass.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&traceRun, "trace", false, "print each stored line before executing it")
}

func runRun(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	defer f.Close()

	in := interp.New(os.Stdout)
	external.New().Register(in.Builtins())

	if verbose {
		fmt.Fprintf(os.Stderr, "[session %s] loading %s (base %d)\n", in.SessionID, args[0], base)
	}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if err := in.InterpretLine(line); err != nil {
			return fmt.Errorf("run: %s: %w", args[0], err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	start := time.Now()
	if traceRun {
		if err := in.List(os.Stderr, 0, 0xFFFFFF); err != nil {
			return err
		}
	}
	if err := in.RunProgram(); err != nil {
		if be, ok := err.(*errors.BasicError); ok {
			return fmt.Errorf("run: %s", be.Format(true))
		}
		return fmt.Errorf("run: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[session %s] finished in %s\n", in.SessionID, util.Elapsed(start))
	}
	return nil
}
