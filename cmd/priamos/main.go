package main

import (
	"fmt"
	"os"

	"github.com/ekkehard/priamosbasic/cmd/priamos/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
