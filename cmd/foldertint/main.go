// foldertint - folder icon recolouring
//
// foldertint renders folder icons in a chosen colour from base icons authored
// in a reference colour, and manages the base icon assets.
package main

import (
	"os"

	"github.com/jmylchreest/foldertint/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
