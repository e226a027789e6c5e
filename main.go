// ABOUTME: Entry point for the parlor CLI
// ABOUTME: Terminal client for tracking and sharing golf rounds

package main

import (
	"fmt"
	"os"

	"github.com/parlor-golf/parlor-cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
