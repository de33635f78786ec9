// Package cmd is a CLI tool to generate and run Poseidon permutations over
// user supplied prime fields.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zkfield/bigfield/debug"
)

var errNotFound = errors.New("no such file or directory")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "bigfield",
	Short:   "bigfield generates and runs poseidon permutations over prime fields",
	Version: buildString(),
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		if debug.Debug {
			fmt.Println(debug.Stack())
		}
		os.Exit(-1)
	}
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
