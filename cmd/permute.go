package cmd

import (
	"github.com/spf13/cobra"
)

// permuteCmd represents the permute command
var permuteCmd = &cobra.Command{
	Use: "permute [config.cfg]",

	Short:   "runs the poseidon permutation on a full state",
	Run:     cmdPermute,
	Version: buildString(),
}

var fInput string

func init() {
	rootCmd.AddCommand(permuteCmd)
	permuteCmd.PersistentFlags().StringVar(&fInput, "input", "", "comma separated state elements, decimal or 0x prefixed hex")
	_ = permuteCmd.MarkPersistentFlagRequired("input")
}
