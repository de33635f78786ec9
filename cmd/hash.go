package cmd

import (
	"github.com/spf13/cobra"
)

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use: "hash [config.cfg]",

	Short:   "absorbs field elements in a poseidon sponge and squeezes a digest",
	Run:     cmdHash,
	Version: buildString(),
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.PersistentFlags().StringVar(&fInput, "input", "", "comma separated field elements, decimal or 0x prefixed hex")
	_ = hashCmd.MarkPersistentFlagRequired("input")
}
