package cmd

import (
	"github.com/spf13/cobra"
)

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use: "setup [config.cfg]",

	Short:   "generates a poseidon configuration for a prime field",
	Run:     cmdSetup,
	Version: buildString(),
}

var (
	fOrder         string
	fBitLen        uint
	fLittleEndian  bool
	fWidth         uint
	fFullRounds    uint
	fPartialRounds uint
	fSboxPower     uint
	fSeed          string
)

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.PersistentFlags().StringVar(&fOrder, "order", "", "specifies the field order, decimal or 0x prefixed hex")
	setupCmd.PersistentFlags().UintVar(&fBitLen, "bits", 0, "overrides the field bit length -- default is order.BitLen()")
	setupCmd.PersistentFlags().BoolVar(&fLittleEndian, "little-endian", false, "encodes field elements little endian")
	setupCmd.PersistentFlags().UintVar(&fWidth, "width", 3, "specifies the state width t")
	setupCmd.PersistentFlags().UintVar(&fFullRounds, "full-rounds", 8, "specifies the number of full rounds")
	setupCmd.PersistentFlags().UintVar(&fPartialRounds, "partial-rounds", 57, "specifies the number of partial rounds")
	setupCmd.PersistentFlags().UintVar(&fSboxPower, "sbox", 5, "specifies the s-box power, one of 3, 5, 7")
	setupCmd.PersistentFlags().StringVar(&fSeed, "seed", "bigfield poseidon", "seeds the round constant sampler")
	_ = setupCmd.MarkPersistentFlagRequired("order")
}
