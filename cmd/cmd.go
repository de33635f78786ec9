package cmd

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/zkfield/bigfield/field"
	"github.com/zkfield/bigfield/poseidon"
)

func cmdSetup(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing config path -- bigfield setup -h for help")
		os.Exit(-1)
	}
	configPath := filepath.Clean(args[0])

	order, ok := new(big.Int).SetString(fOrder, 0)
	if !ok {
		fmt.Println("can't parse field order", fOrder)
		os.Exit(-1)
	}
	var opts []field.FpOption
	if fBitLen > 0 {
		opts = append(opts, field.WithBitLen(int(fBitLen)))
	}
	if fLittleEndian {
		opts = append(opts, field.WithLittleEndian())
	}
	f, err := field.NewFp(order, opts...)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	// generate the configuration
	start := time.Now()
	cfg, err := poseidon.GenerateConfig(f, int(fWidth), int(fFullRounds), int(fPartialRounds), int(fSboxPower), []byte(fSeed))
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}

	configFile, err := os.Create(configPath)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	defer configFile.Close()
	if _, err := cfg.WriteTo(configFile); err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %s\n", "generated poseidon config", configPath)
	fmt.Printf("%-30s %-30s %s\n", "setup completed", configPath, time.Since(start))
}

func cmdPermute(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing config path -- bigfield permute -h for help")
		os.Exit(-1)
	}
	configPath := filepath.Clean(args[0])

	perm, err := loadPermutation(configPath)
	if err != nil {
		fmt.Println("can't load config")
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s\n", "loaded poseidon config", configPath)

	state, err := parseInputs(fInput)
	if err != nil {
		fmt.Println("can't parse input", err)
		os.Exit(-1)
	}

	start := time.Now()
	out, err := perm.Permute(state)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	for i, x := range out {
		fmt.Printf("state[%d] = %s\n", i, x.String())
	}
	fmt.Printf("%-30s %-30s %s\n", "permutation completed", configPath, time.Since(start))
}

func cmdHash(cmd *cobra.Command, args []string) {
	if len(args) < 1 {
		fmt.Println("missing config path -- bigfield hash -h for help")
		os.Exit(-1)
	}
	configPath := filepath.Clean(args[0])

	perm, err := loadPermutation(configPath)
	if err != nil {
		fmt.Println("can't load config")
		fmt.Println(err)
		os.Exit(-1)
	}
	fmt.Printf("%-30s %-30s\n", "loaded poseidon config", configPath)

	inputs, err := parseInputs(fInput)
	if err != nil {
		fmt.Println("can't parse input", err)
		os.Exit(-1)
	}

	start := time.Now()
	digest, err := poseidon.Hash(perm, inputs...)
	if err != nil {
		fmt.Println("error:", err)
		os.Exit(-1)
	}
	fmt.Printf("digest = %s\n", digest.String())
	fmt.Printf("%-30s %-30s %s\n", "hash completed", configPath, time.Since(start))
}

func loadPermutation(configPath string) (*poseidon.Permutation[*big.Int], error) {
	// first, let's ensure the provided config exists.
	if !fileExists(configPath) {
		return nil, errNotFound
	}

	// now let's deserialize the configuration
	configFile, err := os.Open(configPath)
	if err != nil {
		return nil, err
	}
	defer configFile.Close()
	var cfg poseidon.Config[*big.Int]
	if _, err := cfg.ReadFrom(configFile); err != nil {
		return nil, err
	}
	return poseidon.New(cfg)
}

func parseInputs(input string) ([]*big.Int, error) {
	parts := strings.Split(input, ",")
	xs := make([]*big.Int, len(parts))
	for i, p := range parts {
		x, ok := new(big.Int).SetString(strings.TrimSpace(p), 0)
		if !ok {
			return nil, fmt.Errorf("%q is not a decimal or 0x prefixed integer", p)
		}
		xs[i] = x
	}
	return xs, nil
}
