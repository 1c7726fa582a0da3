package noncereuse

import (
	"context"
	"math/big"
	"strconv"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// Strategy defines the interface for key recovery search strategies.
// Implement this interface to create custom search strategies.
type Strategy interface {
	// Search looks for a nonce relationship between the signatures that
	// yields the private key.  publicKey is the point at infinity when no key
	// is known; results are then unverified.  It returns nil when nothing is
	// found or ctx is cancelled.
	Search(ctx context.Context, signatures []*SignedDigest, publicKey ecc.Point) *RecoveryResult

	// Name returns a human-readable name for this strategy.
	Name() string
}

// Pattern represents a specific affine pattern to test.
type Pattern struct {
	A        *big.Int
	B        *big.Int
	Name     string // Human-readable description
	Priority int    // Lower priority = tested first
}

// RangeConfig configures the search range for brute-force operations.
type RangeConfig struct {
	// ARange defines the range for a values [Min, Max] (inclusive)
	ARange [2]int

	// BRange defines the range for b values [Min, Max] (inclusive)
	BRange [2]int

	// MaxPairs limits the number of signature pairs to test
	MaxPairs int

	// NumWorkers controls parallelization (0 = runtime.NumCPU)
	NumWorkers int

	// SkipZeroA skips a=0, which never relates two nonces usefully
	SkipZeroA bool
}

// DefaultRangeConfig returns the default configuration.  With the default
// ranges the scanner runs its built-in schedule of widening ranges.
func DefaultRangeConfig() RangeConfig {
	return RangeConfig{
		ARange:     [2]int{-100, 100},
		BRange:     [2]int{-100, 100},
		MaxPairs:   100,
		NumWorkers: 0,
		SkipZeroA:  true,
	}
}

// PatternConfig configures custom patterns to test.
type PatternConfig struct {
	// CustomPatterns are additional patterns to test before brute-force
	CustomPatterns []Pattern

	// IncludeCommonPatterns includes built-in common patterns
	IncludeCommonPatterns bool
}

// DefaultPatternConfig returns a configuration with common patterns enabled.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		CustomPatterns:        []Pattern{},
		IncludeCommonPatterns: true,
	}
}

// CommonPatterns returns the built-in nonce relationships tried before any
// range search: reuse, small counters, fixed steps, multiples and negation.
func CommonPatterns() []Pattern {
	patterns := []Pattern{
		{big.NewInt(1), big.NewInt(0), "same_nonce", 1},
	}
	for _, step := range []int64{1, 2, 3, 4, 5} {
		patterns = append(patterns,
			Pattern{big.NewInt(1), big.NewInt(step), "counter_+" + itoa(step), 2},
			Pattern{big.NewInt(1), big.NewInt(-step), "counter_-" + itoa(step), 2},
		)
	}
	for _, step := range []int64{8, 10, 16, 32, 64, 100, 128, 256, 512, 1000, 1024, 10000} {
		patterns = append(patterns, Pattern{big.NewInt(1), big.NewInt(step), "step_" + itoa(step), 4})
	}
	return append(patterns,
		Pattern{big.NewInt(2), big.NewInt(0), "multiply_2", 5},
		Pattern{big.NewInt(2), big.NewInt(1), "multiply_2_+1", 5},
		Pattern{big.NewInt(3), big.NewInt(0), "multiply_3", 5},
		Pattern{big.NewInt(4), big.NewInt(0), "multiply_4", 5},
		Pattern{big.NewInt(-1), big.NewInt(0), "negate", 6},
	)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
