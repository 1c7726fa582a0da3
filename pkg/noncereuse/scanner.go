package noncereuse

import (
	"context"
	"fmt"
	"math/big"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// Scanner implements a multi-phase search that checks for reused nonces,
// then tries common and custom affine patterns, then expands a brute-force
// range over (a, b).
//
// Every candidate key is checked before it is reported: against the public
// key when one is given, otherwise by re-deriving both nonces of the pair
// and comparing kG with the signatures' r values.
type Scanner struct {
	RangeConfig   RangeConfig
	PatternConfig PatternConfig

	curve *ecc.Curve
	logf  func(format string, args ...interface{})
}

// NewScanner creates a scanner for signatures on curve with default settings.
func NewScanner(curve *ecc.Curve) *Scanner {
	return &Scanner{
		RangeConfig:   DefaultRangeConfig(),
		PatternConfig: DefaultPatternConfig(),
		curve:         curve,
	}
}

// WithRangeConfig sets the range configuration for the scanner.
func (s *Scanner) WithRangeConfig(config RangeConfig) *Scanner {
	s.RangeConfig = config
	return s
}

// WithPatternConfig sets the pattern configuration for the scanner.
func (s *Scanner) WithPatternConfig(config PatternConfig) *Scanner {
	s.PatternConfig = config
	return s
}

// WithLogf sets a progress logger.  nil silences the scanner.
func (s *Scanner) WithLogf(logf func(format string, args ...interface{})) *Scanner {
	s.logf = logf
	return s
}

// Name returns the name of this strategy.
func (s *Scanner) Name() string {
	return "NonceScanner"
}

func (s *Scanner) log(format string, args ...interface{}) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}

// candidateCheck reports whether d is the key behind signatures i and j.
type candidateCheck func(d *big.Int, i, j int) bool

// Search implements the Strategy interface.
func (s *Scanner) Search(ctx context.Context, signatures []*SignedDigest, publicKey ecc.Point) *RecoveryResult {
	if len(signatures) < 2 {
		return nil
	}

	check := s.checker(signatures, publicKey)
	verified := !publicKey.IsInfinity()

	s.log("starting key recovery with %d signatures", len(signatures))

	// Phase 0: Check for same nonce reuse (fastest)
	s.log("phase 0: checking for nonce reuse")
	if result := s.checkSameNonceReuse(signatures, check, verified); result != nil {
		s.log("found nonce reuse in pair %v", result.SignaturePair)
		return result
	}

	// Phase 1: Try common patterns
	if s.PatternConfig.IncludeCommonPatterns {
		s.log("phase 1: trying common patterns")
		if result := s.tryPatterns(ctx, signatures, CommonPatterns(), check, verified); result != nil {
			s.log("found pattern %s", result.Pattern)
			return result
		}
	}

	// Phase 2: Try custom patterns
	if len(s.PatternConfig.CustomPatterns) > 0 {
		s.log("phase 2: trying %d custom patterns", len(s.PatternConfig.CustomPatterns))
		if result := s.tryPatterns(ctx, signatures, s.PatternConfig.CustomPatterns, check, verified); result != nil {
			s.log("found custom pattern %s", result.Pattern)
			return result
		}
	}

	// Phase 3: Adaptive range search
	s.log("phase 3: starting adaptive range search")
	return s.adaptiveRangeSearch(ctx, signatures, check, verified)
}

// checker builds the candidate check for a search.
func (s *Scanner) checker(signatures []*SignedDigest, publicKey ecc.Point) candidateCheck {
	if !publicKey.IsInfinity() {
		isKey := keyChecker(s.curve, publicKey)
		return func(d *big.Int, _, _ int) bool {
			return isKey(d)
		}
	}

	n := s.curve.N()
	return func(d *big.Int, i, j int) bool {
		if d.Sign() <= 0 || d.Cmp(n) >= 0 {
			return false
		}
		return s.consistent(signatures[i], d) && s.consistent(signatures[j], d)
	}
}

// consistent reports whether d reproduces the signature's r: the nonce
// k = s⁻¹(z + rd) must satisfy (kG).x ≡ r (mod n).
func (s *Scanner) consistent(sd *SignedDigest, d *big.Int) bool {
	n := s.curve.N()
	sInv, err := ecc.ModInverse(sd.S, n)
	if err != nil {
		return false
	}
	k := new(big.Int).Mul(sd.R, d)
	k.Add(k, sd.Z)
	k.Mul(k, sInv)
	k.Mod(k, n)
	if k.Sign() == 0 {
		return false
	}

	var x *big.Int
	if s.curve == ecc.Secp256k1() {
		x = secp256k1.PrivKeyFromBytes(ecc.ScalarBytes(s.curve, k)).PubKey().X()
	} else {
		pt, err := s.curve.ScalarBaseMult(k)
		if err != nil {
			return false
		}
		var ok bool
		if x, _, ok = pt.Coordinates(); !ok {
			return false
		}
	}
	return x.Mod(x, n).Cmp(sd.R) == 0
}

// checkSameNonceReuse checks for identical r values.  Equal r means
// k2 = k1 or k2 = -k1, so both relationships are tried.
func (s *Scanner) checkSameNonceReuse(signatures []*SignedDigest, check candidateCheck, verified bool) *RecoveryResult {
	n := s.curve.N()
	for i := 0; i < len(signatures); i++ {
		for j := i + 1; j < len(signatures); j++ {
			if signatures[i].R.Cmp(signatures[j].R) != 0 {
				continue
			}

			secret, err := Recover(signatures[i].Signature(), signatures[j].Signature(),
				signatures[i].Z, signatures[j].Z, n)
			if err == nil && check(secret.D, i, j) {
				return &RecoveryResult{
					PrivateKey:    secret.D,
					Relationship:  SameNonce(),
					SignaturePair: [2]int{i, j},
					Verified:      verified,
					Pattern:       "same_nonce_reuse",
				}
			}

			// A malleated second signature corresponds to -k.
			negated := AffineRelationship{A: big.NewInt(-1), B: big.NewInt(0)}
			if result := s.tryPair(signatures, i, j, negated, "negated_nonce_reuse", check, verified); result != nil {
				return result
			}
		}
	}
	return nil
}

// tryPatterns tries each (a, b) pattern across all signature pairs.
func (s *Scanner) tryPatterns(ctx context.Context, signatures []*SignedDigest, patterns []Pattern, check candidateCheck, verified bool) *RecoveryResult {
	for _, pattern := range patterns {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		rel := AffineRelationship{A: pattern.A, B: pattern.B}
		for i := 0; i < len(signatures); i++ {
			for j := i + 1; j < len(signatures); j++ {
				if result := s.tryPair(signatures, i, j, rel, pattern.Name, check, verified); result != nil {
					return result
				}
			}
		}
	}
	return nil
}

// tryPair tests a single relationship on the pair (i, j).
func (s *Scanner) tryPair(signatures []*SignedDigest, i, j int, rel AffineRelationship, name string, check candidateCheck, verified bool) *RecoveryResult {
	priv, err := RecoverAffine(signatures[i], signatures[j], rel, s.curve.N())
	if err != nil || !check(priv, i, j) {
		return nil
	}
	return &RecoveryResult{
		PrivateKey:    priv,
		Relationship:  rel,
		SignaturePair: [2]int{i, j},
		Verified:      verified,
		Pattern:       name,
	}
}

// searchRange is one step of the adaptive schedule.
type searchRange struct {
	aRange [2]int
	bRange [2]int
	name   string
}

// adaptiveRangeSearch performs an adaptive range search with expanding ranges.
func (s *Scanner) adaptiveRangeSearch(ctx context.Context, signatures []*SignedDigest, check candidateCheck, verified bool) *RecoveryResult {
	ranges := []searchRange{
		{[2]int{1, 1}, [2]int{-100, 100}, "a=1, small b"},
		{[2]int{1, 1}, [2]int{-1000, 1000}, "a=1, medium b"},
		{[2]int{1, 1}, [2]int{-10000, 10000}, "a=1, larger b"},
		{[2]int{2, 4}, [2]int{-1000, 1000}, "small a, medium b"},
		{[2]int{-5, -1}, [2]int{-1000, 1000}, "negative a, medium b"},
		{[2]int{1, 10}, [2]int{-50000, 50000}, "wider a, larger b"},
		{[2]int{1, 100}, [2]int{-500000000, 500000000}, "very wide search"},
	}

	// Use the configured range if it's different from defaults
	defaults := DefaultRangeConfig()
	if s.RangeConfig.ARange != defaults.ARange || s.RangeConfig.BRange != defaults.BRange {
		ranges = []searchRange{{s.RangeConfig.ARange, s.RangeConfig.BRange, "custom range"}}
	}

	for _, r := range ranges {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		aCount := r.aRange[1] - r.aRange[0] + 1
		if s.RangeConfig.SkipZeroA && r.aRange[0] <= 0 && r.aRange[1] >= 0 {
			aCount--
		}
		bCount := r.bRange[1] - r.bRange[0] + 1
		s.log("%s: testing a in [%d,%d], b in [%d,%d] (~%d combinations per pair)",
			r.name, r.aRange[0], r.aRange[1], r.bRange[0], r.bRange[1], aCount*bCount)

		if result := s.rangeSearch(ctx, signatures, r.aRange, r.bRange, check, verified); result != nil {
			s.log("found key in %s", r.name)
			return result
		}
	}

	s.log("all phases completed, key not found")
	return nil
}

// rangeSearch spreads the signature pairs over a worker pool; each worker
// tries every (a, b) in range on its pair.
func (s *Scanner) rangeSearch(ctx context.Context, signatures []*SignedDigest, aRange, bRange [2]int, check candidateCheck, verified bool) *RecoveryResult {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	numWorkers := s.RangeConfig.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	maxPairs := s.RangeConfig.MaxPairs

	var tested int64
	resultChan := make(chan *RecoveryResult, 1)
	workChan := make(chan [2]int, numWorkers)

	// Generate work
	go func() {
		defer close(workChan)
		pairCount := 0
		for i := 0; i < len(signatures); i++ {
			for j := i + 1; j < len(signatures); j++ {
				if maxPairs > 0 && pairCount >= maxPairs {
					return
				}
				select {
				case <-ctx.Done():
					return
				case workChan <- [2]int{i, j}:
					pairCount++
				}
			}
		}
	}()

	n := s.curve.N()
	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range workChan {
				if ctx.Err() != nil {
					return
				}
				i, j := pair[0], pair[1]
				for a := aRange[0]; a <= aRange[1]; a++ {
					if s.RangeConfig.SkipZeroA && a == 0 {
						continue
					}
					aBig := big.NewInt(int64(a))
					for b := bRange[0]; b <= bRange[1]; b++ {
						if count := atomic.AddInt64(&tested, 1); count%4096 == 0 {
							if ctx.Err() != nil {
								return
							}
							if count%1000000 == 0 {
								s.log("tested %d combinations", count)
							}
						}

						rel := AffineRelationship{A: aBig, B: big.NewInt(int64(b))}
						priv, err := RecoverAffine(signatures[i], signatures[j], rel, n)
						if err != nil || !check(priv, i, j) {
							continue
						}

						select {
						case resultChan <- &RecoveryResult{
							PrivateKey:    priv,
							Relationship:  rel,
							SignaturePair: [2]int{i, j},
							Verified:      verified,
							Pattern:       fmt.Sprintf("brute_force_a%d_b%d", a, b),
						}:
							cancel()
						default:
						}
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	s.log("tested %d combinations", atomic.LoadInt64(&tested))

	select {
	case result := <-resultChan:
		return result
	default:
		return nil
	}
}
