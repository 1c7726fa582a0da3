// Package noncereuse recovers ECDSA private keys from signatures whose
// nonces are reused or related.
//
// Two signatures made with the same nonce share r, and the key falls out of
// two linear equations:
//
//	k = (z1 - z2) / (s1 - s2)
//	d = (s1*k - z1) / r
//
// The same elimination works when the nonces are affinely related
// (k₂ = a·k₁ + b) and a, b are known or small enough to search.
//
// # Quick Start
//
//	secret, err := noncereuse.Recover(sig1, sig2, z1, z2, curve.N())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("Recovered key: %s\n", secret.D.Text(16))
//
// # Searching Files
//
// The Client reads signature files and runs a Scanner over them:
//
//	client := noncereuse.NewClient().WithCurve(ecc.Secp256k1())
//	result, err := client.RecoverKey(ctx, "signatures.json", "03...")
//
// The scanner checks for repeated r values first, then common and custom
// patterns, then widening (a, b) ranges on a worker pool:
//
//	scanner := noncereuse.NewScanner(ecc.Secp256k1()).
//	    WithRangeConfig(noncereuse.RangeConfig{
//	        ARange:     [2]int{1, 10},
//	        BRange:     [2]int{-50000, 50000},
//	        MaxPairs:   100,
//	        NumWorkers: 16,
//	    })
//
//	client := noncereuse.NewClient().WithStrategy(scanner)
//
// # Streams
//
// A Detector watches signatures as they arrive and recovers the key the
// moment a signer repeats r:
//
//	det := noncereuse.NewDetector(ecc.Secp256k1())
//	if secret, _ := det.Observe(address, sd); secret != nil {
//	    // key compromised
//	}
package noncereuse
