package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/JanieAbutu/ECE-Cryptography/internal/numparse"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/noncereuse"
)

func main() {
	var (
		signaturesFile = flag.String("signatures", "", "Path to signatures file (JSON or CSV)")
		format         = flag.String("format", "", "Signature file format (json or csv, default: from file extension)")
		curveName      = flag.String("curve", "secp256k1", "Curve the signatures were made on ("+strings.Join(ecc.SupportedCurves(), ", ")+")")
		publicKey      = flag.String("public-key", "", "Public key for verification (SEC 1 hex or \"x,y\")")
		knownA         = flag.Int("known-a", 0, "Known affine coefficient a (k2 = a*k1 + b)")
		knownB         = flag.Int("known-b", 0, "Known affine offset b (k2 = a*k1 + b)")
		knownNonce     = flag.String("known-nonce", "", "Leaked nonce of the first signature")
		bruteForce     = flag.Bool("brute-force", false, "Brute-force search for affine relationship")
		smartBrute     = flag.Bool("smart-brute", false, "Use smart brute-force (tries nonce reuse and common patterns first)")
		aRange         = flag.String("a-range", "-100,100", "Range for a values in brute-force (format: min,max)")
		bRange         = flag.String("b-range", "-100,100", "Range for b values in brute-force (format: min,max)")
		maxPairs       = flag.Int("max-pairs", 100, "Maximum signature pairs to test in brute-force (0 = all)")
		numWorkers     = flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect based on CPU cores)")
		verbose        = flag.Bool("v", false, "Log search progress")
	)
	flag.Parse()

	log.SetFlags(0)

	if *signaturesFile == "" {
		fmt.Fprintf(os.Stderr, "Error: --signatures is required\n")
		flag.Usage()
		os.Exit(1)
	}

	curve, err := ecc.FromName(*curveName)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	parser, err := newParser(*format, *signaturesFile, curve)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	client := noncereuse.NewClient().WithCurve(curve).WithParser(parser)
	if *verbose {
		client = client.WithLogf(log.Printf)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case *knownNonce != "":
		k, err := numparse.ParseBigInt(*knownNonce)
		if err != nil {
			log.Fatalf("Error parsing known-nonce: %v", err)
		}
		signatures, err := parser.ParseSignatures(*signaturesFile)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		if len(signatures) == 0 {
			log.Fatalf("Error: no signatures in %s", *signaturesFile)
		}

		priv, err := noncereuse.RecoverWithKnownNonce(signatures[0].Signature(), signatures[0].Z, k, curve.N())
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("\n[+] Recovered private key from signature 0:\n")
		fmt.Printf("    Private key: %s\n", priv.String())
		if *publicKey != "" {
			q, err := noncereuse.ParsePublicKey(curve, *publicKey)
			if err != nil {
				log.Fatalf("Error: %v", err)
			}
			if !noncereuse.VerifyRecoveredKey(curve, priv, q) {
				log.Fatalf("Error: recovered key does not match public key")
			}
			fmt.Println("    ✓ Verified against public key!")
		}

	case *knownA != 0 || *knownB != 0:
		fmt.Printf("Using known relationship: k2 = %d*k1 + %d\n", *knownA, *knownB)

		result, err := client.RecoverKeyWithKnownRelationship(ctx, *signaturesFile, int64(*knownA), int64(*knownB), *publicKey)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}

		fmt.Printf("\n[+] Recovered private key from signatures %d and %d:\n", result.SignaturePair[0], result.SignaturePair[1])
		fmt.Printf("    Private key: %s\n", result.PrivateKey.String())
		if result.Verified {
			fmt.Println("    ✓ Verified against public key!")
		}

	case *smartBrute:
		fmt.Printf("Loading signatures from %s...\n", *signaturesFile)

		result, err := client.RecoverKey(ctx, *signaturesFile, *publicKey)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		printResult(result)

	case *bruteForce:
		fmt.Printf("Loading signatures from %s...\n", *signaturesFile)

		aMin, aMax, err := parseRange(*aRange)
		if err != nil {
			log.Fatalf("Error parsing a-range: %v", err)
		}
		bMin, bMax, err := parseRange(*bRange)
		if err != nil {
			log.Fatalf("Error parsing b-range: %v", err)
		}

		// Nonce reuse is still checked first; common patterns are skipped.
		scanner := noncereuse.NewScanner(curve).
			WithRangeConfig(noncereuse.RangeConfig{
				ARange:     [2]int{aMin, aMax},
				BRange:     [2]int{bMin, bMax},
				MaxPairs:   *maxPairs,
				NumWorkers: *numWorkers,
				SkipZeroA:  true,
			}).
			WithPatternConfig(noncereuse.PatternConfig{
				IncludeCommonPatterns: false,
			})
		if *verbose {
			scanner = scanner.WithLogf(log.Printf)
		}

		result, err := client.WithStrategy(scanner).RecoverKey(ctx, *signaturesFile, *publicKey)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		printResult(result)

	default:
		fmt.Fprintf(os.Stderr, "Error: Must specify --known-a/--known-b, --known-nonce, --brute-force, or --smart-brute\n")
		flag.Usage()
		os.Exit(1)
	}
}

func newParser(format, file string, curve *ecc.Curve) (noncereuse.SignatureParser, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(file)), ".")
	}

	switch format {
	case "json":
		return &noncereuse.JSONParser{
			Curve:        curve,
			MessageField: "message",
			RField:       "r",
			SField:       "s",
			ZField:       "z",
		}, nil
	case "csv":
		return &noncereuse.CSVParser{
			Curve:      curve,
			MessageCol: "message",
			RCol:       "r",
			SCol:       "s",
			ZCol:       "z",
		}, nil
	default:
		return nil, fmt.Errorf("unknown signature format %q", format)
	}
}

func printResult(result *noncereuse.RecoveryResult) {
	fmt.Printf("\n[+] Successfully recovered private key!\n")
	fmt.Printf("    Private key: %s\n", result.PrivateKey.String())
	fmt.Printf("    Relationship: k2 = %s*k1 + %s\n", result.Relationship.A.String(), result.Relationship.B.String())
	fmt.Printf("    Signature pair: (%d, %d)\n", result.SignaturePair[0], result.SignaturePair[1])
	fmt.Printf("    Pattern: %s\n", result.Pattern)
	if result.Verified {
		fmt.Println("    ✓ Verified against public key!")
	} else {
		fmt.Println("    Consistent with both signatures (no public key given)")
	}
}

func parseRange(s string) (int, int, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid range format: %s", s)
	}

	min, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, err
	}

	max, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, err
	}

	if min > max {
		return 0, 0, fmt.Errorf("invalid range %d > %d", min, max)
	}

	return min, max, nil
}
