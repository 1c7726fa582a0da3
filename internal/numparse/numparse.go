// Package numparse converts the loosely typed numbers found in signature
// dumps (hex strings, decimal strings and JSON numbers) to big integers.
package numparse

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// ParseBigInt parses a big integer from the formats signature dumps use.
//
// Strings with a 0x prefix are always hex.  Unprefixed strings are hex when
// they contain a letter a-f and decimal otherwise, so long decimal values
// such as private keys round-trip unchanged.  JSON numbers and Go integers
// are accepted as they are; floats only when they hold an integer.
func ParseBigInt(val interface{}) (*big.Int, error) {
	switch v := val.(type) {
	case string:
		return parseString(v)

	case json.Number:
		z, ok := new(big.Int).SetString(string(v), 10)
		if !ok {
			return nil, fmt.Errorf("invalid number format: %s", v)
		}
		return z, nil

	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid number format: %v", v)
		}
		z, _ := big.NewFloat(v).Int(nil)
		return z, nil

	case int:
		return big.NewInt(int64(v)), nil

	case int64:
		return big.NewInt(v), nil

	case uint64:
		return new(big.Int).SetUint64(v), nil

	case *big.Int:
		if v == nil {
			return nil, fmt.Errorf("nil integer")
		}
		return new(big.Int).Set(v), nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", val)
	}
}

func parseString(v string) (*big.Int, error) {
	s := strings.TrimSpace(v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
		base = 16
	case strings.ContainsAny(s, "abcdefABCDEF"):
		base = 16
	}

	z, ok := new(big.Int).SetString(s, base)
	if !ok || s == "" {
		return nil, fmt.Errorf("invalid number format: %s", v)
	}
	if neg {
		z.Neg(z)
	}
	return z, nil
}

// DecodeHex decodes a hex string, handling an optional 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "0x")
	s = strings.TrimPrefix(s, "0X")
	return hex.DecodeString(s)
}
