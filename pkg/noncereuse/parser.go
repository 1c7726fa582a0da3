package noncereuse

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/JanieAbutu/ECE-Cryptography/internal/numparse"
	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

// SignatureParser defines the interface for parsing signatures from various sources.
type SignatureParser interface {
	// ParseSignatures parses signatures from a source and returns them.
	ParseSignatures(source string) ([]*SignedDigest, error)
}

// JSONParser parses signatures from JSON files.
type JSONParser struct {
	Curve        *ecc.Curve // Curve whose order reduces hashed messages (default: secp256k1)
	MessageField string     // Field name for message (default: "message")
	RField       string     // Field name for r (default: "r")
	SField       string     // Field name for s (default: "s")
	ZField       string     // Field name for z/hash (default: empty = hash message)
}

// ParseSignatures parses signatures from a JSON file.
//
// Expected format:
//
//	[
//	  {"message": "...", "r": "...", "s": "..."},
//	  {"z": "0x...", "r": "0x...", "s": "0x..."}
//	]
func (p *JSONParser) ParseSignatures(jsonFile string) ([]*SignedDigest, error) {
	file, err := os.Open(jsonFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse parses signatures from a JSON stream.
func (p *JSONParser) Parse(r io.Reader) ([]*SignedDigest, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber() // Preserve large numbers as json.Number instead of float64

	var items []map[string]interface{}
	if err := decoder.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	messageField := orDefault(p.MessageField, "message")
	rField := orDefault(p.RField, "r")
	sField := orDefault(p.SField, "s")
	curve := curveOrDefault(p.Curve)

	signatures := make([]*SignedDigest, 0, len(items))
	for idx, item := range items {
		var err error
		sd := &SignedDigest{}

		// Get z (message hash)
		if p.ZField != "" {
			if zVal, ok := item[p.ZField]; ok {
				if sd.Z, err = numparse.ParseBigInt(zVal); err != nil {
					return nil, fmt.Errorf("item %d: failed to parse z: %w", idx, err)
				}
			}
		}

		// If z not found, hash the message
		if sd.Z == nil {
			msgVal, ok := item[messageField]
			if !ok {
				return nil, fmt.Errorf("item %d: missing message or z field", idx)
			}
			message, ok := msgVal.(string)
			if !ok {
				return nil, fmt.Errorf("item %d: message field must be a string", idx)
			}
			sd.Z = ecc.HashMessage(curve, []byte(message))
		}

		rVal, ok := item[rField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing r field", idx)
		}
		if sd.R, err = numparse.ParseBigInt(rVal); err != nil {
			return nil, fmt.Errorf("item %d: failed to parse r: %w", idx, err)
		}

		sVal, ok := item[sField]
		if !ok {
			return nil, fmt.Errorf("item %d: missing s field", idx)
		}
		if sd.S, err = numparse.ParseBigInt(sVal); err != nil {
			return nil, fmt.Errorf("item %d: failed to parse s: %w", idx, err)
		}

		signatures = append(signatures, sd)
	}

	return signatures, nil
}

// CSVParser parses signatures from CSV files with a header row.
type CSVParser struct {
	Curve      *ecc.Curve // Curve whose order reduces hashed messages (default: secp256k1)
	MessageCol string     // Column name for message (default: "message")
	RCol       string     // Column name for r (default: "r")
	SCol       string     // Column name for s (default: "s")
	ZCol       string     // Column name for z/hash (default: empty = hash message)
}

// ParseSignatures parses signatures from a CSV file.
func (p *CSVParser) ParseSignatures(csvFile string) ([]*SignedDigest, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

// Parse parses signatures from a CSV stream.
func (p *CSVParser) Parse(r io.Reader) ([]*SignedDigest, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	messageCol := orDefault(p.MessageCol, "message")
	rCol := orDefault(p.RCol, "r")
	sCol := orDefault(p.SCol, "s")
	curve := curveOrDefault(p.Curve)

	messageIdx, rIdx, sIdx, zIdx := -1, -1, -1, -1
	for i, col := range header {
		switch {
		case col == messageCol:
			messageIdx = i
		case col == rCol:
			rIdx = i
		case col == sCol:
			sIdx = i
		case p.ZCol != "" && col == p.ZCol:
			zIdx = i
		}
	}

	if rIdx == -1 || sIdx == -1 {
		return nil, fmt.Errorf("missing required columns: r or s")
	}
	if zIdx == -1 && messageIdx == -1 {
		return nil, fmt.Errorf("missing message or z column")
	}

	signatures := make([]*SignedDigest, 0)
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		sd := &SignedDigest{}
		if zIdx >= 0 {
			if sd.Z, err = numparse.ParseBigInt(record[zIdx]); err != nil {
				return nil, fmt.Errorf("line %d: failed to parse z: %w", line, err)
			}
		} else {
			sd.Z = ecc.HashMessage(curve, []byte(record[messageIdx]))
		}

		if sd.R, err = numparse.ParseBigInt(record[rIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse r: %w", line, err)
		}
		if sd.S, err = numparse.ParseBigInt(record[sIdx]); err != nil {
			return nil, fmt.Errorf("line %d: failed to parse s: %w", line, err)
		}

		signatures = append(signatures, sd)
	}

	return signatures, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func curveOrDefault(c *ecc.Curve) *ecc.Curve {
	if c == nil {
		return ecc.Secp256k1()
	}
	return c
}
