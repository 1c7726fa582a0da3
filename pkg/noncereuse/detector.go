package noncereuse

import (
	"sync"

	"github.com/JanieAbutu/ECE-Cryptography/pkg/ecc"
)

type detectorKey struct {
	signer string
	r      string
}

// Detector watches a stream of signatures and recovers the private key as
// soon as one signer repeats an r value.
//
// Signatures are grouped by a caller-chosen signer identifier, such as an
// address or an encoded public key.  A Detector is safe for concurrent use.
type Detector struct {
	curve *ecc.Curve

	mu   sync.Mutex
	seen map[detectorKey]*SignedDigest
}

// NewDetector creates a detector for signatures on curve.
func NewDetector(curve *ecc.Curve) *Detector {
	return &Detector{
		curve: curve,
		seen:  make(map[detectorKey]*SignedDigest),
	}
}

// Observe records a signature made by signer.  It returns the recovered
// secret when an earlier signature from the same signer used the same r, and
// nil otherwise.  Resubmitting an identical signature is not reuse.
//
// Recovery errors, such as ErrDegenerateRecovery for two different digests
// signed with the same s, are returned as is.
func (d *Detector) Observe(signer string, sd *SignedDigest) (*RecoveredSecret, error) {
	key := detectorKey{signer: signer, r: sd.R.Text(16)}

	d.mu.Lock()
	prev, ok := d.seen[key]
	if !ok {
		d.seen[key] = sd
	}
	d.mu.Unlock()

	if !ok {
		return nil, nil
	}

	n := d.curve.N()
	if ecc.Mod(prev.Z, n).Cmp(ecc.Mod(sd.Z, n)) == 0 {
		return nil, nil
	}
	return Recover(prev.Signature(), sd.Signature(), prev.Z, sd.Z, n)
}

// Len returns the number of distinct (signer, r) pairs seen.
func (d *Detector) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}

// Reset forgets all observed signatures.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.seen = make(map[detectorKey]*SignedDigest)
	d.mu.Unlock()
}
