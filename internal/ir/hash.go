package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// allows the hashed layout to change without colliding with old hashes.
const (
	DomainCircuit = "qsurf/circuit/v1"
	DomainLattice = "qsurf/lattice/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CircuitHash computes the content-addressed ID of a circuit from its
// canonical object form.
func CircuitHash(obj IRObject) (string, error) {
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("CircuitHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCircuit, canonical), nil
}

// LatticeHash computes the content-addressed ID of a lattice from its
// canonical object form.
func LatticeHash(obj IRObject) (string, error) {
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("LatticeHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainLattice, canonical), nil
}

// MustCircuitHash is like CircuitHash but panics on error.
func MustCircuitHash(obj IRObject) string {
	h, err := CircuitHash(obj)
	if err != nil {
		panic(err)
	}
	return h
}
