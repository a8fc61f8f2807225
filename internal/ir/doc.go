// Package ir provides the canonical value model used to fingerprint
// synthesized circuits and lattices.
//
// This package imports nothing internal. Packages that need a stable
// identity (circuit, store, harness) convert their data into IRObject
// values and hash them here.
//
// Constraints:
//   - No float types; integers are int64
//   - Canonical JSON follows RFC 8785 (UTF-16 key order, NFC strings,
//     no HTML escaping)
//   - Hashes are SHA-256 with a versioned domain prefix
package ir
