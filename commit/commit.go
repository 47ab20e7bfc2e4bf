// Package commit derives deterministic commitments of ledger state.
//
// Digest gives a cheap sha256 fingerprint for change detection and audit
// logs. Field gives a MiMC hash over the BN254 scalar field, usable as a
// public input when proving statements about the committed state.
package commit

import (
	"bytes"
	"crypto/sha256"
	"hash"
	"sort"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-feetoken/token"
)

// entry pairs an account with its balance for canonical ordering.
type entry struct {
	account token.Address
	balance *uint256.Int
}

// canonical returns the nonzero balances sorted by account bytes, so two
// ledgers with equal state always encode identically regardless of map
// iteration order.
func canonical(l *token.Ledger) []entry {
	snap := l.Snapshot()
	entries := make([]entry, 0, len(snap))
	for account, balance := range snap {
		entries = append(entries, entry{account, balance})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].account[:], entries[j].account[:]) < 0
	})
	return entries
}

// Digest returns a sha256 commitment over the sorted account balances and
// total supply.
func Digest(l *token.Ledger) [32]byte {
	h := sha256.New()
	for _, e := range canonical(l) {
		h.Write(e.account[:])
		b := e.balance.Bytes32()
		h.Write(b[:])
	}
	supply := l.TotalSupply().Bytes32()
	h.Write(supply[:])

	var digest [32]byte
	h.Sum(digest[:0])
	return digest
}

// Field returns a MiMC commitment over the same canonical encoding, as a
// 32-byte BN254 scalar. Addresses fit a field element directly; 256-bit
// balances do not, so each is absorbed as two 128-bit halves.
func Field(l *token.Ledger) []byte {
	h := mimc.NewMiMC()
	for _, e := range canonical(l) {
		writeAddress(h, e.account)
		writeAmount(h, e.balance)
	}
	writeAmount(h, l.TotalSupply())
	return h.Sum(nil)
}

func writeAddress(h hash.Hash, a token.Address) {
	var block [32]byte
	copy(block[32-token.AddressLength:], a[:])
	h.Write(block[:])
}

func writeAmount(h hash.Hash, v *uint256.Int) {
	b := v.Bytes32()
	var block [32]byte
	copy(block[16:], b[:16]) // high 128 bits
	h.Write(block[:])
	copy(block[16:], b[16:]) // low 128 bits
	h.Write(block[:])
}
