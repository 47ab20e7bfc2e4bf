package token

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressLength is the byte length of an account handle.
const AddressLength = 20

// Address identifies an account on the ledger. Addresses are opaque handles;
// the ledger attaches no meaning to their contents beyond equality and the
// reserved zero value.
type Address [AddressLength]byte

// ZeroAddress is the reserved null account. It can never hold a balance or
// take part in an allowance; mint and burn notifications use it as their
// synthetic counterparty.
var ZeroAddress = Address{}

// IsZero reports whether a is the reserved null account.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String formats the address as 0x-prefixed lowercase hex.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// ParseAddress parses a 0x-prefixed hex address.
func ParseAddress(s string) (Address, error) {
	var a Address
	trimmed := strings.TrimPrefix(s, "0x")
	if len(trimmed) != AddressLength*2 {
		return a, fmt.Errorf("token: address must be %d hex characters, got %d", AddressLength*2, len(trimmed))
	}
	b, err := hex.DecodeString(trimmed)
	if err != nil {
		return a, fmt.Errorf("token: invalid address %q: %w", s, err)
	}
	copy(a[:], b)
	return a, nil
}

// BytesToAddress builds an address from b. Inputs shorter than AddressLength
// are left-padded with zeros; longer inputs keep their rightmost bytes.
func BytesToAddress(b []byte) Address {
	var a Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(a[AddressLength-len(b):], b)
	return a
}
