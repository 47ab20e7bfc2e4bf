package token

// MintAuthority decides whether a caller may create new supply. The ledger
// consults it before touching any state and never caches the answer, so a
// policy may change its mind between calls.
type MintAuthority interface {
	AllowMint(caller Address) bool
}

// MintAuthorityFunc adapts a plain function to the MintAuthority interface.
type MintAuthorityFunc func(caller Address) bool

// AllowMint calls f.
func (f MintAuthorityFunc) AllowMint(caller Address) bool {
	return f(caller)
}

// SingleMinter returns an authority that admits exactly one caller.
func SingleMinter(minter Address) MintAuthority {
	return MintAuthorityFunc(func(caller Address) bool {
		return caller == minter
	})
}

// AllowAll returns an authority that admits every caller. Intended for tests
// and for replaying event streams, where each mint is already a fact.
func AllowAll() MintAuthority {
	return MintAuthorityFunc(func(Address) bool {
		return true
	})
}
