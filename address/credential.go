// Package address implements the payment/staking credential model and
// bech32 address encoding, keeping key-hash and script-hash credentials
// as distinct tagged types rather than interchangeable byte strings.
package address

import "github.com/ledgerworks/shelley-ledger/ids"

// CredentialKind discriminates the two Credential variants.
type CredentialKind uint8

const (
	// KeyHashCredential is authorized by a verification-key witness.
	KeyHashCredential CredentialKind = iota
	// ScriptHashCredential is authorized by a satisfied script.
	ScriptHashCredential
)

// Credential is the tagged union backing both payment and staking
// roles: either a key hash or a script hash. Keeping payment and
// staking credentials as the same underlying type, distinguished only
// by where an Address stores them, mirrors how both roles are
// authorized the same way — a witness or a satisfied script.
type Credential struct {
	Kind CredentialKind
	Hash ids.ShortID
}

// NewKeyHashCredential builds a key-hash credential.
func NewKeyHashCredential(h ids.ShortID) Credential {
	return Credential{Kind: KeyHashCredential, Hash: h}
}

// NewScriptHashCredential builds a script-hash credential.
func NewScriptHashCredential(h ids.ShortID) Credential {
	return Credential{Kind: ScriptHashCredential, Hash: h}
}

// IsKeyHash reports whether c is authorized by a vkey witness.
func (c Credential) IsKeyHash() bool { return c.Kind == KeyHashCredential }

// IsScriptHash reports whether c is authorized by a script.
func (c Credential) IsScriptHash() bool { return c.Kind == ScriptHashCredential }
