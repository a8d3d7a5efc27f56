// Package crypto abstracts the two capabilities the ledger core depends
// on without committing to their implementation: a collision-resistant
// digest function and a deterministic sign/verify scheme over digests,
// split into Factory/PublicKey/PrivateKey interfaces.
package crypto

import "github.com/ledgerworks/shelley-ledger/ids"

// Factory produces key pairs for the ledger's signature scheme.
type Factory interface {
	NewPrivateKey() (PrivateKey, error)
	ToPublicKey([]byte) (PublicKey, error)
	ToPrivateKey([]byte) (PrivateKey, error)
}

// PublicKey verifies signatures and derives the credential hash that
// addresses and required-witness sets reference.
type PublicKey interface {
	Verify(digest, sig []byte) bool
	Address() ids.ShortID
	Bytes() []byte
}

// PrivateKey signs digests. Sign is used by the test and CLI helpers
// that build transactions (txs.Transaction.Sign); the ledger core itself
// only ever calls PublicKey.Verify.
type PrivateKey interface {
	PublicKey() PublicKey
	Sign(digest []byte) ([]byte, error)
	Bytes() []byte
}

// Hasher is the abstract digest capability. It is a capability, not a global function, so that tests
// may substitute a non-cryptographic stub without perturbing the
// ledger rules under test.
type Hasher interface {
	Hash(data []byte) ids.ID
}
