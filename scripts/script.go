// Package scripts implements script-hash-locked spending and
// certificate conditions: a native multisig combinator and a
// time-lock, evaluated against the transaction's provided key-hash
// witnesses and the slot it is being validated at. The Script
// interface is a single-method "is this satisfied" contract that
// concrete script kinds implement.
package scripts

import (
	"errors"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
)

// Context is the evidence a script is evaluated against: the key
// hashes the transaction's witness set actually satisfies, and the
// slot the containing transaction is being processed at.
type Context struct {
	ProvidedKeyHashes ids.ShortSet
	CurrentSlot       uint64
}

// Script is a script-hash-locked spending/certificate condition.
// Evaluate returns nil iff ctx satisfies the script.
type Script interface {
	Evaluate(ctx Context) error
	encode(e *encoder)
}

var ErrNotSatisfied = errors.New("scripts: condition not satisfied")

// Hash computes a script's credential hash: the ledger truncates the
// generic digest capability's 32-byte output to the 20-byte width
// every credential hash uses.
func Hash(h crypto.Hasher, s Script) ids.ShortID {
	digest := h.Hash(Bytes(s))
	var out ids.ShortID
	copy(out[:], digest[:ids.ShortIDLen])
	return out
}

// Bytes renders a script's canonical encoding, used both by Hash and
// by size-accounting callers (transaction serialized-size estimation).
func Bytes(s Script) []byte {
	e := newEncoder()
	s.encode(e)
	return e.bytes()
}
