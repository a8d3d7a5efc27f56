// Package ids defines the fixed-width identifier types used throughout
// the ledger core: 32-byte digests (transaction ids, block-level
// hashes) and 20-byte credential hashes (key hashes, script hashes).
package ids

import (
	"encoding/hex"
	"errors"

	"github.com/mr-tron/base58"
)

// IDLen is the digest length produced by the ledger's hash capability.
const IDLen = 32

// ShortIDLen is the length of a credential hash (key hash or script hash).
const ShortIDLen = 20

var (
	Empty      ID      // the zero digest
	ShortEmpty ShortID // the zero credential hash

	errWrongIDLen      = errors.New("input has wrong length for ID")
	errWrongShortIDLen = errors.New("input has wrong length for ShortID")
)

// ID is a 32-byte digest: a transaction id, metadata hash, or block id.
type ID [IDLen]byte

// ToID copies b into a new ID. b must be exactly IDLen bytes.
func ToID(b []byte) (ID, error) {
	var id ID
	if len(b) != IDLen {
		return id, errWrongIDLen
	}
	copy(id[:], b)
	return id, nil
}

// Bytes returns a copy of id's underlying bytes.
func (id ID) Bytes() []byte {
	b := make([]byte, IDLen)
	copy(b, id[:])
	return b
}

// IsZero reports whether id is the empty digest.
func (id ID) IsZero() bool { return id == Empty }

// String returns the base58 encoding of id, matching the corpus's
// human-readable id convention (mr-tron/base58, no checksum needed
// since a 32-byte digest is already collision-resistant).
func (id ID) String() string {
	return base58.Encode(id[:])
}

// Hex returns the lowercase hex encoding of id, useful for debug logs
// where base58 ambiguity (no checksum) is undesirable.
func (id ID) Hex() string {
	return hex.EncodeToString(id[:])
}

// FromString parses the base58 encoding produced by ID.String.
func FromString(s string) (ID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		var zero ID
		return zero, err
	}
	return ToID(b)
}

// ShortID is a 20-byte credential hash: a key hash or a script hash.
type ShortID [ShortIDLen]byte

// ToShortID copies b into a new ShortID. b must be exactly ShortIDLen bytes.
func ToShortID(b []byte) (ShortID, error) {
	var id ShortID
	if len(b) != ShortIDLen {
		return id, errWrongShortIDLen
	}
	copy(id[:], b)
	return id, nil
}

// ShortFromString parses the base58 encoding produced by ShortID.String.
func ShortFromString(s string) (ShortID, error) {
	b, err := base58.Decode(s)
	if err != nil {
		var zero ShortID
		return zero, err
	}
	return ToShortID(b)
}

// Bytes returns a copy of id's underlying bytes.
func (id ShortID) Bytes() []byte {
	b := make([]byte, ShortIDLen)
	copy(b, id[:])
	return b
}

// IsZero reports whether id is the empty credential hash.
func (id ShortID) IsZero() bool { return id == ShortEmpty }

// String returns the base58 encoding of id.
func (id ShortID) String() string {
	return base58.Encode(id[:])
}

// Set is a small set of IDs (32-byte digests). Key-hash and script-hash
// sets use ShortSet.
type Set map[ID]struct{}

// NewSet creates a Set with capacity for n elements.
func NewSet(n int) Set {
	return make(Set, n)
}

func (s Set) Add(id ID)            { s[id] = struct{}{} }
func (s Set) Contains(id ID) bool  { _, ok := s[id]; return ok }
func (s Set) Len() int             { return len(s) }
func (s Set) Remove(id ID)         { delete(s, id) }

// List returns the set's elements in no particular order.
func (s Set) List() []ID {
	out := make([]ID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}

// Union returns a new set containing every element of s and other.
func (s Set) Union(other Set) Set {
	out := make(Set, len(s)+len(other))
	for id := range s {
		out[id] = struct{}{}
	}
	for id := range other {
		out[id] = struct{}{}
	}
	return out
}

// ShortSet is the ShortID analogue of Set, used for required key-hash
// and script-hash sets.
type ShortSet map[ShortID]struct{}

func NewShortSet(n int) ShortSet { return make(ShortSet, n) }

func (s ShortSet) Add(id ShortID)           { s[id] = struct{}{} }
func (s ShortSet) Contains(id ShortID) bool { _, ok := s[id]; return ok }
func (s ShortSet) Len() int                 { return len(s) }

// List returns the set's elements sorted by byte value, needed anywhere
// a required-witness or required-script set must be compared or
// serialized deterministically.
func (s ShortSet) List() []ShortID {
	out := make([]ShortID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sortShortIDs(out)
	return out
}

// Equals reports whether s and other contain exactly the same elements.
func (s ShortSet) Equals(other ShortSet) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// Difference returns the elements of s not present in other.
func (s ShortSet) Difference(other ShortSet) ShortSet {
	out := make(ShortSet)
	for id := range s {
		if !other.Contains(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

func sortShortIDs(ids []ShortID) {
	// insertion sort is adequate: required-witness/script sets are small
	// (bounded by inputs + certs + assets of a single transaction).
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && lessShort(ids[j], ids[j-1]); j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

func lessShort(a, b ShortID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
