// Package value implements the multi-asset value algebra: a
// commutative monoid of signed per-asset quantities, with a
// distinguished base asset ("coin") that fees, deposits, and the
// output-minimum rule are denominated in.
package value

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/ledgerworks/shelley-ledger/ids"
)

// AssetID is a (policy hash, asset name) pair. The base asset reserves
// the zero policy hash and an empty name.
type AssetID struct {
	Policy ids.ID
	Name   string
}

// IsBase reports whether id names the ledger's base asset.
func (id AssetID) IsBase() bool {
	return id.Policy.IsZero() && id.Name == ""
}

// BaseAsset is the well-known AssetID of the base asset (ada-equivalent coin).
var BaseAsset = AssetID{}

func (id AssetID) less(other AssetID) bool {
	if id.Policy != other.Policy {
		return bytesLess(id.Policy[:], other.Policy[:])
	}
	return id.Name < other.Name
}

func bytesLess(a, b []byte) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Value is a finite mapping from AssetID to a signed integer quantity.
// A nil/empty Value denotes the monoid identity, zero.
type Value map[AssetID]*big.Int

// Zero is the value monoid's identity element.
func Zero() Value { return Value{} }

// OfCoin lifts a base-asset quantity into a Value.
func OfCoin(coin *big.Int) Value {
	if coin == nil || coin.Sign() == 0 {
		return Zero()
	}
	return Value{BaseAsset: new(big.Int).Set(coin)}
}

// CoinOf projects the base-asset component out of v. Absent entries are treated as zero.
func (v Value) CoinOf() *big.Int {
	if amt, ok := v[BaseAsset]; ok {
		return new(big.Int).Set(amt)
	}
	return big.NewInt(0)
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	out := make(Value, len(v))
	for id, amt := range v {
		out[id] = new(big.Int).Set(amt)
	}
	return out
}

// Add returns v + other, the value monoid's operation. Zero-valued
// components are dropped so that equal values compare map-equal.
func (v Value) Add(other Value) Value {
	out := make(Value, len(v)+len(other))
	for id, amt := range v {
		out[id] = new(big.Int).Set(amt)
	}
	for id, amt := range other {
		if cur, ok := out[id]; ok {
			cur.Add(cur, amt)
		} else {
			out[id] = new(big.Int).Set(amt)
		}
	}
	for id, amt := range out {
		if amt.Sign() == 0 {
			delete(out, id)
		}
	}
	return out
}

// Negate returns -v, componentwise.
func (v Value) Negate() Value {
	out := make(Value, len(v))
	for id, amt := range v {
		out[id] = new(big.Int).Neg(amt)
	}
	return out
}

// Leq reports whether v ≤ other componentwise: for every asset, v's
// quantity (0 if absent) is ≤ other's.
func (v Value) Leq(other Value) bool {
	for id := range allAssets(v, other) {
		if v.amountOf(id).Cmp(other.amountOf(id)) > 0 {
			return false
		}
	}
	return true
}

// Eq reports whether v and other denote the same value.
func (v Value) Eq(other Value) bool {
	return v.Leq(other) && other.Leq(v)
}

// IsPositive reports whether every component of v is strictly
// positive. An empty Value is not
// positive: an output must carry the base asset at minimum.
func (v Value) IsPositive() bool {
	if len(v) == 0 {
		return false
	}
	for _, amt := range v {
		if amt.Sign() <= 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether v is the monoid identity.
func (v Value) IsZero() bool {
	for _, amt := range v {
		if amt.Sign() != 0 {
			return false
		}
	}
	return true
}

func (v Value) amountOf(id AssetID) *big.Int {
	if amt, ok := v[id]; ok {
		return amt
	}
	return big.NewInt(0)
}

func allAssets(vs ...Value) map[AssetID]struct{} {
	out := make(map[AssetID]struct{})
	for _, v := range vs {
		for id := range v {
			out[id] = struct{}{}
		}
	}
	return out
}

// SortedAssetIDs returns v's asset ids in canonical ascending order
// (policy bytes, then name), so maps serialize with keys in ascending
// byte order.
func (v Value) SortedAssetIDs() []AssetID {
	out := make([]AssetID, 0, len(v))
	for id := range v {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b AssetID) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// String renders v for diagnostics; not used in any consensus-visible path.
func (v Value) String() string {
	ids := v.SortedAssetIDs()
	s := "{"
	for i, id := range ids {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s/%q:%s", id.Policy, id.Name, v[id].String())
	}
	return s + "}"
}
