package utxo

import (
	"errors"

	"github.com/google/btree"
)

const btreeDegree = 32

// treeItem adapts a (TxIn, UTXOOut) pair to google/btree's Item
// interface, ordering entries canonically.
type treeItem struct {
	key TxIn
	val UTXOOut
}

func (i treeItem) Less(than btree.Item) bool {
	return i.key.Compare(than.(treeItem).key) < 0
}

// UTxO is the finite map from TxIn to UTXOOut. The
// zero value is not valid; use New. UTxO values are immutable: every
// operation returns a new UTxO, sharing structure with its receiver
// via google/btree's copy-on-write Clone.
type UTxO struct {
	tree *btree.BTree
}

// New returns the empty UTxO.
func New() UTxO {
	return UTxO{tree: btree.New(btreeDegree)}
}

// ErrKeyCollision is raised when UnionLeftBiased encounters the same
// key present in both operands with differing values, resolved here
// as a fatal invariant violation rather than a silent pick, since
// TxIds are outputs of a collision-resistant hash and a collision can
// only mean caller corruption.
var ErrKeyCollision = errors.New("utxo: key collision between distinct values")

// Singleton builds a one-entry UTxO.
func Singleton(in TxIn, out UTXOOut) UTxO {
	u := New()
	u.tree.ReplaceOrInsert(treeItem{key: in, val: out})
	return u
}

// Size returns the number of entries.
func (u UTxO) Size() int { return u.tree.Len() }

// ContainsKey reports whether in is a live UTxO entry (`contains-key`).
func (u UTxO) ContainsKey(in TxIn) bool {
	return u.tree.Has(treeItem{key: in})
}

// Lookup returns the output at in, if any.
func (u UTxO) Lookup(in TxIn) (UTXOOut, bool) {
	item := u.tree.Get(treeItem{key: in})
	if item == nil {
		return UTXOOut{}, false
	}
	return item.(treeItem).val, true
}

// Domain returns the set of live TxIn keys (`domain`).
func (u UTxO) Domain() []TxIn {
	out := make([]TxIn, 0, u.tree.Len())
	u.tree.Ascend(func(i btree.Item) bool {
		out = append(out, i.(treeItem).key)
		return true
	})
	return out
}

// Range returns the live outputs in key order (`range`).
func (u UTxO) Range() []UTXOOut {
	out := make([]UTXOOut, 0, u.tree.Len())
	u.tree.Ascend(func(i btree.Item) bool {
		out = append(out, i.(treeItem).val)
		return true
	})
	return out
}

// Entries returns the live (TxIn, UTXOOut) pairs in key order.
func (u UTxO) Entries() []struct {
	In  TxIn
	Out UTXOOut
} {
	out := make([]struct {
		In  TxIn
		Out UTXOOut
	}, 0, u.tree.Len())
	u.tree.Ascend(func(i btree.Item) bool {
		ti := i.(treeItem)
		out = append(out, struct {
			In  TxIn
			Out UTXOOut
		}{In: ti.key, Out: ti.val})
		return true
	})
	return out
}

// RestrictByKeySet keeps only the entries whose key is in keys ("keep").
func (u UTxO) RestrictByKeySet(keys map[TxIn]struct{}) UTxO {
	out := New()
	u.tree.Ascend(func(i btree.Item) bool {
		ti := i.(treeItem)
		if _, ok := keys[ti.key]; ok {
			out.tree.ReplaceOrInsert(ti)
		}
		return true
	})
	return out
}

// ExcludeByKeySet drops the entries whose key is in keys ("drop").
func (u UTxO) ExcludeByKeySet(keys map[TxIn]struct{}) UTxO {
	out := u.clone()
	for k := range keys {
		out.tree.Delete(treeItem{key: k})
	}
	return out
}

// RestrictByRange keeps entries with key in [low, high).
func (u UTxO) RestrictByRange(low, high TxIn) UTxO {
	out := New()
	u.tree.AscendRange(treeItem{key: low}, treeItem{key: high}, func(i btree.Item) bool {
		out.tree.ReplaceOrInsert(i.(treeItem))
		return true
	})
	return out
}

// InsertIfAbsent inserts (in, out) unless the key is already present,
// in which case it is a no-op and ok is false.
func (u UTxO) InsertIfAbsent(in TxIn, out UTXOOut) (UTxO, bool) {
	if u.ContainsKey(in) {
		return u, false
	}
	next := u.clone()
	next.tree.ReplaceOrInsert(treeItem{key: in, val: out})
	return next, true
}

// RemoveKey removes in from the map, if present.
func (u UTxO) RemoveKey(in TxIn) UTxO {
	out := u.clone()
	out.tree.Delete(treeItem{key: in})
	return out
}

// UnionLeftBiased merges u with other; where both define the same key,
// u's value wins (`union-left-biased`). Differing values at a shared
// key are a fatal invariant violation (see ErrKeyCollision).
func (u UTxO) UnionLeftBiased(other UTxO) UTxO {
	out := other.clone()
	u.tree.Ascend(func(i btree.Item) bool {
		ti := i.(treeItem)
		if existing := out.tree.Get(ti); existing != nil {
			if !utxoOutEqual(existing.(treeItem).val, ti.val) {
				panic(ErrKeyCollision)
			}
		}
		out.tree.ReplaceOrInsert(ti)
		return true
	})
	return out
}

// Override merges u with other; where both define the same key,
// other's value wins (`override`, right operand wins).
func (u UTxO) Override(other UTxO) UTxO {
	out := u.clone()
	other.tree.Ascend(func(i btree.Item) bool {
		out.tree.ReplaceOrInsert(i.(treeItem))
		return true
	})
	return out
}

func (u UTxO) clone() UTxO {
	return UTxO{tree: u.tree.Clone()}
}

func utxoOutEqual(a, b UTXOOut) bool {
	sa, sb := a.Value, b.Value
	if sa.Coin.Cmp(sb.Coin) != 0 || len(sa.Assets) != len(sb.Assets) {
		return false
	}
	for i := range sa.Assets {
		if sa.Assets[i].ID != sb.Assets[i].ID || sa.Assets[i].Amount.Cmp(sb.Assets[i].Amount) != 0 {
			return false
		}
	}
	return a.Address == b.Address
}
