// Package utxo implements the UTxO map and its relation algebra,
// backed by a persistent balanced tree so that restrict/exclude/union
// cost stays logarithmic in UTxO size while every update still returns
// a new value via structural sharing rather than mutating in place.
package utxo

import (
	"bytes"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/value"
)

// TxIn references a prior transaction output.
type TxIn struct {
	TxID        ids.ID
	OutputIndex uint32
}

// Compare orders TxIn values by (TxID bytes, OutputIndex), the order
// used for canonical set/map serialization.
func (in TxIn) Compare(other TxIn) int {
	if c := bytes.Compare(in.TxID[:], other.TxID[:]); c != 0 {
		return c
	}
	switch {
	case in.OutputIndex < other.OutputIndex:
		return -1
	case in.OutputIndex > other.OutputIndex:
		return 1
	default:
		return 0
	}
}

// TxOut is an (address, value) pair produced by a transaction.
type TxOut struct {
	Address address.Address
	Value   value.Value
}

// UTXOOut is the stored form of a TxOut: the value is kept as a
// CompactValue, the UTxO's on-disk/in-memory representation.
type UTXOOut struct {
	Address address.Address
	Value   value.CompactValue
}

// ToStored converts a TxOut into its UTxO-stored form.
func (o TxOut) ToStored() UTXOOut {
	return UTXOOut{Address: o.Address, Value: value.ToCompact(o.Value)}
}

// Decode reconstructs the full Value of a stored output.
func (o UTXOOut) Decode() TxOut {
	return TxOut{Address: o.Address, Value: value.FromCompact(o.Value)}
}
