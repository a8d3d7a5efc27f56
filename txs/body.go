package txs

import (
	"errors"
	"math/big"
	"sort"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// Withdrawal is a claim against a registered reward account's accrued
// rewards.
type Withdrawal struct {
	Account address.RewardAccount
	Amount  *big.Int
}

// TxBody is the canonical record comprising the part of a transaction
// whose hash is its identity. Everything that is not part of the body
// — the witness set, the Metadata payload bytes — is authorization or
// auxiliary material layered on top in Transaction.
type TxBody struct {
	Inputs       []utxo.TxIn
	Outputs      []utxo.TxOut
	Certs        []Certificate
	Forge        value.Value
	Withdrawals  []Withdrawal
	Fee          *big.Int
	TTL          uint64
	Update       *UpdateBody // nil if absent
	MetadataHash *ids.ID     // nil if absent
}

var ErrBaseAssetForge = errors.New("txs: forge field carries a base-asset component")

// WellFormed checks b's syntactic invariants: the forge field may
// create or destroy non-base assets only, and every certificate must
// satisfy its per-kind shape invariant.
func (b *TxBody) WellFormed() error {
	if b.Forge.CoinOf().Sign() != 0 {
		return ErrBaseAssetForge
	}
	for _, c := range b.Certs {
		if err := c.WellFormed(); err != nil {
			return err
		}
	}
	return nil
}

// sortedInputs returns Inputs in the canonical ascending order used
// for set-valued fields, without mutating b.
func (b *TxBody) sortedInputs() []utxo.TxIn {
	out := make([]utxo.TxIn, len(b.Inputs))
	copy(out, b.Inputs)
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })
	return out
}

func (b *TxBody) sortedWithdrawals() []Withdrawal {
	out := make([]Withdrawal, len(b.Withdrawals))
	copy(out, b.Withdrawals)
	sort.Slice(out, func(i, j int) bool {
		wi, wj := out[i].Account, out[j].Account
		if wi.Network != wj.Network {
			return wi.Network < wj.Network
		}
		if wi.Credential.Kind != wj.Credential.Kind {
			return wi.Credential.Kind < wj.Credential.Kind
		}
		return lessShortID(wi.Credential.Hash, wj.Credential.Hash)
	})
	return out
}

// Encode renders b in the canonical binary format: fixed field order,
// canonically-sorted input set and withdrawal map,
// outputs and certs kept in the caller's given sequence (they are
// ordinal, not sets — output index and certificate index are
// meaningful).
func (b *TxBody) Encode() []byte {
	e := NewEncoder()

	ins := b.sortedInputs()
	e.Uvarint(uint64(len(ins)))
	for _, in := range ins {
		e.ID(in.TxID)
		e.Uvarint(uint64(in.OutputIndex))
	}

	e.Uvarint(uint64(len(b.Outputs)))
	for _, out := range b.Outputs {
		encodeAddress(e, out.Address)
		encodeValue(e, out.Value)
	}

	e.Uvarint(uint64(len(b.Certs)))
	for _, c := range b.Certs {
		c.encode(e)
	}

	encodeValue(e, b.Forge)

	ws := b.sortedWithdrawals()
	e.Uvarint(uint64(len(ws)))
	for _, w := range ws {
		e.Uvarint(uint64(w.Account.Network))
		encodeCredential(e, w.Account.Credential)
		e.BigInt(w.Amount)
	}

	e.BigInt(b.Fee)
	e.Uvarint(b.TTL)

	e.Bool(b.Update != nil)
	if b.Update != nil {
		b.Update.encode(e)
	}

	e.Bool(b.MetadataHash != nil)
	if b.MetadataHash != nil {
		e.ID(*b.MetadataHash)
	}

	return e.Bytes()
}

// DecodeTxBody reconstructs a TxBody from its canonical encoding.
func DecodeTxBody(data []byte) (*TxBody, error) {
	d := NewDecoder(data)
	b := &TxBody{}

	n := d.Uvarint()
	b.Inputs = make([]utxo.TxIn, n)
	for i := range b.Inputs {
		b.Inputs[i] = utxo.TxIn{TxID: d.ID(), OutputIndex: uint32(d.Uvarint())}
	}

	n = d.Uvarint()
	b.Outputs = make([]utxo.TxOut, n)
	for i := range b.Outputs {
		b.Outputs[i] = utxo.TxOut{Address: decodeAddress(d), Value: decodeValue(d)}
	}

	n = d.Uvarint()
	b.Certs = make([]Certificate, n)
	for i := range b.Certs {
		b.Certs[i] = decodeCertificate(d)
	}

	b.Forge = decodeValue(d)

	n = d.Uvarint()
	b.Withdrawals = make([]Withdrawal, n)
	for i := range b.Withdrawals {
		network := address.NetworkID(d.Uvarint())
		cred := decodeCredential(d)
		b.Withdrawals[i] = Withdrawal{Account: address.RewardAccount{Network: network, Credential: cred}, Amount: d.BigInt()}
	}

	b.Fee = d.BigInt()
	b.TTL = d.Uvarint()

	if d.Bool() {
		b.Update = decodeUpdateBody(d)
	}
	if d.Bool() {
		id := d.ID()
		b.MetadataHash = &id
	}

	if err := d.Done(); err != nil {
		return nil, err
	}
	return b, nil
}

// ID computes the transaction identity: the hash of b's canonical
// encoding, `txid(body) = hash(canonical-encode(body))`.
func (b *TxBody) ID(h crypto.Hasher) ids.ID {
	return h.Hash(b.Encode())
}

func encodeAddress(e *Encoder, a address.Address) {
	e.Uvarint(uint64(a.Network))
	encodeCredential(e, a.Payment)
	e.Uvarint(uint64(a.Staking.Kind))
	switch a.Staking.Kind {
	case address.StakeBase:
		encodeCredential(e, a.Staking.Credential)
	case address.StakePointer:
		e.Uvarint(a.Staking.Pointer.Slot)
		e.Uvarint(uint64(a.Staking.Pointer.TxIndex))
		e.Uvarint(uint64(a.Staking.Pointer.CertIndex))
	}
}

func decodeAddress(d *Decoder) address.Address {
	a := address.Address{
		Network: address.NetworkID(d.Uvarint()),
		Payment: decodeCredential(d),
	}
	kind := address.StakeReferenceKind(d.Uvarint())
	switch kind {
	case address.StakeBase:
		a.Staking = address.BaseStakeReference(decodeCredential(d))
	case address.StakePointer:
		slot := d.Uvarint()
		txIdx := uint32(d.Uvarint())
		certIdx := uint32(d.Uvarint())
		a.Staking = address.PointerStakeReference(address.Pointer{Slot: slot, TxIndex: txIdx, CertIndex: certIdx})
	default:
		a.Staking = address.NoStakeReference()
	}
	return a
}

func encodeValue(e *Encoder, v value.Value) {
	cv := value.ToCompact(v)
	e.BigInt(cv.Coin)
	e.Uvarint(uint64(len(cv.Assets)))
	for _, a := range cv.Assets {
		e.ID(a.ID.Policy)
		e.String(a.ID.Name)
		e.BigInt(a.Amount)
	}
}

func decodeValue(d *Decoder) value.Value {
	cv := value.CompactValue{Coin: d.BigInt()}
	n := d.Uvarint()
	cv.Assets = make([]value.CompactAsset, n)
	for i := range cv.Assets {
		policy := d.ID()
		name := d.String()
		cv.Assets[i] = value.CompactAsset{ID: value.AssetID{Policy: policy, Name: name}, Amount: d.BigInt()}
	}
	return value.FromCompact(cv)
}
