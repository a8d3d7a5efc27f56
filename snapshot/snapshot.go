// Package snapshot demonstrates persisting ledger state without
// implementing a general storage engine; on-disk persistence of a live
// node is out of scope. It stores one UTxOState snapshot per slot in a
// cockroachdb/pebble key-value store. A snapshot holds the UTxO map and
// the deposited/fees counters, gob-encoded and zstd-compressed (not the
// txs canonical codec); pending ppup proposals and the delegation state
// are not persisted. Decode(Encode(x)) round-trips the persisted parts.
package snapshot

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"math/big"

	"github.com/DataDog/zstd"
	"github.com/cockroachdb/pebble"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// Store wraps a pebble.DB keyed by slot number, one UTxOState snapshot
// per key.
type Store struct {
	db *pebble.DB
}

// Open opens (creating if absent) a pebble store at dir.
func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("snapshot: open %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying pebble handle.
func (s *Store) Close() error { return s.db.Close() }

func slotKey(slot uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], slot)
	return k[:]
}

// wireEntry is the gob-encodable shape of one UTxO entry; gob is used
// for the struct envelope while the asset amounts themselves remain
// big.Int-exact, preserving arbitrary-precision coin values.
type wireEntry struct {
	TxID        [32]byte
	OutputIndex uint32
	Network     uint8
	Payment     wireCredential
	StakeKind   uint8
	StakeCred   wireCredential
	Coin        []byte // big.Int bytes, big-endian, unsigned
	CoinSign    int8
	Assets      []wireAsset
}

type wireCredential struct {
	Kind uint8
	Hash [20]byte
}

type wireAsset struct {
	Policy [32]byte
	Name   string
	Amount []byte
	Sign   int8
}

type wireState struct {
	Entries   []wireEntry
	Deposited []byte
	DepSign   int8
	Fees      []byte
	FeeSign   int8
}

func toWireCredential(c address.Credential) wireCredential {
	return wireCredential{Kind: uint8(c.Kind), Hash: c.Hash}
}

func fromWireCredential(w wireCredential) address.Credential {
	return address.Credential{Kind: address.CredentialKind(w.Kind), Hash: w.Hash}
}

// Encode renders s as the canonical-ish gob+zstd blob this package
// persists. Field order is fixed and every map-shaped part of the
// state (the UTxO itself) is flattened via UTxO.Entries, which yields
// entries in ascending key order — so two equal states always produce
// identical bytes.
func Encode(s ledgerstate.UTxOState) ([]byte, error) {
	ws := wireState{
		Deposited: absBytes(s.Deposited),
		DepSign:   int8(s.Deposited.Sign()),
		Fees:      absBytes(s.Fees),
		FeeSign:   int8(s.Fees.Sign()),
	}
	for _, e := range s.UTxO.Entries() {
		cv := e.Out.Value
		we := wireEntry{
			TxID:        e.In.TxID,
			OutputIndex: e.In.OutputIndex,
			Network:     uint8(e.Out.Address.Network),
			Payment:     toWireCredential(e.Out.Address.Payment),
			Coin:        absBytes(cv.Coin),
			CoinSign:    int8(cv.Coin.Sign()),
		}
		switch e.Out.Address.Staking.Kind {
		case address.StakeBase:
			we.StakeKind = uint8(address.StakeBase)
			we.StakeCred = toWireCredential(e.Out.Address.Staking.Credential)
		default:
			we.StakeKind = uint8(e.Out.Address.Staking.Kind)
		}
		for _, a := range cv.Assets {
			we.Assets = append(we.Assets, wireAsset{
				Policy: a.ID.Policy,
				Name:   a.ID.Name,
				Amount: absBytes(a.Amount),
				Sign:   int8(a.Amount.Sign()),
			})
		}
		ws.Entries = append(ws.Entries, we)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(ws); err != nil {
		return nil, fmt.Errorf("snapshot: gob-encode: %w", err)
	}
	return zstd.Compress(nil, buf.Bytes())
}

// Decode is Encode's inverse. The returned state has an empty PPUp,
// since Encode does not persist it.
func Decode(blob []byte) (ledgerstate.UTxOState, error) {
	raw, err := zstd.Decompress(nil, blob)
	if err != nil {
		return ledgerstate.UTxOState{}, fmt.Errorf("snapshot: zstd-decompress: %w", err)
	}
	var ws wireState
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&ws); err != nil {
		return ledgerstate.UTxOState{}, fmt.Errorf("snapshot: gob-decode: %w", err)
	}

	u := utxo.New()
	for _, we := range ws.Entries {
		coin := signedBig(we.Coin, we.CoinSign)
		cv := value.CompactValue{Coin: coin}
		for _, a := range we.Assets {
			cv.Assets = append(cv.Assets, value.CompactAsset{
				ID:     value.AssetID{Policy: ids.ID(a.Policy), Name: a.Name},
				Amount: signedBig(a.Amount, a.Sign),
			})
		}
		addr := address.Address{
			Network: address.NetworkID(we.Network),
			Payment: fromWireCredential(we.Payment),
		}
		if address.StakeReferenceKind(we.StakeKind) == address.StakeBase {
			addr.Staking = address.BaseStakeReference(fromWireCredential(we.StakeCred))
		} else {
			addr.Staking = address.NoStakeReference()
		}
		in := utxo.TxIn{TxID: ids.ID(we.TxID), OutputIndex: we.OutputIndex}
		out := utxo.UTXOOut{Address: addr, Value: cv}
		next, ok := u.InsertIfAbsent(in, out)
		if !ok {
			return ledgerstate.UTxOState{}, utxo.ErrKeyCollision
		}
		u = next
	}

	return ledgerstate.UTxOState{
		UTxO:      u,
		Deposited: signedBig(ws.Deposited, ws.DepSign),
		Fees:      signedBig(ws.Fees, ws.FeeSign),
		PPUp:      make(map[ids.ShortID]txs.PParamsUpdate),
	}, nil
}

func absBytes(v *big.Int) []byte {
	if v == nil {
		return nil
	}
	return new(big.Int).Abs(v).Bytes()
}

func signedBig(b []byte, sign int8) *big.Int {
	v := new(big.Int).SetBytes(b)
	if sign < 0 {
		v.Neg(v)
	}
	return v
}

// Put persists state under slot, overwriting any existing snapshot,
// syncing to disk before returning.
func (s *Store) Put(slot uint64, state ledgerstate.UTxOState) error {
	blob, err := Encode(state)
	if err != nil {
		return err
	}
	return s.db.Set(slotKey(slot), blob, pebble.Sync)
}

// Get retrieves the snapshot at slot, if any.
func (s *Store) Get(slot uint64) (ledgerstate.UTxOState, bool, error) {
	blob, closer, err := s.db.Get(slotKey(slot))
	if err == pebble.ErrNotFound {
		return ledgerstate.UTxOState{}, false, nil
	}
	if err != nil {
		return ledgerstate.UTxOState{}, false, err
	}
	defer closer.Close()
	cp := make([]byte, len(blob))
	copy(cp, blob)
	state, err := Decode(cp)
	if err != nil {
		return ledgerstate.UTxOState{}, false, err
	}
	return state, true, nil
}
