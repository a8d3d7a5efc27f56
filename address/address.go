package address

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/ledgerworks/shelley-ledger/ids"
)

// NetworkID discriminates which network an address belongs to.
type NetworkID uint8

const (
	Mainnet NetworkID = 0
	Testnet NetworkID = 1
)

var networkHRP = map[NetworkID]string{
	Mainnet: "addr",
	Testnet: "addr_test",
}

var hrpNetwork = map[string]NetworkID{
	"addr":      Mainnet,
	"addr_test": Testnet,
}

// StakeReferenceKind discriminates the three staking-reference forms:
// a base credential, a pointer into the delegation certificate
// history, or none.
type StakeReferenceKind uint8

const (
	StakeNone StakeReferenceKind = iota
	StakeBase
	StakePointer
)

// Pointer identifies a stake-registration certificate by its position
// in the chain: the slot it appeared in, its transaction index within
// the block, and its certificate index within the transaction.
type Pointer struct {
	Slot      uint64
	TxIndex   uint32
	CertIndex uint32
}

// StakeReference is the tagged union backing Address's staking part.
type StakeReference struct {
	Kind       StakeReferenceKind
	Credential Credential // valid iff Kind == StakeBase
	Pointer    Pointer    // valid iff Kind == StakePointer
}

// NoStakeReference is the StakeNone reference.
func NoStakeReference() StakeReference { return StakeReference{Kind: StakeNone} }

// BaseStakeReference wraps a staking credential directly in the address.
func BaseStakeReference(c Credential) StakeReference {
	return StakeReference{Kind: StakeBase, Credential: c}
}

// PointerStakeReference references a registration certificate by position.
func PointerStakeReference(p Pointer) StakeReference {
	return StakeReference{Kind: StakePointer, Pointer: p}
}

// Address is a ledger address record: a network tag, a payment
// credential, and a staking reference.
type Address struct {
	Network NetworkID
	Payment Credential
	Staking StakeReference
}

// RewardAccount identifies a reward account: a network tag plus the
// stake credential that owns it. Unlike Address, a RewardAccount
// carries no payment credential or staking reference of its own — it
// *is* a staking credential, addressed for withdrawal.
type RewardAccount struct {
	Network    NetworkID
	Credential Credential
}

var (
	ErrInvalidAddress        = errors.New("invalid address")
	ErrUnknownNetworkHRP     = errors.New("unknown network human-readable prefix")
	ErrTruncatedAddress      = errors.New("address bytes truncated")
	ErrUnknownCredentialKind = errors.New("unknown credential kind byte")
	ErrUnknownStakeRefKind   = errors.New("unknown stake reference kind byte")
)

// discriminant byte layout: bit0 = payment credential is a script hash,
// bit1 = base stake reference, bit2 = base stake credential is a script
// hash, bit3 = pointer stake reference.
func (a Address) discriminant() byte {
	d := byte(0)
	if a.Payment.Kind == ScriptHashCredential {
		d |= 0x01
	}
	switch a.Staking.Kind {
	case StakeBase:
		d |= 0x02
		if a.Staking.Credential.Kind == ScriptHashCredential {
			d |= 0x04
		}
	case StakePointer:
		d |= 0x08
	}
	return d
}

// rawBytes renders the address's payment/staking payload, the byte
// sequence that is bech32-encoded. This is the serialization layer;
// canonical tx-body encoding is independent of it and
// lives in txs/codec.go.
func (a Address) rawBytes() []byte {
	out := []byte{a.discriminant()}
	out = append(out, a.Payment.Hash.Bytes()...)
	switch a.Staking.Kind {
	case StakeBase:
		out = append(out, a.Staking.Credential.Hash.Bytes()...)
	case StakePointer:
		var buf [24]byte
		binary.BigEndian.PutUint64(buf[0:8], a.Staking.Pointer.Slot)
		binary.BigEndian.PutUint32(buf[8:12], a.Staking.Pointer.TxIndex)
		binary.BigEndian.PutUint32(buf[12:16], a.Staking.Pointer.CertIndex)
		out = append(out, buf[:16]...)
	}
	return out
}

func fromRawBytes(network NetworkID, raw []byte) (Address, error) {
	if len(raw) < 1+ids.ShortIDLen {
		return Address{}, ErrTruncatedAddress
	}
	disc := raw[0]
	rest := raw[1:]

	paymentHash, err := ids.ToShortID(rest[:ids.ShortIDLen])
	if err != nil {
		return Address{}, err
	}
	rest = rest[ids.ShortIDLen:]

	paymentKind := KeyHashCredential
	if disc&0x01 != 0 {
		paymentKind = ScriptHashCredential
	}

	a := Address{
		Network: network,
		Payment: Credential{Kind: paymentKind, Hash: paymentHash},
	}

	switch {
	case disc&0x02 != 0:
		if len(rest) < ids.ShortIDLen {
			return Address{}, ErrTruncatedAddress
		}
		stakingHash, err := ids.ToShortID(rest[:ids.ShortIDLen])
		if err != nil {
			return Address{}, err
		}
		stakeKind := KeyHashCredential
		if disc&0x04 != 0 {
			stakeKind = ScriptHashCredential
		}
		a.Staking = BaseStakeReference(Credential{Kind: stakeKind, Hash: stakingHash})
	case disc&0x08 != 0:
		if len(rest) < 16 {
			return Address{}, ErrTruncatedAddress
		}
		a.Staking = PointerStakeReference(Pointer{
			Slot:      binary.BigEndian.Uint64(rest[0:8]),
			TxIndex:   binary.BigEndian.Uint32(rest[8:12]),
			CertIndex: binary.BigEndian.Uint32(rest[12:16]),
		})
	default:
		a.Staking = NoStakeReference()
	}
	return a, nil
}

// Encode bech32-encodes a using a network-keyed human-readable prefix
// and the btcutil/bech32 codec.
func (a Address) Encode() (string, error) {
	hrp, ok := networkHRP[a.Network]
	if !ok {
		return "", ErrUnknownNetworkHRP
	}
	converted, err := bech32.ConvertBits(a.rawBytes(), 8, 5, true)
	if err != nil {
		return "", err
	}
	return bech32.Encode(hrp, converted)
}

// Decode parses a bech32-encoded address string produced by Encode.
func Decode(s string) (Address, error) {
	hrp, data, err := bech32.Decode(s)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	network, ok := hrpNetwork[hrp]
	if !ok {
		return Address{}, ErrUnknownNetworkHRP
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, err
	}
	return fromRawBytes(network, raw)
}
