package txs

import (
	"errors"
	"math/big"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
)

// CertKind discriminates the delegation certificate variants.
type CertKind uint8

const (
	StakeRegistration CertKind = iota
	StakeDeregistration
	StakeDelegation
	PoolRegistration
	PoolRetirement
)

// PoolParams describes a stake pool's registered parameters, the
// pool-registration certificate payload.
type PoolParams struct {
	ColdKey       ids.ShortID
	VRFKeyHash    ids.ShortID
	Cost          *big.Int // coin, flat per-epoch operator fee
	MarginNum     uint64   // margin = MarginNum / MarginDenom, in [0,1]
	MarginDenom   uint64
	RewardAccount address.Credential
	Owners        []ids.ShortID // owner key hashes, contribute a pledge
}

// Certificate is the tagged union of delegation certificates a
// transaction body may carry.
//
// Field validity by Kind:
//
//	StakeRegistration:   StakeCredential (must be a key-hash credential)
//	StakeDeregistration: StakeCredential (key-hash or script-hash)
//	StakeDelegation:     StakeCredential (key-hash or script-hash), PoolID
//	PoolRegistration:    PoolParams
//	PoolRetirement:      RetiringPoolID, RetirementEpoch
type Certificate struct {
	Kind             CertKind
	StakeCredential  address.Credential
	PoolID           ids.ShortID
	PoolParams       PoolParams
	RetiringPoolID   ids.ShortID
	RetirementEpoch  uint64
}

func NewStakeRegistration(cred address.Credential) Certificate {
	return Certificate{Kind: StakeRegistration, StakeCredential: cred}
}

func NewStakeDeregistration(cred address.Credential) Certificate {
	return Certificate{Kind: StakeDeregistration, StakeCredential: cred}
}

func NewStakeDelegation(cred address.Credential, pool ids.ShortID) Certificate {
	return Certificate{Kind: StakeDelegation, StakeCredential: cred, PoolID: pool}
}

func NewPoolRegistration(params PoolParams) Certificate {
	return Certificate{Kind: PoolRegistration, PoolParams: params}
}

func NewPoolRetirement(pool ids.ShortID, epoch uint64) Certificate {
	return Certificate{Kind: PoolRetirement, RetiringPoolID: pool, RetirementEpoch: epoch}
}

var ErrRegistrationNeedsKeyHash = errors.New("txs: stake registration credential must be a key hash")

// WellFormed checks the per-kind shape invariant the witness
// requirement implies: only deregistration and delegation
// certificates may carry a script-hash stake credential.
func (c Certificate) WellFormed() error {
	if c.Kind == StakeRegistration && c.StakeCredential.IsScriptHash() {
		return ErrRegistrationNeedsKeyHash
	}
	return nil
}

func (c Certificate) encode(e *Encoder) {
	e.Uvarint(uint64(c.Kind))
	switch c.Kind {
	case StakeRegistration, StakeDeregistration:
		encodeCredential(e, c.StakeCredential)
	case StakeDelegation:
		encodeCredential(e, c.StakeCredential)
		e.ShortID(c.PoolID)
	case PoolRegistration:
		c.PoolParams.encode(e)
	case PoolRetirement:
		e.ShortID(c.RetiringPoolID)
		e.Uvarint(c.RetirementEpoch)
	}
}

func decodeCertificate(d *Decoder) Certificate {
	c := Certificate{Kind: CertKind(d.Uvarint())}
	switch c.Kind {
	case StakeRegistration, StakeDeregistration:
		c.StakeCredential = decodeCredential(d)
	case StakeDelegation:
		c.StakeCredential = decodeCredential(d)
		c.PoolID = d.ShortID()
	case PoolRegistration:
		c.PoolParams = decodePoolParams(d)
	case PoolRetirement:
		c.RetiringPoolID = d.ShortID()
		c.RetirementEpoch = d.Uvarint()
	}
	return c
}

func (p PoolParams) encode(e *Encoder) {
	e.ShortID(p.ColdKey)
	e.ShortID(p.VRFKeyHash)
	e.BigInt(p.Cost)
	e.Uvarint(p.MarginNum)
	e.Uvarint(p.MarginDenom)
	encodeCredential(e, p.RewardAccount)
	e.Uvarint(uint64(len(p.Owners)))
	for _, o := range p.Owners {
		e.ShortID(o)
	}
}

func decodePoolParams(d *Decoder) PoolParams {
	p := PoolParams{
		ColdKey:    d.ShortID(),
		VRFKeyHash: d.ShortID(),
		Cost:       d.BigInt(),
	}
	p.MarginNum = d.Uvarint()
	p.MarginDenom = d.Uvarint()
	p.RewardAccount = decodeCredential(d)
	n := d.Uvarint()
	p.Owners = make([]ids.ShortID, n)
	for i := range p.Owners {
		p.Owners[i] = d.ShortID()
	}
	return p
}

func encodeCredential(e *Encoder, c address.Credential) {
	e.Uvarint(uint64(c.Kind))
	e.ShortID(c.Hash)
}

func decodeCredential(d *Decoder) address.Credential {
	kind := address.CredentialKind(d.Uvarint())
	hash := d.ShortID()
	return address.Credential{Kind: kind, Hash: hash}
}
