package txs

import "github.com/ledgerworks/shelley-ledger/ids"

// PParamsUpdate is a partial override of protocol parameters: a nil
// field leaves that parameter unchanged.
type PParamsUpdate struct {
	MinFeeA      *uint64
	MinFeeB      *uint64
	MaxTxSize    *uint64
	MinUTxOValue *uint64
	KeyDeposit   *uint64
	PoolDeposit  *uint64
	MinPoolCost  *uint64
}

// UpdateBody is a genesis-delegate-sponsored proposal to change
// protocol parameters, optionally carried by a transaction body.
// Epoch is the epoch the proposal takes effect in; actually applying
// the change at epoch boundary is out of this ledger core's scope.
type UpdateBody struct {
	Epoch     uint64
	Proposals map[ids.ShortID]PParamsUpdate // keyed by genesis delegate key hash
}

func (u *UpdateBody) encode(e *Encoder) {
	e.Uvarint(u.Epoch)
	keys := make([]ids.ShortID, 0, len(u.Proposals))
	for k := range u.Proposals {
		keys = append(keys, k)
	}
	sortShortIDs(keys)
	e.Uvarint(uint64(len(keys)))
	for _, k := range keys {
		e.ShortID(k)
		u.Proposals[k].encode(e)
	}
}

func decodeUpdateBody(d *Decoder) *UpdateBody {
	u := &UpdateBody{Proposals: make(map[ids.ShortID]PParamsUpdate)}
	u.Epoch = d.Uvarint()
	n := d.Uvarint()
	for i := uint64(0); i < n; i++ {
		k := d.ShortID()
		u.Proposals[k] = decodePParamsUpdate(d)
	}
	return u
}

func (p PParamsUpdate) encode(e *Encoder) {
	encodeOptionalUint64(e, p.MinFeeA)
	encodeOptionalUint64(e, p.MinFeeB)
	encodeOptionalUint64(e, p.MaxTxSize)
	encodeOptionalUint64(e, p.MinUTxOValue)
	encodeOptionalUint64(e, p.KeyDeposit)
	encodeOptionalUint64(e, p.PoolDeposit)
	encodeOptionalUint64(e, p.MinPoolCost)
}

func decodePParamsUpdate(d *Decoder) PParamsUpdate {
	return PParamsUpdate{
		MinFeeA:      decodeOptionalUint64(d),
		MinFeeB:      decodeOptionalUint64(d),
		MaxTxSize:    decodeOptionalUint64(d),
		MinUTxOValue: decodeOptionalUint64(d),
		KeyDeposit:   decodeOptionalUint64(d),
		PoolDeposit:  decodeOptionalUint64(d),
		MinPoolCost:  decodeOptionalUint64(d),
	}
}

func encodeOptionalUint64(e *Encoder, v *uint64) {
	e.Bool(v != nil)
	if v != nil {
		e.Uvarint(*v)
	}
}

func decodeOptionalUint64(d *Decoder) *uint64 {
	if !d.Bool() {
		return nil
	}
	v := d.Uvarint()
	return &v
}

// ids sorts its own sets with an unexported helper; txs needs the same
// ordering for map-key canonicalization, so it keeps a local insertion
// sort rather than export one for the other's sake.
func sortShortIDs(s []ids.ShortID) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && lessShortID(s[j], s[j-1]); j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}

func lessShortID(a, b ids.ShortID) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
