package txs

import (
	"errors"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/scripts"
)

// VKeyWitness is a verification-key witness: a public key together
// with its signature over the transaction's body hash.
type VKeyWitness struct {
	VKey []byte
	Sig  []byte
}

// KeyHash derives the credential hash this witness would satisfy.
func (w VKeyWitness) KeyHash(factory crypto.Factory) (ids.ShortID, error) {
	pk, err := factory.ToPublicKey(w.VKey)
	if err != nil {
		return ids.ShortID{}, err
	}
	return pk.Address(), nil
}

// Verify reports whether w's signature is valid over digest.
func (w VKeyWitness) Verify(factory crypto.Factory, digest []byte) (bool, error) {
	pk, err := factory.ToPublicKey(w.VKey)
	if err != nil {
		return false, err
	}
	return pk.Verify(digest, w.Sig), nil
}

// BootstrapWitness is a vkey witness extended with a chain code, used
// to authorize spending from an address whose payment credential was
// derived via hierarchical key derivation rather than a bare key hash.
// It is equivalent to a VKeyWitness for required-witness accounting;
// the chain code is opaque to the ledger core and is only meaningful
// to the wallet that produced it.
type BootstrapWitness struct {
	VKey      []byte
	Sig       []byte
	ChainCode [32]byte
}

func (w BootstrapWitness) asVKeyWitness() VKeyWitness {
	return VKeyWitness{VKey: w.VKey, Sig: w.Sig}
}

// WitnessSet bundles every form of authorization evidence a
// transaction carries: key witnesses, scripts keyed by
// their hash, and bootstrap witnesses.
type WitnessSet struct {
	VKeyWitnesses      []VKeyWitness
	Scripts            map[ids.ShortID]scripts.Script
	BootstrapWitnesses []BootstrapWitness
}

// NewWitnessSet returns an empty WitnessSet ready for use.
func NewWitnessSet() WitnessSet {
	return WitnessSet{Scripts: make(map[ids.ShortID]scripts.Script)}
}

// AddScript inserts s into the set, keyed by its own hash.
func (ws *WitnessSet) AddScript(h crypto.Hasher, s scripts.Script) {
	if ws.Scripts == nil {
		ws.Scripts = make(map[ids.ShortID]scripts.Script)
	}
	ws.Scripts[scripts.Hash(h, s)] = s
}

var ErrDuplicateKeyHash = errors.New("txs: two vkey witnesses derive the same key hash")

// ProvidedKeyHashes returns the set of credential hashes satisfied by
// this witness set's vkey and bootstrap witnesses, used by UTXOW's
// "every required key hash has a matching witness" check.
func (ws WitnessSet) ProvidedKeyHashes(factory crypto.Factory) (ids.ShortSet, error) {
	out := ids.NewShortSet(len(ws.VKeyWitnesses) + len(ws.BootstrapWitnesses))
	all := make([]VKeyWitness, 0, len(ws.VKeyWitnesses)+len(ws.BootstrapWitnesses))
	all = append(all, ws.VKeyWitnesses...)
	for _, bw := range ws.BootstrapWitnesses {
		all = append(all, bw.asVKeyWitness())
	}
	for _, w := range all {
		hash, err := w.KeyHash(factory)
		if err != nil {
			return nil, err
		}
		out.Add(hash)
	}
	return out, nil
}

// VerifyAll checks every vkey/bootstrap witness's signature against
// digest, failing closed on the first invalid one. Batch verification
// of independent signatures is embarrassingly parallel;
// callers verifying many transactions concurrently should fan this out
// themselves rather than serialize inside WitnessSet.
func (ws WitnessSet) VerifyAll(factory crypto.Factory, digest []byte) error {
	all := make([]VKeyWitness, 0, len(ws.VKeyWitnesses)+len(ws.BootstrapWitnesses))
	all = append(all, ws.VKeyWitnesses...)
	for _, bw := range ws.BootstrapWitnesses {
		all = append(all, bw.asVKeyWitness())
	}
	for _, w := range all {
		ok, err := w.Verify(factory, digest)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidWitnessSignature
		}
	}
	return nil
}

var ErrInvalidWitnessSignature = errors.New("txs: witness signature does not verify")
