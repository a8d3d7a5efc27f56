package txs

import (
	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/scripts"
)

// Transaction is a signed ledger transaction: a body plus
// the witness set authorizing it.
type Transaction struct {
	Body       *TxBody
	Witnesses  WitnessSet
	Metadata   Metadata // nil if absent; must hash to Body.MetadataHash when present
}

// ID returns the transaction's identity, the hash of its body's
// canonical encoding. Two transactions with identical bodies but
// different witness sets share an ID — identity is a property of the
// body alone.
func (tx *Transaction) ID(h crypto.Hasher) ids.ID {
	return tx.Body.ID(h)
}

// Size returns the transaction's serialized size in bytes, the
// quantity the fee-lower-bound and max-tx-size checks are computed
// against.
func (tx *Transaction) Size() int {
	size := len(tx.Body.Encode())
	for _, w := range tx.Witnesses.VKeyWitnesses {
		size += len(w.VKey) + len(w.Sig)
	}
	for _, w := range tx.Witnesses.BootstrapWitnesses {
		size += len(w.VKey) + len(w.Sig) + len(w.ChainCode)
	}
	for _, s := range tx.Witnesses.Scripts {
		size += len(scripts.Bytes(s))
	}
	size += len(tx.Metadata)
	return size
}

// BodyDigest is the byte string vkey witnesses sign over: the body's
// canonical encoding's hash, rendered as bytes for the signature
// scheme.
func (tx *Transaction) BodyDigest(h crypto.Hasher) []byte {
	id := tx.Body.ID(h)
	return id[:]
}

// Sign appends a fresh VKeyWitness over tx's body digest, produced by sk.
func (tx *Transaction) Sign(h crypto.Hasher, sk crypto.PrivateKey) error {
	digest := tx.BodyDigest(h)
	sig, err := sk.Sign(digest)
	if err != nil {
		return err
	}
	tx.Witnesses.VKeyWitnesses = append(tx.Witnesses.VKeyWitnesses, VKeyWitness{
		VKey: sk.PublicKey().Bytes(),
		Sig:  sig,
	})
	return nil
}

var ErrMetadataHashMismatch = metadataHashMismatch{}

type metadataHashMismatch struct{}

func (metadataHashMismatch) Error() string {
	return "txs: metadata does not hash to the body's declared metadata hash"
}

// CheckMetadata verifies tx.Metadata (if any) matches Body.MetadataHash.
func (tx *Transaction) CheckMetadata(h crypto.Hasher) error {
	switch {
	case tx.Body.MetadataHash == nil && tx.Metadata == nil:
		return nil
	case tx.Body.MetadataHash == nil || tx.Metadata == nil:
		return ErrMetadataHashMismatch
	}
	got := h.Hash(tx.Metadata)
	if got != *tx.Body.MetadataHash {
		return ErrMetadataHashMismatch
	}
	return nil
}
