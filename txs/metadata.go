package txs

// Metadata is caller-supplied auxiliary data attached to a transaction
// but outside its authorization semantics: only its hash is carried in
// the canonically-encoded TxBody, the payload itself travels alongside the transaction and is
// not part of ledger state.
type Metadata []byte

func (m Metadata) encode(e *Encoder) { e.ByteSlice(m) }

func decodeMetadata(d *Decoder) Metadata { return Metadata(d.ByteSlice()) }
