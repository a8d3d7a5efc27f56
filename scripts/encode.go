package scripts

import (
	"bytes"
	"encoding/binary"

	"github.com/ledgerworks/shelley-ledger/ids"
)

// encoder is a minimal canonical writer, local to this package since
// txs.Encoder cannot be reused here without an import cycle (txs
// imports scripts for WitnessSet.Scripts).
type encoder struct {
	buf bytes.Buffer
}

func newEncoder() *encoder { return &encoder{} }

func (e *encoder) bytes() []byte { return e.buf.Bytes() }

func (e *encoder) uvarint(n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(tmp[:], n)
	e.buf.Write(tmp[:l])
}

func (e *encoder) shortID(id ids.ShortID) { e.buf.Write(id[:]) }

func (e *encoder) optionalUint64(v *uint64) {
	if v == nil {
		e.buf.WriteByte(0)
		return
	}
	e.buf.WriteByte(1)
	e.uvarint(*v)
}
