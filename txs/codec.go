// Package txs implements the transaction body, canonical encoding, and
// witness set. The encoder/decoder pair here uses explicit per-type
// Encode/Decode methods instead of a reflective registry, enforcing
// the same canonical-encoding discipline by hand: stable field order,
// shortest-form integers, sorted map keys, sorted sets, no presence
// ambiguity.
package txs

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math/big"

	"github.com/ledgerworks/shelley-ledger/ids"
)

// Encoder accumulates a canonical byte encoding.
type Encoder struct {
	buf bytes.Buffer
}

func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Uvarint writes n in canonical (shortest-form) LEB128.
func (e *Encoder) Uvarint(n uint64) {
	var tmp [binary.MaxVarintLen64]byte
	l := binary.PutUvarint(tmp[:], n)
	e.buf.Write(tmp[:l])
}

// ByteSlice writes a length-prefixed byte string.
func (e *Encoder) ByteSlice(b []byte) {
	e.Uvarint(uint64(len(b)))
	e.buf.Write(b)
}

// Fixed writes b verbatim, with no length prefix — used for fixed-width
// fields (ids.ID, ids.ShortID) where the length is already implied by
// the field's type.
func (e *Encoder) Fixed(b []byte) { e.buf.Write(b) }

// Bool writes a single discriminant byte.
func (e *Encoder) Bool(b bool) {
	if b {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// BigInt writes the canonical (sign + minimal-length magnitude) form
// of an arbitrary-precision integer.
func (e *Encoder) BigInt(v *big.Int) {
	if v == nil {
		v = big.NewInt(0)
	}
	e.Bool(v.Sign() < 0)
	mag := new(big.Int).Abs(v).Bytes()
	e.ByteSlice(mag)
}

// ID writes a 32-byte digest.
func (e *Encoder) ID(id ids.ID) { e.Fixed(id[:]) }

// ShortID writes a 20-byte credential hash.
func (e *Encoder) ShortID(id ids.ShortID) { e.Fixed(id[:]) }

// String writes a length-prefixed UTF-8 string.
func (e *Encoder) String(s string) { e.ByteSlice([]byte(s)) }

// Decoder reads back what Encoder wrote, in the same order.
type Decoder struct {
	r   *bytes.Reader
	err error
}

func NewDecoder(b []byte) *Decoder { return &Decoder{r: bytes.NewReader(b)} }

func (d *Decoder) Err() error { return d.err }

func (d *Decoder) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

func (d *Decoder) Uvarint() uint64 {
	if d.err != nil {
		return 0
	}
	n, err := binary.ReadUvarint(d.r)
	if err != nil {
		d.fail(err)
		return 0
	}
	return n
}

func (d *Decoder) ByteSlice() []byte {
	if d.err != nil {
		return nil
	}
	n := d.Uvarint()
	if d.err != nil {
		return nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		d.fail(err)
		return nil
	}
	return out
}

func (d *Decoder) Fixed(n int) []byte {
	if d.err != nil {
		return nil
	}
	out := make([]byte, n)
	if _, err := io.ReadFull(d.r, out); err != nil {
		d.fail(err)
		return nil
	}
	return out
}

func (d *Decoder) Bool() bool {
	if d.err != nil {
		return false
	}
	b, err := d.r.ReadByte()
	if err != nil {
		d.fail(err)
		return false
	}
	return b != 0
}

func (d *Decoder) BigInt() *big.Int {
	neg := d.Bool()
	mag := d.ByteSlice()
	v := new(big.Int).SetBytes(mag)
	if neg {
		v.Neg(v)
	}
	return v
}

func (d *Decoder) ID() ids.ID {
	var id ids.ID
	copy(id[:], d.Fixed(ids.IDLen))
	return id
}

func (d *Decoder) ShortID() ids.ShortID {
	var id ids.ShortID
	copy(id[:], d.Fixed(ids.ShortIDLen))
	return id
}

func (d *Decoder) String() string {
	return string(d.ByteSlice())
}

var ErrTrailingBytes = errors.New("txs: trailing bytes after canonical decode")

// Done reports an error if unconsumed bytes remain: a well-formed
// canonical encoding has no trailing garbage.
func (d *Decoder) Done() error {
	if d.err != nil {
		return d.err
	}
	if d.r.Len() != 0 {
		return ErrTrailingBytes
	}
	return nil
}
