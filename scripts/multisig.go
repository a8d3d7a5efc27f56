package scripts

import "github.com/ledgerworks/shelley-ledger/ids"

// MultiSig is an m-of-n native multisig script over key hashes:
// satisfied when at least Threshold of Keys appear in the evaluation
// context's provided key hashes.
type MultiSig struct {
	Keys      []ids.ShortID
	Threshold int
}

// AllOf requires every key's witness to be present.
func AllOf(keys ...ids.ShortID) MultiSig {
	return MultiSig{Keys: keys, Threshold: len(keys)}
}

// AnyOf requires at least one key's witness to be present.
func AnyOf(keys ...ids.ShortID) MultiSig {
	return MultiSig{Keys: keys, Threshold: 1}
}

// AtLeast requires at least n of keys' witnesses to be present.
func AtLeast(n int, keys ...ids.ShortID) MultiSig {
	return MultiSig{Keys: keys, Threshold: n}
}

func (m MultiSig) Evaluate(ctx Context) error {
	matched := 0
	for _, k := range m.Keys {
		if ctx.ProvidedKeyHashes.Contains(k) {
			matched++
		}
	}
	if matched < m.Threshold {
		return ErrNotSatisfied
	}
	return nil
}

func (m MultiSig) encode(e *encoder) {
	e.uvarint(scriptKindMultiSig)
	e.uvarint(uint64(m.Threshold))
	e.uvarint(uint64(len(m.Keys)))
	for _, k := range m.Keys {
		e.shortID(k)
	}
}
