package scripts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
)

func ctxWith(keys ...ids.ShortID) Context {
	set := ids.NewShortSet(len(keys))
	for _, k := range keys {
		set.Add(k)
	}
	return Context{ProvidedKeyHashes: set}
}

func TestMultiSigThreshold(t *testing.T) {
	k1, k2, k3 := ids.ShortID{1}, ids.ShortID{2}, ids.ShortID{3}
	ms := AtLeast(2, k1, k2, k3)

	require.NoError(t, ms.Evaluate(ctxWith(k1, k2)))
	require.ErrorIs(t, ms.Evaluate(ctxWith(k1)), ErrNotSatisfied)
}

func TestAllOfRequiresEveryKey(t *testing.T) {
	k1, k2 := ids.ShortID{1}, ids.ShortID{2}
	ms := AllOf(k1, k2)

	require.ErrorIs(t, ms.Evaluate(ctxWith(k1)), ErrNotSatisfied)
	require.NoError(t, ms.Evaluate(ctxWith(k1, k2)))
}

func TestTimeLockBounds(t *testing.T) {
	notBefore := uint64(100)
	notAfter := uint64(200)
	lock := TimeLock{NotBefore: &notBefore, NotAfter: &notAfter}

	require.ErrorIs(t, lock.Evaluate(Context{CurrentSlot: 50}), ErrNotSatisfied)
	require.NoError(t, lock.Evaluate(Context{CurrentSlot: 150}))
	require.ErrorIs(t, lock.Evaluate(Context{CurrentSlot: 200}), ErrNotSatisfied)
}

func TestAnyOfSubScripts(t *testing.T) {
	notBefore := uint64(1000)
	lock := TimeLock{NotBefore: &notBefore}
	k1 := ids.ShortID{1}
	any := Any{Scripts: []Script{lock, AllOf(k1)}}

	require.NoError(t, any.Evaluate(ctxWith(k1)))
	require.ErrorIs(t, any.Evaluate(ctxWith()), ErrNotSatisfied)
}

func TestHashIsStableAndDistinguishesScripts(t *testing.T) {
	h := crypto.Blake2bHasher{}
	k1, k2 := ids.ShortID{1}, ids.ShortID{2}

	a := AllOf(k1, k2)
	b := AllOf(k1, k2)
	require.Equal(t, Hash(h, a), Hash(h, b))

	c := AnyOf(k1, k2)
	require.NotEqual(t, Hash(h, a), Hash(h, c))
}
