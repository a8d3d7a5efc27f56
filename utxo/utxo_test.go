package utxo

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/value"
)

func mkOut(amt int64) UTXOOut {
	a := address.Address{
		Network: address.Mainnet,
		Payment: address.NewKeyHashCredential(ids.ShortID{1}),
		Staking: address.NoStakeReference(),
	}
	return TxOut{Address: a, Value: value.OfCoin(big.NewInt(amt))}.ToStored()
}

func TestSingletonAndLookup(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	out := mkOut(100)
	u := Singleton(in, out)

	require.Equal(t, 1, u.Size())
	require.True(t, u.ContainsKey(in))

	got, ok := u.Lookup(in)
	require.True(t, ok)
	require.Equal(t, out, got)
}

func TestImmutableUpdates(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	u1 := Singleton(in, mkOut(100))
	u2 := u1.RemoveKey(in)

	require.Equal(t, 1, u1.Size(), "original UTxO must be unaffected by derived operations")
	require.Equal(t, 0, u2.Size())
}

func TestRestrictAndExcludeByKeySet(t *testing.T) {
	in1 := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	in2 := TxIn{TxID: ids.ID{2}, OutputIndex: 0}
	u := Singleton(in1, mkOut(1)).Override(Singleton(in2, mkOut(2)))
	require.Equal(t, 2, u.Size())

	kept := u.RestrictByKeySet(map[TxIn]struct{}{in1: {}})
	require.Equal(t, 1, kept.Size())
	require.True(t, kept.ContainsKey(in1))

	dropped := u.ExcludeByKeySet(map[TxIn]struct{}{in1: {}})
	require.Equal(t, 1, dropped.Size())
	require.True(t, dropped.ContainsKey(in2))
}

func TestUnionLeftBiasedAcceptsIdenticalEntries(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	left := Singleton(in, mkOut(1))
	right := Singleton(in, mkOut(1)) // identical value: no collision

	merged := left.UnionLeftBiased(right)
	require.Equal(t, 1, merged.Size())
}

func TestUnionLeftBiasedPanicsOnCollision(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	left := Singleton(in, mkOut(1))
	right := Singleton(in, mkOut(2))

	require.Panics(t, func() {
		left.UnionLeftBiased(right)
	})
}

func TestOverridePrefersRight(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	left := Singleton(in, mkOut(1))
	right := Singleton(in, mkOut(2))

	merged := left.Override(right)
	got, ok := merged.Lookup(in)
	require.True(t, ok)
	require.Equal(t, mkOut(2), got)
}

func TestInsertIfAbsent(t *testing.T) {
	in := TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	u := New()

	u2, inserted := u.InsertIfAbsent(in, mkOut(1))
	require.True(t, inserted)
	require.Equal(t, 1, u2.Size())

	u3, inserted2 := u2.InsertIfAbsent(in, mkOut(2))
	require.False(t, inserted2)
	require.Equal(t, u2, u3)
}
