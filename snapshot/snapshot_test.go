package snapshot

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

func sampleState(t *testing.T) ledgerstate.UTxOState {
	t.Helper()
	var alicePayment ids.ShortID
	alicePayment[0] = 1
	var aliceStake ids.ShortID
	aliceStake[0] = 2
	var txID ids.ID
	txID[0] = 9

	addr := address.Address{
		Network: address.Testnet,
		Payment: address.NewKeyHashCredential(alicePayment),
		Staking: address.BaseStakeReference(address.NewKeyHashCredential(aliceStake)),
	}
	val := value.OfCoin(big.NewInt(6404))
	val[value.AssetID{Policy: ids.ID{0x01}, Name: "gold"}] = big.NewInt(5)

	u := utxo.New()
	u, ok := u.InsertIfAbsent(utxo.TxIn{TxID: txID, OutputIndex: 0}, utxo.TxOut{Address: addr, Value: val}.ToStored())
	require.True(t, ok)

	s := ledgerstate.NewUTxOState(u)
	s.Deposited = big.NewInt(100)
	s.Fees = big.NewInt(596)
	s.PPUp = make(map[ids.ShortID]txs.PParamsUpdate)
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := sampleState(t)
	blob, err := Encode(s)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	assert.Equal(t, s.UTxO.Size(), decoded.UTxO.Size())
	assert.Equal(t, 0, s.Deposited.Cmp(decoded.Deposited))
	assert.Equal(t, 0, s.Fees.Cmp(decoded.Fees))

	entries := s.UTxO.Entries()
	decodedEntries := decoded.UTxO.Entries()
	require.Len(t, decodedEntries, len(entries))
	assert.Equal(t, entries[0].Out.Address, decodedEntries[0].Out.Address)
	assert.Equal(t, 0, entries[0].Out.Value.Coin.Cmp(decodedEntries[0].Out.Value.Coin))
}

func TestStorePutGet(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "snapshots"))
	require.NoError(t, err)
	defer store.Close()

	s := sampleState(t)
	require.NoError(t, store.Put(42, s))

	got, ok, err := store.Get(42)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.UTxO.Size(), got.UTxO.Size())

	_, ok, err = store.Get(7)
	require.NoError(t, err)
	assert.False(t, ok)
}
