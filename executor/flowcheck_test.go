package executor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

func addrFor(hash byte) address.Address {
	return address.Address{
		Network: address.Mainnet,
		Payment: address.NewKeyHashCredential(ids.ShortID{hash}),
		Staking: address.NoStakeReference(),
	}
}

func mkGenesisState(coinByHash map[byte]int64) ledgerstate.UTxOState {
	u := utxo.New()
	for hash, coin := range coinByHash {
		in := utxo.TxIn{TxID: ids.ID{hash}, OutputIndex: 0}
		stored := utxo.TxOut{Address: addrFor(hash), Value: value.OfCoin(big.NewInt(coin))}.ToStored()
		u, _ = u.InsertIfAbsent(in, stored)
	}
	return ledgerstate.NewUTxOState(u)
}

func defaultPParams() ledgerstate.PParams {
	return ledgerstate.PParams{
		MinFeeA:      1,
		MinFeeB:      1,
		MaxTxSize:    16384,
		MinUTxOValue: 1,
		KeyDeposit:   100,
		PoolDeposit:  250,
		MinPoolCost:  100,
		EMax:         10,
	}
}

func TestBalanceSumsOnlyExistingInputs(t *testing.T) {
	state := mkGenesisState(map[byte]int64{1: 10000})
	in1 := utxo.TxIn{TxID: ids.ID{1}, OutputIndex: 0}
	in2 := utxo.TxIn{TxID: ids.ID{42}, OutputIndex: 0} // does not exist

	bal := balance(state.UTxO, []utxo.TxIn{in1, in2})
	require.Equal(t, big.NewInt(10000).String(), bal.CoinOf().String())
}

func TestCheckConservationDetectsMismatch(t *testing.T) {
	state := mkGenesisState(map[byte]int64{1: 10000})
	delegState := ledgerstate.NewDelegationState()
	pparams := defaultPParams()

	body := &txs.TxBody{
		Inputs:  []utxo.TxIn{{TxID: ids.ID{1}, OutputIndex: 0}},
		Outputs: []utxo.TxOut{{Address: addrFor(2), Value: value.OfCoin(big.NewInt(3000))}},
		Forge:   value.Zero(),
		Fee:     big.NewInt(1500),
	}
	tx := &txs.Transaction{Body: body, Witnesses: txs.NewWitnessSet()}

	f := checkConservation(tx, state, delegState, pparams)
	require.NotNil(t, f, "3000+1500 != 10000, must be flagged")
}

func TestApplyUTXORejectsBaseAssetForge(t *testing.T) {
	state := mkGenesisState(map[byte]int64{1: 10000})
	delegState := ledgerstate.NewDelegationState()
	env := ledgerstate.Environment{Slot: 0, Network: address.Mainnet, PParams: defaultPParams()}

	body := &txs.TxBody{
		Inputs:  []utxo.TxIn{{TxID: ids.ID{1}, OutputIndex: 0}},
		Outputs: []utxo.TxOut{{Address: addrFor(2), Value: value.OfCoin(big.NewInt(9000))}},
		Forge:   value.OfCoin(big.NewInt(5)),
		Fee:     big.NewInt(1005),
		TTL:     1000,
	}
	tx := &txs.Transaction{Body: body, Witnesses: txs.NewWitnessSet()}

	_, fails := ApplyUTXO(env, state, delegState, tx, crypto.FakeHasher{})
	require.NotEmpty(t, fails)

	var found bool
	for _, f := range fails {
		if _, ok := f.(ForgedBaseAssetUTxO); ok {
			found = true
		}
	}
	require.True(t, found, "base-asset forge must be flagged")
}

func TestCheckConservationBalancedTransaction(t *testing.T) {
	state := mkGenesisState(map[byte]int64{1: 10000})
	delegState := ledgerstate.NewDelegationState()
	pparams := defaultPParams()

	body := &txs.TxBody{
		Inputs: []utxo.TxIn{{TxID: ids.ID{1}, OutputIndex: 0}},
		Outputs: []utxo.TxOut{
			{Address: addrFor(1), Value: value.OfCoin(big.NewInt(6404))},
			{Address: addrFor(2), Value: value.OfCoin(big.NewInt(3000))},
		},
		Forge: value.Zero(),
		Fee:   big.NewInt(596),
	}
	tx := &txs.Transaction{Body: body, Witnesses: txs.NewWitnessSet()}

	require.Nil(t, checkConservation(tx, state, delegState, pparams))
}
