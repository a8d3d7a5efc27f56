package executor

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
)

func stakeCred(hash byte) address.Credential {
	return address.NewKeyHashCredential(ids.ShortID{hash})
}

func delegsEnv() ledgerstate.Environment {
	return ledgerstate.Environment{Epoch: 5, PParams: defaultPParams()}
}

func TestStakeRegistrationAndReRegistration(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cred := stakeCred(1)

	body := &txs.TxBody{Certs: []txs.Certificate{txs.NewStakeRegistration(cred)}}
	next, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.Empty(t, fails)
	require.True(t, next.IsRegistered(cred))
	require.False(t, state.IsRegistered(cred), "pre-state must be unchanged")

	_, fails = ApplyDELEGS(delegsEnv(), next, body)
	require.NotEmpty(t, fails, "second registration of the same credential must fail")
}

func TestStakeRegistrationRejectsScriptHashCredential(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	scriptCred := address.NewScriptHashCredential(ids.ShortID{8})

	body := &txs.TxBody{Certs: []txs.Certificate{txs.NewStakeRegistration(scriptCred)}}
	next, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.NotEmpty(t, fails)
	require.False(t, next.IsRegistered(scriptCred))

	var delpl DelplFailure
	require.IsType(t, delpl, fails[0])
	inner := fails[0].(DelplFailure).Inner
	require.NotEmpty(t, inner)
	require.IsType(t, RegistrationNeedsKeyHashDELEG{}, inner[0])
}

func TestStakeDeregistrationRequiresEmptyRewards(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cred := stakeCred(1)
	state.RegisteredStake[cred] = struct{}{}
	state.RewardAccounts[cred] = big.NewInt(10)

	body := &txs.TxBody{Certs: []txs.Certificate{txs.NewStakeDeregistration(cred)}}
	_, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.NotEmpty(t, fails)

	state.RewardAccounts[cred] = big.NewInt(0)
	next, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.Empty(t, fails)
	require.False(t, next.IsRegistered(cred))
}

func TestDelegationNeedsRegisteredCredentialAndPool(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cred := stakeCred(1)
	pool := ids.ShortID{9}

	body := &txs.TxBody{Certs: []txs.Certificate{txs.NewStakeDelegation(cred, pool)}}
	_, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.NotEmpty(t, fails, "neither credential nor pool registered")

	state.RegisteredStake[cred] = struct{}{}
	state.RewardAccounts[cred] = big.NewInt(0)
	state.RegisteredPools[pool] = txs.PoolParams{ColdKey: pool, Cost: big.NewInt(100), MarginDenom: 1}

	next, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.Empty(t, fails)
	require.Equal(t, pool, next.Delegations[cred])
}

func TestPoolRegistrationCostAndMargin(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cold := ids.ShortID{9}

	cheap := txs.NewPoolRegistration(txs.PoolParams{ColdKey: cold, Cost: big.NewInt(50), MarginNum: 1, MarginDenom: 10})
	_, fails := ApplyDELEGS(delegsEnv(), state, &txs.TxBody{Certs: []txs.Certificate{cheap}})
	require.NotEmpty(t, fails, "cost below minPoolCost must fail")

	badMargin := txs.NewPoolRegistration(txs.PoolParams{ColdKey: cold, Cost: big.NewInt(100), MarginNum: 2, MarginDenom: 1})
	_, fails = ApplyDELEGS(delegsEnv(), state, &txs.TxBody{Certs: []txs.Certificate{badMargin}})
	require.NotEmpty(t, fails, "margin above 1 must fail")

	good := txs.NewPoolRegistration(txs.PoolParams{ColdKey: cold, Cost: big.NewInt(100), MarginNum: 1, MarginDenom: 10})
	next, fails := ApplyDELEGS(delegsEnv(), state, &txs.TxBody{Certs: []txs.Certificate{good}})
	require.Empty(t, fails)
	require.True(t, next.IsPoolRegistered(cold))
}

func TestPoolRetirementEpochWindow(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cold := ids.ShortID{9}
	state.RegisteredPools[cold] = txs.PoolParams{ColdKey: cold, Cost: big.NewInt(100), MarginDenom: 1}
	env := delegsEnv() // epoch 5, eMax 10

	tooSoon := &txs.TxBody{Certs: []txs.Certificate{txs.NewPoolRetirement(cold, 5)}}
	_, fails := ApplyDELEGS(env, state, tooSoon)
	require.NotEmpty(t, fails, "retirement at the current epoch must fail")

	tooFar := &txs.TxBody{Certs: []txs.Certificate{txs.NewPoolRetirement(cold, 16)}}
	_, fails = ApplyDELEGS(env, state, tooFar)
	require.NotEmpty(t, fails, "retirement beyond epoch+eMax must fail")

	inWindow := &txs.TxBody{Certs: []txs.Certificate{txs.NewPoolRetirement(cold, 10)}}
	next, fails := ApplyDELEGS(env, state, inWindow)
	require.Empty(t, fails)
	require.Equal(t, uint64(10), next.RetiringPools[cold])
}

func TestReRegistrationCancelsRetirement(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cold := ids.ShortID{9}
	params := txs.PoolParams{ColdKey: cold, Cost: big.NewInt(100), MarginNum: 1, MarginDenom: 10}
	state.RegisteredPools[cold] = params
	state.RetiringPools[cold] = 10

	body := &txs.TxBody{Certs: []txs.Certificate{txs.NewPoolRegistration(params)}}
	next, fails := ApplyDELEGS(delegsEnv(), state, body)
	require.Empty(t, fails)
	_, retiring := next.RetiringPools[cold]
	require.False(t, retiring)
}

func TestWithdrawalsMustMatchRewardBalances(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cred := stakeCred(3)
	state.RegisteredStake[cred] = struct{}{}
	state.RewardAccounts[cred] = big.NewInt(10)

	account := address.RewardAccount{Network: address.Mainnet, Credential: cred}

	short := &txs.TxBody{Withdrawals: []txs.Withdrawal{{Account: account, Amount: big.NewInt(5)}}}
	_, fails := ApplyDELEGS(delegsEnv(), state, short)
	require.NotEmpty(t, fails, "partial withdrawal must fail")

	exact := &txs.TxBody{Withdrawals: []txs.Withdrawal{{Account: account, Amount: big.NewInt(10)}}}
	next, fails := ApplyDELEGS(delegsEnv(), state, exact)
	require.Empty(t, fails)
	require.Equal(t, 0, next.RewardBalance(cred).Sign())
	require.Equal(t, big.NewInt(10), state.RewardBalance(cred), "pre-state must be unchanged")
}

func TestRequiredWitnessesIncludesWithdrawalCredential(t *testing.T) {
	cred := stakeCred(4)
	body := &txs.TxBody{
		Withdrawals: []txs.Withdrawal{{
			Account: address.RewardAccount{Network: address.Mainnet, Credential: cred},
			Amount:  big.NewInt(10),
		}},
	}
	tx := &txs.Transaction{Body: body}

	required := requiredWitnesses(tx, ledgerstate.NewUTxOState(utxo.New()))
	require.True(t, required.Contains(cred.Hash))
}

func TestTotalDepositsChargesNewPoolsOnly(t *testing.T) {
	state := ledgerstate.NewDelegationState()
	cold := ids.ShortID{9}
	pparams := defaultPParams()

	body := &txs.TxBody{Certs: []txs.Certificate{
		txs.NewStakeRegistration(stakeCred(1)),
		txs.NewPoolRegistration(txs.PoolParams{ColdKey: cold, Cost: big.NewInt(100), MarginNum: 1, MarginDenom: 10}),
	}}

	total := totalDeposits(body, pparams, state)
	require.Equal(t, big.NewInt(100+250), total)

	state.RegisteredPools[cold] = txs.PoolParams{ColdKey: cold}
	total = totalDeposits(body, pparams, state)
	require.Equal(t, big.NewInt(100), total, "re-registration must not recharge the pool deposit")
}

func TestRefundsValueDeregistrations(t *testing.T) {
	pparams := defaultPParams()
	body := &txs.TxBody{Certs: []txs.Certificate{
		txs.NewStakeDeregistration(stakeCred(1)),
		txs.NewStakeDeregistration(stakeCred(2)),
	}}
	require.Equal(t, big.NewInt(200), refunds(body, pparams))
}
