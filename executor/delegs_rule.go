package executor

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// ApplyDELEGS implements the DELEGS/DELPL/POOL composite: certificates
// are applied in order via applyDELPL, then withdrawals are checked
// against current reward balances.
func ApplyDELEGS(env ledgerstate.Environment, state ledgerstate.DelegationState, body *txs.TxBody) (ledgerstate.DelegationState, Failures) {
	next := state.Clone()
	var fails Failures

	for _, c := range body.Certs {
		updated, certFails := applyDELPL(env, next, c)
		if len(certFails) > 0 {
			fails = append(fails, DelplFailure{Inner: certFails})
			continue
		}
		next = updated
	}

	if diff := withdrawalDiff(next, body.Withdrawals); len(diff) > 0 {
		fails = append(fails, WithdrawalsNotInRewardsDELEGS{Diff: diff})
	} else {
		for _, w := range body.Withdrawals {
			next.RewardAccounts[w.Account.Credential] = big.NewInt(0)
		}
	}

	if len(fails) > 0 {
		return state, fails
	}
	return next, nil
}

// withdrawalDiff reports, for each withdrawal, the gap between its
// claimed amount and the account's actual reward balance; an empty
// result means every withdrawal exactly matches.
func withdrawalDiff(state ledgerstate.DelegationState, withdrawals []txs.Withdrawal) map[address.Credential]*big.Int {
	diff := make(map[address.Credential]*big.Int)
	for _, w := range withdrawals {
		balance := state.RewardBalance(w.Account.Credential)
		if balance.Cmp(w.Amount) != 0 {
			diff[w.Account.Credential] = new(big.Int).Sub(w.Amount, balance)
		}
	}
	return diff
}

func applyDELPL(env ledgerstate.Environment, state ledgerstate.DelegationState, c txs.Certificate) (ledgerstate.DelegationState, Failures) {
	switch c.Kind {
	case txs.StakeRegistration, txs.StakeDeregistration, txs.StakeDelegation:
		return applyDELEG(state, c)
	case txs.PoolRegistration, txs.PoolRetirement:
		next, fails := applyPOOL(env, state, c)
		if len(fails) > 0 {
			return state, Failures{PoolFailure{Inner: fails}}
		}
		return next, nil
	default:
		return state, Failures{WrongCertificateTypeDELEG{}}
	}
}

func applyDELEG(state ledgerstate.DelegationState, c txs.Certificate) (ledgerstate.DelegationState, Failures) {
	switch c.Kind {
	case txs.StakeRegistration:
		// A registration certificate needs no script witness, so a
		// script-hash credential here would register without any
		// authorization at all; only key hashes may register.
		if err := c.WellFormed(); err != nil {
			return state, Failures{RegistrationNeedsKeyHashDELEG{Cred: c.StakeCredential}}
		}
		if state.IsRegistered(c.StakeCredential) {
			return state, Failures{StakeKeyAlreadyRegisteredDELEG{Cred: c.StakeCredential}}
		}
		next := state.Clone()
		next.RegisteredStake[c.StakeCredential] = struct{}{}
		next.RewardAccounts[c.StakeCredential] = big.NewInt(0)
		return next, nil

	case txs.StakeDeregistration:
		if !state.IsRegistered(c.StakeCredential) {
			return state, Failures{StakeKeyNotRegisteredDELEG{Cred: c.StakeCredential}}
		}
		if balance := state.RewardBalance(c.StakeCredential); balance.Sign() != 0 {
			return state, Failures{RewardAccountNotEmptyDELEG{Cred: c.StakeCredential, Balance: balance}}
		}
		next := state.Clone()
		delete(next.RegisteredStake, c.StakeCredential)
		delete(next.Delegations, c.StakeCredential)
		delete(next.RewardAccounts, c.StakeCredential)
		return next, nil

	case txs.StakeDelegation:
		if !state.IsRegistered(c.StakeCredential) || !state.IsPoolRegistered(c.PoolID) {
			return state, Failures{StakeDelegationImpossibleDELEG{Cred: c.StakeCredential, Pool: c.PoolID}}
		}
		next := state.Clone()
		next.Delegations[c.StakeCredential] = c.PoolID
		return next, nil

	default:
		return state, Failures{WrongCertificateTypeDELEG{}}
	}
}

func applyPOOL(env ledgerstate.Environment, state ledgerstate.DelegationState, c txs.Certificate) (ledgerstate.DelegationState, Failures) {
	switch c.Kind {
	case txs.PoolRegistration:
		p := c.PoolParams
		cost := p.Cost
		minCost := new(big.Int).SetUint64(env.PParams.MinPoolCost)
		if cost == nil || cost.Cmp(minCost) < 0 {
			return state, Failures{StakePoolCostTooLowPOOL{Required: minCost, Actual: cost}}
		}
		if p.MarginDenom == 0 || p.MarginNum > p.MarginDenom {
			return state, Failures{PoolMarginOutOfRangePOOL{}}
		}
		next := state.Clone()
		next.RegisteredPools[p.ColdKey] = p
		delete(next.RetiringPools, p.ColdKey) // re-registration cancels a pending retirement
		return next, nil

	case txs.PoolRetirement:
		lowerExclusive := env.Epoch
		upperInclusive := env.Epoch + env.PParams.EMax
		if c.RetirementEpoch <= lowerExclusive || c.RetirementEpoch > upperInclusive {
			return state, Failures{PoolRetirementEpochInvalidPOOL{Epoch: c.RetirementEpoch, CurrentEpoch: env.Epoch, EMax: env.PParams.EMax}}
		}
		next := state.Clone()
		next.RetiringPools[c.RetiringPoolID] = c.RetirementEpoch
		return next, nil

	default:
		return state, Failures{WrongCertificateTypeDELEG{}}
	}
}
