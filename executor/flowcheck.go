package executor

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// balance sums the Value of every output reachable by ins in u,
// missing keys contributing nothing: absence surfaces as its own
// referential failure elsewhere rather than aborting the sum here.
func balance(u utxo.UTxO, ins []utxo.TxIn) value.Value {
	total := value.Zero()
	for _, in := range ins {
		out, ok := u.Lookup(in)
		if !ok {
			continue
		}
		total = total.Add(out.Decode().Value)
	}
	return total
}

func withdrawalsTotal(body *txs.TxBody) *big.Int {
	total := big.NewInt(0)
	for _, w := range body.Withdrawals {
		total.Add(total, w.Amount)
	}
	return total
}

// refunds computes the coin returned by deregistration certificates in
// body, valued at the current key deposit.
func refunds(body *txs.TxBody, pparams ledgerstate.PParams) *big.Int {
	total := big.NewInt(0)
	for _, c := range body.Certs {
		if c.Kind == txs.StakeDeregistration {
			total.Add(total, new(big.Int).SetUint64(pparams.KeyDeposit))
		}
	}
	return total
}

// totalDeposits sums keyDeposit for each stake-registration certificate
// and poolDeposit for each pool-registration certificate whose pool is
// not already in delegState.
func totalDeposits(body *txs.TxBody, pparams ledgerstate.PParams, delegState ledgerstate.DelegationState) *big.Int {
	total := big.NewInt(0)
	for _, c := range body.Certs {
		switch c.Kind {
		case txs.StakeRegistration:
			total.Add(total, new(big.Int).SetUint64(pparams.KeyDeposit))
		case txs.PoolRegistration:
			if !delegState.IsPoolRegistered(c.PoolParams.ColdKey) {
				total.Add(total, new(big.Int).SetUint64(pparams.PoolDeposit))
			}
		}
	}
	return total
}

func outputsValue(outs []utxo.TxOut) value.Value {
	total := value.Zero()
	for _, o := range outs {
		total = total.Add(o.Value)
	}
	return total
}

// checkConservation enforces value conservation: consumed must equal
// produced as multi-asset Values.
func checkConservation(tx *txs.Transaction, state ledgerstate.UTxOState, delegState ledgerstate.DelegationState, pparams ledgerstate.PParams) *ValueNotConservedUTxO {
	body := tx.Body

	consumed := balance(state.UTxO, body.Inputs).
		Add(value.OfCoin(withdrawalsTotal(body))).
		Add(value.OfCoin(refunds(body, pparams))).
		Add(body.Forge)

	produced := outputsValue(body.Outputs).
		Add(value.OfCoin(body.Fee)).
		Add(value.OfCoin(totalDeposits(body, pparams, delegState)))

	if consumed.Eq(produced) {
		return nil
	}
	return &ValueNotConservedUTxO{Consumed: consumed, Produced: produced}
}
