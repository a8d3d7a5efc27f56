package executor

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
)

// ApplyUTXO implements the UTXO transition rule: the
// nine preconditions are checked independently and every failure they
// turn up is collected, not just the first. On success it
// returns the successor UTxOState. h is the digest capability used to
// compute the transaction's id for its produced outputs.
func ApplyUTXO(env ledgerstate.Environment, state ledgerstate.UTxOState, delegState ledgerstate.DelegationState, tx *txs.Transaction, h crypto.Hasher) (ledgerstate.UTxOState, Failures) {
	body := tx.Body
	var fails Failures

	// 1. input set non-empty.
	if len(body.Inputs) == 0 {
		fails = append(fails, InputSetEmptyUTxO{})
	}

	// 2. ttl not expired.
	if env.Slot > body.TTL {
		fails = append(fails, ExpiredUTxO{TTL: body.TTL, Slot: env.Slot})
	}

	// 3. inputs exist.
	missing := missingInputs(state.UTxO, body.Inputs)
	if len(missing) > 0 {
		fails = append(fails, BadInputsUTxO{Missing: missing})
	}

	// 4. fee lower bound.
	required := new(big.Int).SetUint64(env.PParams.MinFee(tx.Size()))
	if body.Fee == nil || body.Fee.Cmp(required) < 0 {
		fails = append(fails, FeeTooSmallUTxO{Required: required, Actual: body.Fee})
	}

	// 5. value conservation. The forge field may touch non-base assets
	// only; a base-asset component would let a transaction mint fees out
	// of nothing.
	if body.Forge.CoinOf().Sign() != 0 {
		fails = append(fails, ForgedBaseAssetUTxO{})
	}
	if f := checkConservation(tx, state, delegState, env.PParams); f != nil {
		fails = append(fails, *f)
	}

	// 6/7. output minimum and positivity.
	if offenders := badOutputs(body, env.PParams); len(offenders) > 0 {
		fails = append(fails, OutputTooSmallUTxO{Offenders: offenders})
	}

	// 8. max tx size.
	size := tx.Size()
	if size > int(env.PParams.MaxTxSize) {
		fails = append(fails, MaxTxSizeUTxO{Max: int(env.PParams.MaxTxSize), Actual: size})
	}

	// 9. network id.
	for _, out := range body.Outputs {
		if out.Address.Network != env.Network {
			fails = append(fails, WrongNetwork{Expected: env.Network, Actual: out.Address.Network})
		}
	}
	for _, w := range body.Withdrawals {
		if w.Account.Network != env.Network {
			fails = append(fails, WrongNetworkWithdrawal{Expected: env.Network, Actual: w.Account.Network})
		}
	}

	if len(fails) > 0 {
		return state, fails
	}

	next := state.Clone()
	next.UTxO = next.UTxO.ExcludeByKeySet(inputSet(body.Inputs)).UnionLeftBiased(txOutsOf(tx, h))
	next.Deposited = new(big.Int).Add(next.Deposited, totalDeposits(body, env.PParams, delegState))
	next.Fees = new(big.Int).Add(next.Fees, body.Fee)
	next.PPUp = ledgerstate.UpdatedPPUP(next.PPUp, body.Update)
	return next, nil
}

func missingInputs(u utxo.UTxO, ins []utxo.TxIn) []utxo.TxIn {
	var out []utxo.TxIn
	for _, in := range ins {
		if !u.ContainsKey(in) {
			out = append(out, in)
		}
	}
	return out
}

func inputSet(ins []utxo.TxIn) map[utxo.TxIn]struct{} {
	out := make(map[utxo.TxIn]struct{}, len(ins))
	for _, in := range ins {
		out[in] = struct{}{}
	}
	return out
}

func badOutputs(body *txs.TxBody, pparams ledgerstate.PParams) []utxo.TxOut {
	var offenders []utxo.TxOut
	minUTxO := new(big.Int).SetUint64(pparams.MinUTxOValue)
	for _, out := range body.Outputs {
		if !out.Value.IsPositive() {
			offenders = append(offenders, out)
			continue
		}
		if out.Value.CoinOf().Cmp(minUTxO) < 0 {
			offenders = append(offenders, out)
		}
	}
	return offenders
}

// txOutsOf yields the UTxO produced by tx: entries keyed by
// (txid(tx.body), i) for each output at index i.
func txOutsOf(tx *txs.Transaction, h crypto.Hasher) utxo.UTxO {
	id := tx.ID(h)
	next := utxo.New()
	for i, out := range tx.Body.Outputs {
		in := utxo.TxIn{TxID: id, OutputIndex: uint32(i)}
		next, _ = next.InsertIfAbsent(in, out.ToStored())
	}
	return next
}
