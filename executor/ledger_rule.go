package executor

import (
	"time"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// LedgerState is the pair of persisted states a single LEDGER
// invocation threads through.
type LedgerState struct {
	UTxO ledgerstate.UTxOState
	Dele ledgerstate.DelegationState
}

// ApplyLEDGER implements the LEDGER composite rule:
// sequentially applies UTXOW (which internally invokes UTXO) and then
// DELEGS, threading state. Any failure aborts the transition and
// returns the pre-state unchanged.
func ApplyLEDGER(env ledgerstate.Environment, state LedgerState, tx *txs.Transaction, h crypto.Hasher, factory crypto.Factory, metrics *Metrics) (LedgerState, Failures) {
	start := time.Now()
	defer func() { metrics.observeLatency(time.Since(start).Seconds()) }()

	// ApplyUTXOW already wraps any failure it delegates to UTXO as a
	// single UtxoFailure; LEDGER in turn wraps whatever UTXOW reports.
	nextUTxO, utxowFails := ApplyUTXOW(env, state.UTxO, state.Dele, tx, h, factory)
	if len(utxowFails) > 0 {
		metrics.observeRejected("UTXOW")
		return state, Failures{UtxowFailure{Inner: utxowFails}}
	}

	// Likewise ApplyDELEGS wraps per-certificate failures as DelplFailure
	// (which itself wraps PoolFailure for pool certs).
	nextDele, delegFails := ApplyDELEGS(env, state.Dele, tx.Body)
	if len(delegFails) > 0 {
		metrics.observeRejected("DELEGS")
		return state, Failures{DelegsFailure{Inner: delegFails}}
	}

	metrics.observeAccepted()
	return LedgerState{UTxO: nextUTxO, Dele: nextDele}, nil
}
