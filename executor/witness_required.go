package executor

import (
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// requiredWitnesses computes the set of key hashes a transaction's
// witness set must cover.
func requiredWitnesses(tx *txs.Transaction, state ledgerstate.UTxOState) ids.ShortSet {
	body := tx.Body
	out := ids.NewShortSet(len(body.Inputs) + len(body.Withdrawals) + len(body.Certs))

	// 1. payment credentials of consumed outputs.
	for _, in := range body.Inputs {
		stored, ok := state.UTxO.Lookup(in)
		if !ok {
			continue
		}
		if stored.Address.Payment.IsKeyHash() {
			out.Add(stored.Address.Payment.Hash)
		}
	}

	// 2. staking credentials of withdrawal accounts.
	for _, w := range body.Withdrawals {
		if w.Account.Credential.IsKeyHash() {
			out.Add(w.Account.Credential.Hash)
		}
	}

	// 3. certificates requiring a vkey witness.
	for _, c := range body.Certs {
		switch c.Kind {
		case txs.StakeRegistration, txs.StakeDeregistration, txs.StakeDelegation:
			if c.StakeCredential.IsKeyHash() {
				out.Add(c.StakeCredential.Hash)
			}
		case txs.PoolRegistration:
			out.Add(c.PoolParams.ColdKey)
			for _, owner := range c.PoolParams.Owners {
				out.Add(owner)
			}
		case txs.PoolRetirement:
			out.Add(c.RetiringPoolID)
		}
	}

	// 4. protocol-parameter update: every voting genesis delegate key.
	if body.Update != nil {
		for k := range body.Update.Proposals {
			out.Add(k)
		}
	}

	return out
}
