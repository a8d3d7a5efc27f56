package executor

import (
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// policyToScriptHash narrows a 32-byte minting-policy id down to the
// ledger's 20-byte credential-hash width, the same truncation
// scripts.Hash applies to its own script digests: a forging policy and
// a native script are both "the hash that must be discharged by a
// script witness", so they share one hash space.
func policyToScriptHash(policy ids.ID) ids.ShortID {
	var out ids.ShortID
	copy(out[:], policy[:ids.ShortIDLen])
	return out
}

// scriptsNeeded computes the set of script hashes a transaction's
// witness set must cover exactly.
func scriptsNeeded(tx *txs.Transaction, state ledgerstate.UTxOState) ids.ShortSet {
	body := tx.Body
	out := ids.NewShortSet(len(body.Inputs) + len(body.Withdrawals) + len(body.Certs))

	// 1. payment-credential script hashes of consumed outputs.
	for _, in := range body.Inputs {
		stored, ok := state.UTxO.Lookup(in)
		if !ok {
			continue
		}
		if stored.Address.Payment.IsScriptHash() {
			out.Add(stored.Address.Payment.Hash)
		}
	}

	// 2. staking-credential script hashes of withdrawal accounts.
	for _, w := range body.Withdrawals {
		if w.Account.Credential.IsScriptHash() {
			out.Add(w.Account.Credential.Hash)
		}
	}

	// 3. script-hash credentials on deregistration/delegation certs.
	for _, c := range body.Certs {
		if c.Kind == txs.StakeDeregistration || c.Kind == txs.StakeDelegation {
			if c.StakeCredential.IsScriptHash() {
				out.Add(c.StakeCredential.Hash)
			}
		}
	}

	// 4. policy hashes of every non-base forged asset.
	for assetID := range body.Forge {
		if assetID.IsBase() {
			continue
		}
		out.Add(policyToScriptHash(assetID.Policy))
	}

	return out
}
