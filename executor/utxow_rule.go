package executor

import (
	"golang.org/x/sync/errgroup"

	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/scripts"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// ApplyUTXOW implements the UTXOW rule: witness and
// script-hash checks layered on top of UTXO. factory reconstructs
// public keys from raw witness bytes; h computes the body hash
// witnesses sign over and the transaction id UTXO needs for txouts.
func ApplyUTXOW(env ledgerstate.Environment, state ledgerstate.UTxOState, delegState ledgerstate.DelegationState, tx *txs.Transaction, h crypto.Hasher, factory crypto.Factory) (ledgerstate.UTxOState, Failures) {
	var fails Failures

	bodyHash := tx.BodyDigest(h)

	// 1. signatures valid, checked concurrently since each witness's
	// verification is independent of every other.
	allWitnesses := append(append([]txs.VKeyWitness{}, tx.Witnesses.VKeyWitnesses...), bootstrapAsVKey(tx.Witnesses.BootstrapWitnesses)...)
	bad := make([]bool, len(allWitnesses))
	var g errgroup.Group
	for i, w := range allWitnesses {
		i, w := i, w
		g.Go(func() error {
			ok, err := w.Verify(factory, bodyHash)
			if err != nil || !ok {
				bad[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()
	var invalid [][]byte
	for i, w := range allWitnesses {
		if bad[i] {
			invalid = append(invalid, w.VKey)
		}
	}
	if len(invalid) > 0 {
		fails = append(fails, InvalidWitnessesUTXOW{Invalid: invalid})
	}

	// 2. required vkey witnesses present.
	required := requiredWitnesses(tx, state)
	provided, err := tx.Witnesses.ProvidedKeyHashes(factory)
	if err != nil {
		provided = ids.NewShortSet(0)
	}
	if missing := setDifference(required, provided); missing.Len() > 0 {
		fails = append(fails, MissingVKeyWitnessesUTXOW{Missing: missing})
	}

	// 3. metadata hash consistency.
	if f := checkMetadataConsistency(tx, h); f != nil {
		fails = append(fails, f)
	}

	// 4. script witness sufficiency (equality, not subset).
	needed := scriptsNeeded(tx, state)
	have := ids.NewShortSet(len(tx.Witnesses.Scripts))
	for hash := range tx.Witnesses.Scripts {
		have.Add(hash)
	}
	if missing := setDifference(needed, have); missing.Len() > 0 {
		fails = append(fails, MissingScriptWitnessesUTXOW{Missing: missing})
	}
	if extra := setDifference(have, needed); extra.Len() > 0 {
		fails = append(fails, ExtraneousScriptWitnessesUTXOW{Extra: extra})
	}

	// 5. scripts validate.
	ctx := scripts.Context{ProvidedKeyHashes: provided, CurrentSlot: env.Slot}
	for hash, s := range tx.Witnesses.Scripts {
		if err := s.Evaluate(ctx); err != nil {
			fails = append(fails, ScriptWitnessNotValidatingUTXOW{Hash: hash})
		}
	}

	if len(fails) > 0 {
		return state, fails
	}

	next, utxoFails := ApplyUTXO(env, state, delegState, tx, h)
	if len(utxoFails) > 0 {
		return state, Failures{UtxoFailure{Inner: utxoFails}}
	}
	return next, nil
}

func bootstrapAsVKey(bws []txs.BootstrapWitness) []txs.VKeyWitness {
	out := make([]txs.VKeyWitness, len(bws))
	for i, bw := range bws {
		out[i] = txs.VKeyWitness{VKey: bw.VKey, Sig: bw.Sig}
	}
	return out
}

func setDifference(a, b ids.ShortSet) ids.ShortSet {
	out := ids.NewShortSet(a.Len())
	for _, id := range a.List() {
		if !b.Contains(id) {
			out.Add(id)
		}
	}
	return out
}

func checkMetadataConsistency(tx *txs.Transaction, h crypto.Hasher) Failure {
	switch {
	case tx.Body.MetadataHash != nil && tx.Metadata == nil:
		return MissingTxMetadata{}
	case tx.Body.MetadataHash == nil && tx.Metadata != nil:
		return MissingTxBodyMetadataHash{}
	case tx.Body.MetadataHash != nil && tx.Metadata != nil:
		got := h.Hash(tx.Metadata)
		if got != *tx.Body.MetadataHash {
			return ConflictingMetadataHash{}
		}
	}
	return nil
}
