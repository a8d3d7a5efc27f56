package ledgerstate

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
)

// UTxOState is the state the UTXO rule threads through a
// transition: the live UTxO set, accumulated deposits and fees, and
// any pending protocol-parameter update proposals.
type UTxOState struct {
	UTxO      utxo.UTxO
	Deposited *big.Int
	Fees      *big.Int
	PPUp      map[ids.ShortID]txs.PParamsUpdate // genesis delegate key hash -> latest proposal
}

// NewUTxOState returns the zero UTxOState over the given initial UTxO.
func NewUTxOState(initial utxo.UTxO) UTxOState {
	return UTxOState{
		UTxO:      initial,
		Deposited: big.NewInt(0),
		Fees:      big.NewInt(0),
		PPUp:      make(map[ids.ShortID]txs.PParamsUpdate),
	}
}

// Clone returns a UTxOState sharing structure with s wherever unchanged.
func (s UTxOState) Clone() UTxOState {
	ppup := make(map[ids.ShortID]txs.PParamsUpdate, len(s.PPUp))
	for k, v := range s.PPUp {
		ppup[k] = v
	}
	return UTxOState{
		UTxO:      s.UTxO,
		Deposited: new(big.Int).Set(s.Deposited),
		Fees:      new(big.Int).Set(s.Fees),
		PPUp:      ppup,
	}
}

// UpdatedPPUP merges a transaction's optional pparam-update proposals
// into the running ppup set: each genesis delegate's latest proposal
// this epoch overwrites their previous one.
func UpdatedPPUP(ppup map[ids.ShortID]txs.PParamsUpdate, update *txs.UpdateBody) map[ids.ShortID]txs.PParamsUpdate {
	if update == nil {
		return ppup
	}
	out := make(map[ids.ShortID]txs.PParamsUpdate, len(ppup)+len(update.Proposals))
	for k, v := range ppup {
		out[k] = v
	}
	for k, v := range update.Proposals {
		out[k] = v
	}
	return out
}
