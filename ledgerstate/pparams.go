// Package ledgerstate holds the persisted ledger state: UTxO state,
// delegation state, protocol parameters, and the per-transition
// environment. None of it is mutated in place — every update method
// returns a new value, mirroring utxo.UTxO's persistent-map discipline.
package ledgerstate

// PParams is the chain-wide protocol parameter set: fee coefficients,
// deposits, size limits, minimum UTxO value, epoch bounds.
type PParams struct {
	MinFeeA      uint64
	MinFeeB      uint64
	MaxTxSize    uint64
	MinUTxOValue uint64
	KeyDeposit   uint64
	PoolDeposit  uint64
	MinPoolCost  uint64
	// EMax bounds how far in the future a pool retirement epoch may be
	// requested, relative to the current epoch.
	EMax uint64
}

// MinFee computes the affine minimum fee for a transaction of the
// given serialized size: `a·size(tx) + b`.
func (p PParams) MinFee(size int) uint64 {
	return p.MinFeeA*uint64(size) + p.MinFeeB
}
