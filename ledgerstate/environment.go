package ledgerstate

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/address"
)

// AccountState is the chain-level treasury/reserves pot. The core
// never mutates it directly — reward-pipeline accounting that draws
// from it is out of scope — it is carried through as part of the
// environment contract for rules that need to read it, even though
// none currently do.
type AccountState struct {
	Treasury *big.Int
	Reserves *big.Int
}

// Environment is the read-only context a single transition is
// evaluated against: the slot, the transaction's index
// within its containing block, the active protocol parameters, the
// current epoch (for pool-retirement bounds), the chain's network tag,
// and account state.
type Environment struct {
	Slot     uint64
	TxIndex  uint32
	Epoch    uint64
	Network  address.NetworkID
	PParams  PParams
	Accounts AccountState
}
