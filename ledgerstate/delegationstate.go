package ledgerstate

import (
	"math/big"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/txs"
)

// DelegationState is the delegation-layer state the DELEGS/DELPL/POOL
// rules thread through a transition: which stake
// credentials are registered, their current pool delegation and
// reward balance, and the registered/retiring pool sets.
type DelegationState struct {
	RegisteredStake map[address.Credential]struct{}
	Delegations     map[address.Credential]ids.ShortID      // credential -> delegated pool id
	RewardAccounts  map[address.Credential]*big.Int          // credential -> reward balance
	RegisteredPools map[ids.ShortID]txs.PoolParams           // pool id (cold key hash) -> params
	RetiringPools   map[ids.ShortID]uint64                   // pool id -> retirement epoch
}

// NewDelegationState returns the empty DelegationState.
func NewDelegationState() DelegationState {
	return DelegationState{
		RegisteredStake: make(map[address.Credential]struct{}),
		Delegations:     make(map[address.Credential]ids.ShortID),
		RewardAccounts:  make(map[address.Credential]*big.Int),
		RegisteredPools: make(map[ids.ShortID]txs.PoolParams),
		RetiringPools:   make(map[ids.ShortID]uint64),
	}
}

// Clone returns a shallow-independent copy: top-level maps are
// duplicated so mutating the clone never perturbs s, matching every
// other state type's "derive, never mutate" discipline.
func (s DelegationState) Clone() DelegationState {
	out := DelegationState{
		RegisteredStake: make(map[address.Credential]struct{}, len(s.RegisteredStake)),
		Delegations:     make(map[address.Credential]ids.ShortID, len(s.Delegations)),
		RewardAccounts:  make(map[address.Credential]*big.Int, len(s.RewardAccounts)),
		RegisteredPools: make(map[ids.ShortID]txs.PoolParams, len(s.RegisteredPools)),
		RetiringPools:   make(map[ids.ShortID]uint64, len(s.RetiringPools)),
	}
	for k, v := range s.RegisteredStake {
		out.RegisteredStake[k] = v
	}
	for k, v := range s.Delegations {
		out.Delegations[k] = v
	}
	for k, v := range s.RewardAccounts {
		out.RewardAccounts[k] = new(big.Int).Set(v)
	}
	for k, v := range s.RegisteredPools {
		out.RegisteredPools[k] = v
	}
	for k, v := range s.RetiringPools {
		out.RetiringPools[k] = v
	}
	return out
}

// IsRegistered reports whether cred currently has a stake registration.
func (s DelegationState) IsRegistered(cred address.Credential) bool {
	_, ok := s.RegisteredStake[cred]
	return ok
}

// RewardBalance returns cred's current reward balance, zero if absent.
func (s DelegationState) RewardBalance(cred address.Credential) *big.Int {
	if bal, ok := s.RewardAccounts[cred]; ok {
		return bal
	}
	return big.NewInt(0)
}

// IsPoolRegistered reports whether pool has a current registration.
func (s DelegationState) IsPoolRegistered(pool ids.ShortID) bool {
	_, ok := s.RegisteredPools[pool]
	return ok
}
