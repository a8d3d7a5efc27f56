// Package genesis produces the initial ledger state: protocol
// parameters, an initial UTxO funding a fixed set of addresses, and a
// delegation state pre-registering a fixed set of stake pools. It is
// the one component allowed to construct a UTxO/DelegationState/PParams
// triple out of thin air, before anything else can call applyLEDGER.
package genesis

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// Hardcoded network IDs: mainnet, testnet, and a local development
// network.
const (
	MainnetID uint8 = 0
	TestnetID uint8 = 1
	LocalID   uint8 = 2

	MainnetName = "mainnet"
	TestnetName = "testnet"
	LocalName   = "local"
)

var (
	networkIDToName = map[uint8]string{
		MainnetID: MainnetName,
		TestnetID: TestnetName,
		LocalID:   LocalName,
	}
	networkNameToID = map[string]uint8{
		MainnetName: MainnetID,
		TestnetName: TestnetID,
		LocalName:   LocalID,
	}
)

// NetworkName returns a human-readable name for networkID, or a
// synthetic "network-N" name for an unrecognized id.
func NetworkName(networkID uint8) string {
	if name, ok := networkIDToName[networkID]; ok {
		return name
	}
	return fmt.Sprintf("network-%d", networkID)
}

// NetworkID resolves a network name (or decimal id) to its numeric id.
func NetworkID(name string) (uint8, error) {
	name = strings.ToLower(name)
	if id, ok := networkNameToID[name]; ok {
		return id, nil
	}
	n, err := strconv.ParseUint(name, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("genesis: unknown network name %q", name)
	}
	return uint8(n), nil
}

// AllocationSpec is one genesis funding entry: a bech32 address and
// its initial base-asset balance.
type AllocationSpec struct {
	Address string `yaml:"address"`
	Balance uint64 `yaml:"balance"`
}

// PoolSpec is one genesis stake-pool registration, pre-seeding
// DelegationState.RegisteredPools with an initial validator set.
type PoolSpec struct {
	ColdKey       string   `yaml:"coldKey"`
	VRFKeyHash    string   `yaml:"vrfKeyHash"`
	Cost          uint64   `yaml:"cost"`
	MarginNum     uint64   `yaml:"marginNum"`
	MarginDenom   uint64   `yaml:"marginDenom"`
	RewardAccount string   `yaml:"rewardAccount"` // base58 key hash of the reward-account credential
	Owners        []string `yaml:"owners"`
}

// Spec is the parsed shape of a genesis YAML file.
type Spec struct {
	NetworkID   uint8               `yaml:"networkId"`
	GenesisTime time.Time           `yaml:"genesisTime"`
	PParams     ledgerstate.PParams `yaml:"pparams"`
	Allocations []AllocationSpec    `yaml:"allocations"`
	Pools       []PoolSpec          `yaml:"pools"`
}

// Parse decodes a genesis YAML document.
func Parse(b []byte) (Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Spec{}, fmt.Errorf("genesis: parse: %w", err)
	}
	return s, nil
}

// WriteFile atomically writes spec's YAML encoding to path, using
// renameio so a crash mid-write never leaves a corrupt genesis file
// behind — the file either has its old contents or its new ones, never
// a partial write.
func WriteFile(path string, spec Spec) error {
	b, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("genesis: marshal: %w", err)
	}
	return renameio.WriteFile(path, b, 0o644)
}

// GenesisTxID is the fixed, reserved transaction id whose "outputs"
// are the genesis allocations: genesis UTxO entries exist by fiat, not
// as the output of any applied transaction, but every UTxO entry must
// still be keyed by (TxId, index), so genesis manufactures one
// canonical all-zero-but-one id for the purpose.
var GenesisTxID = ids.ID{0xFF}

// Bootstrap builds the initial LedgerState (UTxOState + DelegationState)
// described by spec; the protocol parameters stay in spec.PParams. It is
// the one place in the repository allowed to construct a UTxO out of
// thin air.
func Bootstrap(spec Spec) (ledgerstate.UTxOState, ledgerstate.DelegationState, error) {
	u := utxo.New()
	for i, alloc := range spec.Allocations {
		addr, err := address.Decode(alloc.Address)
		if err != nil {
			return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: allocation %d: %w", i, err)
		}
		out := utxo.TxOut{
			Address: addr,
			Value:   value.OfCoin(new(big.Int).SetUint64(alloc.Balance)),
		}.ToStored()
		in := utxo.TxIn{TxID: GenesisTxID, OutputIndex: uint32(i)}
		next, ok := u.InsertIfAbsent(in, out)
		if !ok {
			return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: duplicate allocation index %d", i)
		}
		u = next
	}

	dele := ledgerstate.NewDelegationState()
	for i, p := range spec.Pools {
		cold, err := ids.ShortFromString(p.ColdKey)
		if err != nil {
			return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: pool %d: coldKey: %w", i, err)
		}
		vrf, err := ids.ShortFromString(p.VRFKeyHash)
		if err != nil {
			return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: pool %d: vrfKeyHash: %w", i, err)
		}
		rewardHash, err := ids.ShortFromString(p.RewardAccount)
		if err != nil {
			return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: pool %d: rewardAccount: %w", i, err)
		}
		owners := make([]ids.ShortID, len(p.Owners))
		for j, o := range p.Owners {
			ownerHash, err := ids.ShortFromString(o)
			if err != nil {
				return ledgerstate.UTxOState{}, ledgerstate.DelegationState{}, fmt.Errorf("genesis: pool %d: owner %d: %w", i, j, err)
			}
			owners[j] = ownerHash
		}
		dele.RegisteredPools[cold] = txs.PoolParams{
			ColdKey:       cold,
			VRFKeyHash:    vrf,
			Cost:          new(big.Int).SetUint64(p.Cost),
			MarginNum:     p.MarginNum,
			MarginDenom:   p.MarginDenom,
			RewardAccount: address.NewKeyHashCredential(rewardHash),
			Owners:        owners,
		}
	}

	return ledgerstate.NewUTxOState(u), dele, nil
}
