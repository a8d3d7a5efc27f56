// Package executor implements the UTXO/UTXOW/DELEGS/DELPL/POOL/LEDGER
// state-transition rules as plain functions from (environment, state,
// transaction) to either a successor state or a list of structured
// failures. Rules never mutate their inputs: a rejected transaction
// leaves the pre-state untouched.
package executor

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// Failure is a structured rule-validation failure. Rules
// never panic or return a generic error for an expected validation
// outcome — every failure gets its own type so callers can
// pattern-match on it.
type Failure interface {
	error
	isFailure()
}

// Failures aggregates every independent failure a single rule
// invocation detected.
type Failures []Failure

func (fs Failures) Error() string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = f.Error()
	}
	return strings.Join(parts, "; ")
}

func (fs Failures) isFailure() {}

type failureBase struct{}

func (failureBase) isFailure() {}

// --- Structural ---

type InputSetEmptyUTxO struct{ failureBase }

func (InputSetEmptyUTxO) Error() string { return "transaction has no inputs" }

type MaxTxSizeUTxO struct {
	failureBase
	Max, Actual int
}

func (f MaxTxSizeUTxO) Error() string {
	return fmt.Sprintf("transaction size %d exceeds maximum %d", f.Actual, f.Max)
}

type ForgedBaseAssetUTxO struct{ failureBase }

func (ForgedBaseAssetUTxO) Error() string { return "forge field creates or destroys the base asset" }

type OutputTooSmallUTxO struct {
	failureBase
	Offenders []utxo.TxOut
}

func (f OutputTooSmallUTxO) Error() string {
	return fmt.Sprintf("%d output(s) below the minimum UTxO value or non-positive", len(f.Offenders))
}

// --- Temporal ---

type ExpiredUTxO struct {
	failureBase
	TTL, Slot uint64
}

func (f ExpiredUTxO) Error() string {
	return fmt.Sprintf("ttl %d expired at slot %d", f.TTL, f.Slot)
}

// --- Referential ---

type BadInputsUTxO struct {
	failureBase
	Missing []utxo.TxIn
}

func (f BadInputsUTxO) Error() string {
	return fmt.Sprintf("%d input(s) not present in the UTxO", len(f.Missing))
}

// --- Economic ---

type FeeTooSmallUTxO struct {
	failureBase
	Required, Actual *big.Int
}

func (f FeeTooSmallUTxO) Error() string {
	return fmt.Sprintf("fee %s below required minimum %s", f.Actual, f.Required)
}

type ValueNotConservedUTxO struct {
	failureBase
	Consumed, Produced value.Value
}

func (f ValueNotConservedUTxO) Error() string {
	return fmt.Sprintf("consumed value %s does not equal produced value %s", f.Consumed, f.Produced)
}

type StakePoolCostTooLowPOOL struct {
	failureBase
	Required, Actual *big.Int
}

func (f StakePoolCostTooLowPOOL) Error() string {
	return fmt.Sprintf("pool cost %s below minimum %s", f.Actual, f.Required)
}

// --- Authorization ---

type InvalidWitnessesUTXOW struct {
	failureBase
	Invalid [][]byte // offending vkeys
}

func (f InvalidWitnessesUTXOW) Error() string {
	return fmt.Sprintf("%d witness signature(s) do not verify", len(f.Invalid))
}

type MissingVKeyWitnessesUTXOW struct {
	failureBase
	Missing ids.ShortSet
}

func (f MissingVKeyWitnessesUTXOW) Error() string {
	return fmt.Sprintf("missing %d required vkey witness(es)", f.Missing.Len())
}

type MissingScriptWitnessesUTXOW struct {
	failureBase
	Missing ids.ShortSet
}

func (f MissingScriptWitnessesUTXOW) Error() string {
	return fmt.Sprintf("missing %d required script witness(es)", f.Missing.Len())
}

type ExtraneousScriptWitnessesUTXOW struct {
	failureBase
	Extra ids.ShortSet
}

func (f ExtraneousScriptWitnessesUTXOW) Error() string {
	return fmt.Sprintf("%d extraneous script witness(es) provided", f.Extra.Len())
}

type ScriptWitnessNotValidatingUTXOW struct {
	failureBase
	Hash ids.ShortID
}

func (f ScriptWitnessNotValidatingUTXOW) Error() string {
	return fmt.Sprintf("script %s did not validate", f.Hash)
}

// --- Metadata ---

type MissingTxMetadata struct{ failureBase }

func (MissingTxMetadata) Error() string { return "body declares a metadata hash but no metadata was supplied" }

type MissingTxBodyMetadataHash struct{ failureBase }

func (MissingTxBodyMetadataHash) Error() string {
	return "metadata was supplied but the body declares no metadata hash"
}

type ConflictingMetadataHash struct{ failureBase }

func (ConflictingMetadataHash) Error() string { return "metadata does not hash to the body's declared hash" }

// --- Network ---

type WrongNetwork struct {
	failureBase
	Expected, Actual address.NetworkID
}

func (f WrongNetwork) Error() string {
	return fmt.Sprintf("output targets network %d, expected %d", f.Actual, f.Expected)
}

type WrongNetworkWithdrawal struct {
	failureBase
	Expected, Actual address.NetworkID
}

func (f WrongNetworkWithdrawal) Error() string {
	return fmt.Sprintf("withdrawal targets network %d, expected %d", f.Actual, f.Expected)
}

// --- Delegation ---

type RegistrationNeedsKeyHashDELEG struct {
	failureBase
	Cred address.Credential
}

func (RegistrationNeedsKeyHashDELEG) Error() string {
	return "stake registration credential must be a key hash"
}

type StakeKeyAlreadyRegisteredDELEG struct {
	failureBase
	Cred address.Credential
}

func (StakeKeyAlreadyRegisteredDELEG) Error() string { return "stake credential already registered" }

type StakeKeyNotRegisteredDELEG struct {
	failureBase
	Cred address.Credential
}

func (StakeKeyNotRegisteredDELEG) Error() string { return "stake credential not registered" }

type StakeDelegationImpossibleDELEG struct {
	failureBase
	Cred address.Credential
	Pool ids.ShortID
}

func (StakeDelegationImpossibleDELEG) Error() string {
	return "stake credential or target pool not registered"
}

type WrongCertificateTypeDELEG struct{ failureBase }

func (WrongCertificateTypeDELEG) Error() string { return "unrecognized certificate kind" }

type WithdrawalsNotInRewardsDELEGS struct {
	failureBase
	Diff map[address.Credential]*big.Int
}

func (f WithdrawalsNotInRewardsDELEGS) Error() string {
	return fmt.Sprintf("%d withdrawal(s) do not match current reward balances", len(f.Diff))
}

type RewardAccountNotEmptyDELEG struct {
	failureBase
	Cred    address.Credential
	Balance *big.Int
}

func (f RewardAccountNotEmptyDELEG) Error() string {
	return fmt.Sprintf("reward account has non-zero balance %s", f.Balance)
}

type PoolRetirementEpochInvalidPOOL struct {
	failureBase
	Epoch, CurrentEpoch, EMax uint64
}

func (f PoolRetirementEpochInvalidPOOL) Error() string {
	return fmt.Sprintf("retirement epoch %d outside (%d, %d]", f.Epoch, f.CurrentEpoch, f.CurrentEpoch+f.EMax)
}

type PoolMarginOutOfRangePOOL struct{ failureBase }

func (PoolMarginOutOfRangePOOL) Error() string { return "pool margin outside [0,1]" }

// --- Wrapping (outer rules wrap inner rule failures) ---

type UtxoFailure struct {
	failureBase
	Inner Failures
}

func (f UtxoFailure) Error() string { return "UTXO: " + f.Inner.Error() }

type UtxowFailure struct {
	failureBase
	Inner Failures
}

func (f UtxowFailure) Error() string { return "UTXOW: " + f.Inner.Error() }

type DelegsFailure struct {
	failureBase
	Inner Failures
}

func (f DelegsFailure) Error() string { return "DELEGS: " + f.Inner.Error() }

type DelplFailure struct {
	failureBase
	Inner Failures
}

func (f DelplFailure) Error() string { return "DELPL: " + f.Inner.Error() }

type PoolFailure struct {
	failureBase
	Inner Failures
}

func (f PoolFailure) Error() string { return "POOL: " + f.Inner.Error() }
