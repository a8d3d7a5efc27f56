// Package txspec decodes the YAML transaction-request format the
// ledgerctl CLI accepts: a human-writable description of a TxBody
// (inputs by txid/index, outputs by address/amount, fee, ttl) that
// txspec.Build turns into an unsigned txs.Transaction ready for
// signing and application. It is intentionally not the canonical
// binary wire format (txs/codec.go) — that format is for hashing and
// consensus, this one is for a human typing a scenario file.
package txspec

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/ids"
	"github.com/ledgerworks/shelley-ledger/txs"
	"github.com/ledgerworks/shelley-ledger/utxo"
	"github.com/ledgerworks/shelley-ledger/value"
)

// InputSpec references a prior output by its base58-encoded TxId (the
// same encoding ids.ID.String produces) and output index.
type InputSpec struct {
	TxID  string `yaml:"txid"`
	Index uint32 `yaml:"index"`
}

// OutputSpec describes a new output in bech32 address + base-asset amount form.
type OutputSpec struct {
	Address string `yaml:"address"`
	Amount  uint64 `yaml:"amount"`
}

// Request is the parsed shape of a transaction-request YAML file.
type Request struct {
	Inputs   []InputSpec  `yaml:"inputs"`
	Outputs  []OutputSpec `yaml:"outputs"`
	Fee      uint64       `yaml:"fee"`
	TTL      uint64       `yaml:"ttl"`
	Slot     uint64       `yaml:"slot"`
	Epoch    uint64       `yaml:"epoch"`
	SignWith []hexBytes   `yaml:"signWith"` // raw 32-byte secp256k1 private key seeds, hex-encoded
}

// hexBytes decodes a YAML string scalar as hex.
type hexBytes []byte

func (h *hexBytes) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("txspec: signWith: %w", err)
	}
	*h = b
	return nil
}

// Parse decodes a transaction-request YAML document.
func Parse(b []byte) (Request, error) {
	var r Request
	if err := yaml.Unmarshal(b, &r); err != nil {
		return Request{}, fmt.Errorf("txspec: parse: %w", err)
	}
	return r, nil
}

// Build turns r into an unsigned Transaction: a TxBody with no
// certificates, withdrawals, forge, or update, ready for
// Transaction.Sign to attach witnesses.
func (r Request) Build() (*txs.Transaction, error) {
	body := &txs.TxBody{
		Fee:   new(big.Int).SetUint64(r.Fee),
		TTL:   r.TTL,
		Forge: value.Zero(),
	}
	for i, in := range r.Inputs {
		txID, err := ids.FromString(in.TxID)
		if err != nil {
			return nil, fmt.Errorf("txspec: input %d: txid: %w", i, err)
		}
		body.Inputs = append(body.Inputs, utxo.TxIn{TxID: txID, OutputIndex: in.Index})
	}
	for i, out := range r.Outputs {
		addr, err := address.Decode(out.Address)
		if err != nil {
			return nil, fmt.Errorf("txspec: output %d: %w", i, err)
		}
		body.Outputs = append(body.Outputs, utxo.TxOut{
			Address: addr,
			Value:   value.OfCoin(new(big.Int).SetUint64(out.Amount)),
		})
	}
	return &txs.Transaction{Body: body}, nil
}
