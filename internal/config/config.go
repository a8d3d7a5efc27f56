// Package config loads the ledger core's runtime configuration: pflag
// flags bound into a viper.Viper, decoded into a typed struct with
// mapstructure. It carries no networking, staking, or consensus
// fields — those belong to a node process this repo doesn't build.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ledgerworks/shelley-ledger/ledgerstate"
)

// Config is the decoded runtime configuration for a ledgerctl
// invocation: which genesis file to bootstrap from, protocol parameter
// overrides, and logging/snapshot options.
type Config struct {
	NetworkID    uint8  `mapstructure:"network-id"`
	GenesisFile  string `mapstructure:"genesis-file"`
	SnapshotDir  string `mapstructure:"snapshot-dir"`
	LogLevel     string `mapstructure:"log-level"`
	LogHighlight string `mapstructure:"log-highlight"`

	// PParams overrides; zero fields fall back to the genesis file's
	// values (see internal/config.MergePParams).
	PParams ledgerstate.PParams `mapstructure:"pparams"`
}

// BindFlags registers config's CLI surface onto fs, one flag per
// field.
func BindFlags(fs *pflag.FlagSet) {
	fs.Uint8("network-id", 0, "network discriminant this node validates against")
	fs.String("genesis-file", "", "path to the genesis YAML file")
	fs.String("snapshot-dir", "", "directory for canonical state snapshots")
	fs.String("log-level", "info", "log level: debug|info|warn|error")
	fs.String("log-highlight", "auto", "log highlight mode: plain|colors|auto")

	fs.Uint64("min-fee-a", 0, "protocol parameter override: minfee coefficient a")
	fs.Uint64("min-fee-b", 0, "protocol parameter override: minfee constant b")
	fs.Uint64("max-tx-size", 0, "protocol parameter override: maximum transaction size")
	fs.Uint64("min-utxo-value", 0, "protocol parameter override: minimum UTxO output value")
	fs.Uint64("key-deposit", 0, "protocol parameter override: stake registration deposit")
	fs.Uint64("pool-deposit", 0, "protocol parameter override: pool registration deposit")
	fs.Uint64("min-pool-cost", 0, "protocol parameter override: minimum declared pool cost")
	fs.Uint64("e-max", 0, "protocol parameter override: max pool retirement epoch horizon")
}

// Load builds a viper.Viper bound to fs and the process environment,
// and decodes it into a Config via mapstructure.
func Load(fs *pflag.FlagSet) (Config, error) {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("config: bind flags: %w", err)
	}
	v.SetEnvPrefix("LEDGERCTL")
	v.AutomaticEnv()

	raw := map[string]interface{}{
		"network-id":    v.GetUint32("network-id"),
		"genesis-file":  v.GetString("genesis-file"),
		"snapshot-dir":  v.GetString("snapshot-dir"),
		"log-level":     v.GetString("log-level"),
		"log-highlight": v.GetString("log-highlight"),
		"pparams": map[string]interface{}{
			"MinFeeA":      v.GetUint64("min-fee-a"),
			"MinFeeB":      v.GetUint64("min-fee-b"),
			"MaxTxSize":    v.GetUint64("max-tx-size"),
			"MinUTxOValue": v.GetUint64("min-utxo-value"),
			"KeyDeposit":   v.GetUint64("key-deposit"),
			"PoolDeposit":  v.GetUint64("pool-deposit"),
			"MinPoolCost":  v.GetUint64("min-pool-cost"),
			"EMax":         v.GetUint64("e-max"),
		},
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Config{}, fmt.Errorf("config: build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// MergePParams overlays any non-zero override field in cfg.PParams onto
// base, returning the effective parameter set. Zero-valued fields in
// cfg.PParams are treated as "not overridden", matching the CLI's
// default-flag-value-means-unset convention.
func MergePParams(base ledgerstate.PParams, override ledgerstate.PParams) ledgerstate.PParams {
	out := base
	if override.MinFeeA != 0 {
		out.MinFeeA = override.MinFeeA
	}
	if override.MinFeeB != 0 {
		out.MinFeeB = override.MinFeeB
	}
	if override.MaxTxSize != 0 {
		out.MaxTxSize = override.MaxTxSize
	}
	if override.MinUTxOValue != 0 {
		out.MinUTxOValue = override.MinUTxOValue
	}
	if override.KeyDeposit != 0 {
		out.KeyDeposit = override.KeyDeposit
	}
	if override.PoolDeposit != 0 {
		out.PoolDeposit = override.PoolDeposit
	}
	if override.MinPoolCost != 0 {
		out.MinPoolCost = override.MinPoolCost
	}
	if override.EMax != 0 {
		out.EMax = override.EMax
	}
	return out
}
