package config

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerworks/shelley-ledger/ledgerstate"
)

func TestLoadDefaults(t *testing.T) {
	fs := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "auto", cfg.LogHighlight)
	assert.Equal(t, ledgerstate.PParams{}, cfg.PParams)
}

func TestLoadOverridesPParams(t *testing.T) {
	fs := pflag.NewFlagSet("ledgerctl", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--min-fee-a=1",
		"--min-fee-b=1",
		"--min-utxo-value=100",
	}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.PParams.MinFeeA)
	assert.Equal(t, uint64(1), cfg.PParams.MinFeeB)
	assert.Equal(t, uint64(100), cfg.PParams.MinUTxOValue)
}

func TestMergePParamsOverridesOnlyNonZero(t *testing.T) {
	base := ledgerstate.PParams{
		MinFeeA: 1, MinFeeB: 1, MaxTxSize: 16384, MinUTxOValue: 100,
		KeyDeposit: 100, PoolDeposit: 250, MinPoolCost: 100, EMax: 18,
	}
	override := ledgerstate.PParams{MinUTxOValue: 500}

	merged := MergePParams(base, override)
	assert.Equal(t, uint64(500), merged.MinUTxOValue)
	assert.Equal(t, base.MinFeeA, merged.MinFeeA)
	assert.Equal(t, base.PoolDeposit, merged.PoolDeposit)
}
