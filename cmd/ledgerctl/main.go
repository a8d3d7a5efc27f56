// Command ledgerctl is a thin cobra harness around applyLEDGER:
// bootstrap a genesis, apply one transaction, print the result.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/ledgerworks/shelley-ledger/address"
	"github.com/ledgerworks/shelley-ledger/cmd/ledgerctl/txspec"
	"github.com/ledgerworks/shelley-ledger/crypto"
	"github.com/ledgerworks/shelley-ledger/executor"
	"github.com/ledgerworks/shelley-ledger/genesis"
	"github.com/ledgerworks/shelley-ledger/internal/config"
	"github.com/ledgerworks/shelley-ledger/internal/logging"
	"github.com/ledgerworks/shelley-ledger/ledgerstate"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Bootstrap and exercise a Shelley-era UTxO ledger state",
	}
	config.BindFlags(root.PersistentFlags())

	root.AddCommand(newApplyCmd())
	return root
}

func newApplyCmd() *cobra.Command {
	var txFile string
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a single transaction to the genesis state and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}

			highlight, err := logging.ToHighlight(cfg.LogHighlight, os.Stdout.Fd())
			if err != nil {
				return err
			}
			logCfg := logging.DefaultConfig()
			if err := logCfg.Level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
				return fmt.Errorf("ledgerctl: log level: %w", err)
			}
			logCfg.Highlight = highlight
			zapLogger, err := logging.New(logCfg)
			if err != nil {
				return err
			}
			defer zapLogger.Sync()
			logger := zapLogger.Sugar()

			runID := uuid.New()
			logger.Infow("starting run", "runID", runID.String())

			genesisBytes, err := os.ReadFile(cfg.GenesisFile)
			if err != nil {
				return fmt.Errorf("ledgerctl: read genesis file: %w", err)
			}
			spec, err := genesis.Parse(genesisBytes)
			if err != nil {
				return err
			}
			pparams := config.MergePParams(spec.PParams, cfg.PParams)

			utxoState, deleState, err := genesis.Bootstrap(spec)
			if err != nil {
				return err
			}

			txBytes, err := os.ReadFile(txFile)
			if err != nil {
				return fmt.Errorf("ledgerctl: read tx file: %w", err)
			}
			txReq, err := txspec.Parse(txBytes)
			if err != nil {
				return err
			}
			tx, err := txReq.Build()
			if err != nil {
				return err
			}
			if err := tx.Body.WellFormed(); err != nil {
				return fmt.Errorf("ledgerctl: malformed transaction: %w", err)
			}

			hasher := crypto.Blake2bHasher{}
			factory := crypto.SECP256K1RFactory{}
			for _, seed := range txReq.SignWith {
				sk, err := factory.ToPrivateKey(seed)
				if err != nil {
					return fmt.Errorf("ledgerctl: signing key: %w", err)
				}
				if err := tx.Sign(hasher, sk); err != nil {
					return err
				}
			}

			env := ledgerstate.Environment{
				Slot:    txReq.Slot,
				TxIndex: 0,
				Epoch:   txReq.Epoch,
				Network: address.NetworkID(spec.NetworkID),
				PParams: pparams,
			}
			state := executor.LedgerState{UTxO: utxoState, Dele: deleState}

			metrics, err := executor.NewMetrics("ledgerctl", prometheus.NewRegistry())
			if err != nil {
				return err
			}
			next, fails := executor.ApplyLEDGER(env, state, tx, hasher, factory, metrics)
			if len(fails) > 0 {
				logger.Warnw("transaction rejected", "failures", fails.Error())
				fmt.Println(fails.Error())
				os.Exit(2)
			}

			txID := tx.ID(hasher)
			logger.Infow("transaction accepted", "txid", txID.String(), "runID", runID.String())
			fmt.Printf("accepted %s: utxo size=%d deposited=%s fees=%s\n",
				txID.String(), next.UTxO.UTxO.Size(), next.UTxO.Deposited.String(), next.UTxO.Fees.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&txFile, "tx-file", "", "path to the transaction-request YAML file")
	return cmd
}
