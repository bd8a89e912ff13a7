package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"palletScope/internal/config"
	"palletScope/internal/metadata"
	"palletScope/internal/pallet"
	"palletScope/internal/registry"
	"palletScope/internal/transport"
)

func main() {
	root := &cobra.Command{
		Use:          "palletscope",
		Short:        "Substrate pallet metadata explorer",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	chainsCmd := &cobra.Command{
		Use:   "chains",
		Short: "List well-known chains and their default endpoints",
		RunE:  runChains,
	}
	root.AddCommand(chainsCmd)

	palletsCmd := &cobra.Command{
		Use:   "pallets",
		Short: "List pallets for an endpoint",
		RunE:  runPallets,
	}
	addFetchFlags(palletsCmd)
	root.AddCommand(palletsCmd)

	palletCmd := &cobra.Command{
		Use:   "pallet <name>",
		Short: "Show one pallet's details by name",
		Args:  cobra.ExactArgs(1),
		RunE:  runPallet,
	}
	addFetchFlags(palletCmd)
	root.AddCommand(palletCmd)

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search pallets by name or description substring",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	addFetchFlags(searchCmd)
	root.AddCommand(searchCmd)

	callsCmd := &cobra.Command{
		Use:   "calls <pallet>",
		Short: "List example calls for a well-known pallet",
		Args:  cobra.ExactArgs(1),
		RunE:  runCalls,
	}
	root.AddCommand(callsCmd)

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the pallet inventory for an endpoint",
		RunE:  runExport,
	}
	addFetchFlags(exportCmd)
	exportCmd.Flags().String("out", "./data/pallets.jsonl", "output JSONL path")
	exportCmd.Flags().String("pg-dsn", "", "Postgres DSN (optional)")
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("endpoint", "", "node WebSocket endpoint (ws:// or wss://)")
	cmd.Flags().String("chain", "", "well-known chain name (see chains command)")
	cmd.Flags().Duration("timeout", 10*time.Second, "request timeout")
	cmd.Flags().Int("retries", 0, "retry attempts on fetch failure")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Duration("cache-ttl", 5*time.Minute, "metadata cache TTL")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

// setup loads config, builds the logger, and wires the metadata pipeline
// behind the pallet service.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, *pallet.Service, error) {
	cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	fetcher := metadata.FetcherFunc(func(ctx context.Context, endpoint string) (string, error) {
		return transport.NewSession(endpoint, cfg.Timeout, logger).Fetch(ctx)
	})
	cache := metadata.NewCache(fetcher, metadata.FallbackDecoder{}, cfg.CacheTTL, logger)
	service := pallet.NewService(cache, logger)

	return cfg, logger, service, nil
}

// resolveEndpoint picks the target endpoint from --chain (registry lookup)
// or --endpoint.
func resolveEndpoint(cfg config.Config) (string, error) {
	if cfg.Chain != "" {
		chain, ok := registry.Lookup(cfg.Chain)
		if !ok {
			return "", fmt.Errorf("unknown chain %q (see chains command)", cfg.Chain)
		}
		return chain.Endpoint, nil
	}
	if cfg.Endpoint == "" {
		return "", fmt.Errorf("either --endpoint or --chain is required")
	}
	return cfg.Endpoint, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
