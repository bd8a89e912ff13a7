package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palletScope/internal/model"
	"palletScope/internal/storage"
	"palletScope/internal/storage/postgres"
)

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, logger, service, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	endpoint, err := resolveEndpoint(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var info *model.ChainInfo
	err = withRetry(ctx, cfg.Retries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		info, err = service.ChainInfo(ctx, endpoint)
		if err != nil {
			logger.Warn("metadata fetch failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return err
	}

	exportedAt := time.Now().UTC().Format(time.RFC3339)
	records := make([]model.PalletRecord, 0, len(info.Pallets))
	for _, p := range info.Pallets {
		records = append(records, model.PalletRecord{
			Chain:        info.Name,
			ChainVersion: info.Version,
			Endpoint:     endpoint,
			Name:         p.Name,
			Index:        p.Index,
			Description:  p.Description,
			StorageCount: len(p.Storage),
			CallCount:    len(p.Calls),
			EventCount:   len(p.Events),
			ErrorCount:   len(p.Errors),
			ExportedAt:   exportedAt,
		})
	}

	var sink storage.Storage = storage.NewJsonlStorage(cfg.Out)
	if err := sink.PutPalletBatch(records); err != nil {
		return err
	}
	logger.Info("pallets exported",
		zap.String("endpoint", endpoint),
		zap.Int("pallets", len(records)),
		zap.String("out", cfg.Out),
	)

	if cfg.PgDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.UpsertPallets(ctx, records); err != nil {
			return err
		}
		logger.Info("pallets upserted", zap.Int("pallets", len(records)))
	}

	return nil
}
