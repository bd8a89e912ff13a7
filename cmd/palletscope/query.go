package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"palletScope/internal/model"
	"palletScope/internal/registry"
)

func runChains(_ *cobra.Command, _ []string) error {
	return printJSON(registry.Chains())
}

func runPallets(cmd *cobra.Command, _ []string) error {
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

	var pallets []model.PalletInfo
	err = withRetry(ctx, cfg.Retries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		pallets, err = service.ListPallets(ctx, endpoint)
		if err != nil {
			logger.Warn("list pallets failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return err
	}

	return printJSON(pallets)
}

func runPallet(cmd *cobra.Command, args []string) error {
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

	name := args[0]

	var found *model.PalletInfo
	err = withRetry(ctx, cfg.Retries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		found, err = service.GetPallet(ctx, endpoint, name)
		if err != nil {
			logger.Warn("get pallet failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return err
	}
	if found == nil {
		return fmt.Errorf("pallet %q not found", name)
	}

	return printJSON(found)
}

func runSearch(cmd *cobra.Command, args []string) error {
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

	var matched []model.PalletInfo
	err = withRetry(ctx, cfg.Retries, cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		matched, err = service.SearchPallets(ctx, endpoint, args[0])
		if err != nil {
			logger.Warn("search pallets failed", zap.String("endpoint", endpoint), zap.Error(err))
		}
		return err
	})
	if err != nil {
		return err
	}

	return printJSON(matched)
}

func runCalls(cmd *cobra.Command, args []string) error {
	_, logger, service, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	calls := service.ExampleCalls(args[0])
	if calls == nil {
		return fmt.Errorf("no example calls known for pallet %q", args[0])
	}

	return printJSON(calls)
}

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
