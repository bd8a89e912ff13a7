// Package postgres provides a Postgres sink for exported pallet records.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"palletScope/internal/model"
)

// Store provides Postgres persistence for pallet exports.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// UpsertPallets inserts or updates pallet rows keyed by endpoint and name.
func (s *Store) UpsertPallets(ctx context.Context, records []model.PalletRecord) error {
	if len(records) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, record := range records {
		batch.Queue(`
			INSERT INTO pallets (
				endpoint, chain, chain_version, name, pallet_index, description,
				storage_count, call_count, event_count, error_count, exported_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
			ON CONFLICT (endpoint, name)
			DO UPDATE SET
				chain = EXCLUDED.chain,
				chain_version = EXCLUDED.chain_version,
				pallet_index = EXCLUDED.pallet_index,
				description = EXCLUDED.description,
				storage_count = EXCLUDED.storage_count,
				call_count = EXCLUDED.call_count,
				event_count = EXCLUDED.event_count,
				error_count = EXCLUDED.error_count,
				exported_at = EXCLUDED.exported_at,
				updated_at = now()
		`,
			record.Endpoint,
			record.Chain,
			record.ChainVersion,
			record.Name,
			record.Index,
			record.Description,
			record.StorageCount,
			record.CallCount,
			record.EventCount,
			record.ErrorCount,
			record.ExportedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}
