package storage

import "palletScope/internal/model"

// Storage defines a sink for exported pallet records.
type Storage interface {
	PutPalletBatch(records []model.PalletRecord) error
}
