// Package pallet layers lookup, search, and enrichment over cached chain
// metadata.
package pallet

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"palletScope/internal/model"
)

// MetadataSource supplies chain metadata for an endpoint. The metadata cache
// satisfies it.
type MetadataSource interface {
	Get(ctx context.Context, endpoint string) (*model.ChainInfo, error)
}

// Service exposes pallet queries over a metadata source.
type Service struct {
	source MetadataSource
	logger *zap.Logger
}

// NewService builds a Service over the given metadata source.
func NewService(source MetadataSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// ChainInfo returns the full decoded metadata for an endpoint.
func (s *Service) ChainInfo(ctx context.Context, endpoint string) (*model.ChainInfo, error) {
	return s.source.Get(ctx, endpoint)
}

// ListPallets returns the chain's pallet sequence in decode order.
func (s *Service) ListPallets(ctx context.Context, endpoint string) ([]model.PalletInfo, error) {
	info, err := s.source.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return info.Pallets, nil
}

// GetPallet returns the pallet matching name (case-insensitive, exact), or
// nil when absent. Absence is a valid outcome, not an error. The returned
// pallet is a copy; curated documentation, when available, overrides its
// description without touching the cached ChainInfo.
func (s *Service) GetPallet(ctx context.Context, endpoint, name string) (*model.PalletInfo, error) {
	info, err := s.source.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	for i := range info.Pallets {
		if !strings.EqualFold(info.Pallets[i].Name, name) {
			continue
		}
		found := info.Pallets[i].Clone()
		if docs, ok := palletDocs[found.Name]; ok {
			found.Description = docs
			s.logger.Debug("curated docs applied", zap.String("pallet", found.Name))
		}
		return &found, nil
	}
	return nil, nil
}

// SearchPallets returns pallets whose name or description contains query,
// case-insensitively, preserving decode order. An empty query matches
// everything.
func (s *Service) SearchPallets(ctx context.Context, endpoint, query string) ([]model.PalletInfo, error) {
	info, err := s.source.Get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := make([]model.PalletInfo, 0, len(info.Pallets))
	for _, p := range info.Pallets {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ExampleCalls returns the fixed call-name to description table for a
// well-known pallet, or nil when the pallet is not in the table.
func (s *Service) ExampleCalls(name string) map[string]string {
	for known, calls := range exampleCalls {
		if strings.EqualFold(known, name) {
			out := make(map[string]string, len(calls))
			for call, docs := range calls {
				out[call] = docs
			}
			return out
		}
	}
	return nil
}
