package metadata

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"palletScope/internal/model"
)

// Decoder converts a raw hex-encoded metadata payload into a ChainInfo.
// The full SCALE metadata format is versioned and self-describing; decoding
// it is a pluggable capability so the cache and query layers stay independent
// of the exact binary layout.
type Decoder interface {
	Decode(payload string) (*model.ChainInfo, error)
}

// DecodeError reports a payload that could not be decoded. It carries the
// payload length for diagnostics since the blob itself is not printable.
type DecodeError struct {
	PayloadLen int
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode metadata (payload %d bytes): %v", e.PayloadLen, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// wellKnownPallets is the fixed inventory reported by the fallback decoder,
// in pallet index order.
var wellKnownPallets = []string{
	"System",
	"Timestamp",
	"Balances",
	"TransactionPayment",
	"Staking",
	"Session",
	"Democracy",
	"Treasury",
	"Utility",
	"Identity",
	"Proxy",
	"Multisig",
	"Vesting",
	"Scheduler",
	"Sudo",
}

// FallbackDecoder is the minimal decoder used when no full SCALE decoder is
// plugged in. It validates that the payload is well-formed hex and reports a
// deterministic inventory of well-known pallets with empty item sequences,
// so the rest of the pipeline stays exercisable.
type FallbackDecoder struct{}

// Decode implements Decoder.
func (FallbackDecoder) Decode(payload string) (*model.ChainInfo, error) {
	if payload == "" {
		return nil, &DecodeError{PayloadLen: 0, Err: fmt.Errorf("empty payload")}
	}
	if _, err := hexutil.Decode(payload); err != nil {
		return nil, &DecodeError{PayloadLen: len(payload), Err: fmt.Errorf("invalid hex payload: %w", err)}
	}

	pallets := make([]model.PalletInfo, 0, len(wellKnownPallets))
	for i, name := range wellKnownPallets {
		pallets = append(pallets, model.PalletInfo{
			Name:        name,
			Index:       i,
			Description: fmt.Sprintf("%s pallet", name),
		})
	}

	return &model.ChainInfo{
		Name:    "unknown",
		Version: "unknown",
		Pallets: pallets,
	}, nil
}
