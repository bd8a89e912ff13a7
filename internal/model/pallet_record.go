package model

// PalletRecord is a flattened pallet row written by the export command.
type PalletRecord struct {
	Chain        string `json:"chain"`
	ChainVersion string `json:"chain_version"`
	Endpoint     string `json:"endpoint"`
	Name         string `json:"name"`
	Index        int    `json:"index"`
	Description  string `json:"description,omitempty"`
	StorageCount int    `json:"storage_count"`
	CallCount    int    `json:"call_count"`
	EventCount   int    `json:"event_count"`
	ErrorCount   int    `json:"error_count"`
	ExportedAt   string `json:"exported_at"`
}
