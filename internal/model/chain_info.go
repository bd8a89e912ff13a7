package model

// ChainInfo describes a chain runtime: its name, version, and pallets.
// It is immutable after decode; a re-fetch replaces it wholesale.
type ChainInfo struct {
	Name    string       `json:"name"`
	Version string       `json:"version"`
	Pallets []PalletInfo `json:"pallets"`
}

// PalletInfo describes one runtime pallet.
type PalletInfo struct {
	Name        string         `json:"name"`
	Index       int            `json:"index"`
	Description string         `json:"description,omitempty"`
	Storage     []StorageItem  `json:"storage,omitempty"`
	Calls       []CallInfo     `json:"calls,omitempty"`
	Events      []EventInfo    `json:"events,omitempty"`
	Errors      []ErrorInfo    `json:"errors,omitempty"`
	Constants   []ConstantInfo `json:"constants,omitempty"`
}

// StorageItem describes a pallet storage entry.
type StorageItem struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Docs string `json:"docs,omitempty"`
}

// CallInfo describes a dispatchable call.
type CallInfo struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
	Docs string   `json:"docs,omitempty"`
}

// EventInfo describes a pallet event.
type EventInfo struct {
	Name string   `json:"name"`
	Args []string `json:"args,omitempty"`
	Docs string   `json:"docs,omitempty"`
}

// ErrorInfo describes a pallet error variant.
type ErrorInfo struct {
	Name string `json:"name"`
	Docs string `json:"docs,omitempty"`
}

// ConstantInfo describes a pallet constant.
type ConstantInfo struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
	Docs  string `json:"docs,omitempty"`
}

// Clone returns a deep copy of the pallet so callers can mutate the
// description without touching the shared cached ChainInfo.
func (p PalletInfo) Clone() PalletInfo {
	out := p
	out.Storage = append([]StorageItem(nil), p.Storage...)
	out.Calls = cloneCalls(p.Calls)
	out.Events = cloneEvents(p.Events)
	out.Errors = append([]ErrorInfo(nil), p.Errors...)
	out.Constants = append([]ConstantInfo(nil), p.Constants...)
	return out
}

func cloneCalls(calls []CallInfo) []CallInfo {
	if calls == nil {
		return nil
	}
	out := make([]CallInfo, len(calls))
	for i, c := range calls {
		out[i] = c
		out[i].Args = append([]string(nil), c.Args...)
	}
	return out
}

func cloneEvents(events []EventInfo) []EventInfo {
	if events == nil {
		return nil
	}
	out := make([]EventInfo, len(events))
	for i, e := range events {
		out[i] = e
		out[i].Args = append([]string(nil), e.Args...)
	}
	return out
}
