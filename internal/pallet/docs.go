package pallet

// palletDocs holds curated descriptions for well-known pallets, keyed by
// canonical pallet name. Lookup enrichment overrides the decoded description
// when a match exists here.
var palletDocs = map[string]string{
	"System":             "Core system functionality: accounts, block numbers, events, and low-level runtime storage.",
	"Timestamp":          "Provides the current on-chain time, set once per block by the block author.",
	"Balances":           "Manages account balances, transfers, locks, and reserves for the native token.",
	"TransactionPayment": "Computes and charges transaction fees, including the weight-to-fee conversion.",
	"Staking":            "Manages nominated proof-of-stake: validator election, nominations, rewards, and slashing.",
	"Session":            "Tracks validator session keys and rotates sessions.",
	"Democracy":          "On-chain governance: public referenda, proposals, and voting.",
	"Treasury":           "Collects a share of fees and slashes and funds approved spending proposals.",
	"Utility":            "Dispatch helpers such as batching multiple calls into one transaction.",
	"Identity":           "On-chain identity registration, judgements, and sub-accounts.",
	"Proxy":              "Allows accounts to delegate dispatch rights to proxy accounts with filtered call sets.",
	"Multisig":           "Multi-signature dispatch: approvals collected across multiple signatories.",
	"Vesting":            "Enforces vesting schedules on locked balance transfers.",
	"Scheduler":          "Schedules calls for dispatch at a later block, optionally on a repeating basis.",
	"Sudo":               "Single privileged account able to dispatch root-origin calls.",
}

// exampleCalls maps well-known pallet names to a fixed call-name to
// description table. This is static reference data, not derived from
// decoded metadata.
var exampleCalls = map[string]map[string]string{
	"Balances": {
		"transfer_keep_alive":  "Transfer funds while keeping the sender account alive.",
		"transfer_allow_death": "Transfer funds, allowing the sender account to be reaped.",
		"force_transfer":       "Root-only transfer between two arbitrary accounts.",
	},
	"Staking": {
		"bond":           "Lock funds and start participating in staking.",
		"nominate":       "Nominate a set of validators for the bonded stash.",
		"unbond":         "Schedule bonded funds for withdrawal after the unbonding period.",
		"payout_stakers": "Pay out rewards for a validator and its nominators for one era.",
	},
	"System": {
		"remark":            "Store an arbitrary note on chain with no other effect.",
		"remark_with_event": "Store a note and emit an event carrying its hash.",
	},
	"Utility": {
		"batch":     "Dispatch a sequence of calls, stopping at the first failure.",
		"batch_all": "Dispatch a sequence of calls atomically, reverting all on any failure.",
	},
	"Sudo": {
		"sudo": "Dispatch a call with root origin from the sudo key.",
	},
}
