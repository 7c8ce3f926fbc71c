package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "txstorage"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// GovModuleName duplicates the gov module's name to avoid a dependency with x/gov.
	GovModuleName = "gov"
)

// ParamsKey is the prefix to retrieve all Params
var ParamsKey = collections.NewPrefix("p_txstorage")

var (
	TransactionsKey           = collections.NewPrefix("Transactions/value/")
	ChunkCountsKey            = collections.NewPrefix("ChunkCounts/value/")
	BlockTransactionsKey      = collections.NewPrefix("BlockTransactions/value/")
	ProofCheckedKey           = collections.NewPrefix("ProofChecked/value/")
	AuthorizationUsageKey     = collections.NewPrefix("AuthorizationUsage/value/")
	AuthorizationsByExpiryKey = collections.NewPrefix("AuthorizationsByExpiry/value/")
)
