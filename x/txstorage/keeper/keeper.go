package keeper

import (
	"fmt"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	corestore "cosmossdk.io/core/store"

	"blobchain/x/txstorage/types"
)

type Keeper struct {
	storeService corestore.KVStoreService
	addressCodec address.Codec
	// Address capable of executing authorization messages.
	// Typically, this should be the x/gov module account.
	authority []byte

	Schema collections.Schema
	Params collections.Item[types.Params]

	// Transactions holds the retained commitment metadata, one list per
	// stored-at block height. ChunkCounts mirrors each list's total chunk
	// count so challenge selection does not decode the list.
	Transactions collections.Map[uint64, types.TransactionList]
	ChunkCounts  collections.Map[uint64, uint64]

	// BlockTransactions accumulates the current block's stores and is
	// flushed into Transactions at EndBlock, so data stored in block N is
	// never the target of block N's challenge.
	BlockTransactions collections.Item[types.TransactionList]

	// ProofChecked marks that this block's mandatory proof was verified.
	ProofChecked collections.Item[bool]

	AuthorizationUsage     collections.Map[[]byte, types.AuthorizationUsage]
	AuthorizationsByExpiry collections.Map[uint64, types.AuthorizationList]
}

func NewKeeper(
	storeService corestore.KVStoreService,
	addressCodec address.Codec,
	authority []byte,
) Keeper {
	if _, err := addressCodec.BytesToString(authority); err != nil {
		panic(fmt.Sprintf("invalid authority address %s: %s", authority, err))
	}

	sb := collections.NewSchemaBuilder(storeService)

	k := Keeper{
		storeService: storeService,
		addressCodec: addressCodec,
		authority:    authority,

		Params:            collections.NewItem(sb, types.ParamsKey, "params", types.CBORValue[types.Params]("params")),
		Transactions:      collections.NewMap(sb, types.TransactionsKey, "transactions", collections.Uint64Key, types.CBORValue[types.TransactionList]("transaction_list")),
		ChunkCounts:       collections.NewMap(sb, types.ChunkCountsKey, "chunk_counts", collections.Uint64Key, collections.Uint64Value),
		BlockTransactions: collections.NewItem(sb, types.BlockTransactionsKey, "block_transactions", types.CBORValue[types.TransactionList]("transaction_list")),
		ProofChecked:      collections.NewItem(sb, types.ProofCheckedKey, "proof_checked", collections.BoolValue),
		AuthorizationUsage: collections.NewMap(sb, types.AuthorizationUsageKey, "authorization_usage",
			collections.BytesKey, types.CBORValue[types.AuthorizationUsage]("authorization_usage")),
		AuthorizationsByExpiry: collections.NewMap(sb, types.AuthorizationsByExpiryKey, "authorizations_by_expiry",
			collections.Uint64Key, types.CBORValue[types.AuthorizationList]("authorization_list")),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	k.Schema = schema

	return k
}

// GetAuthority returns the module's authority.
func (k Keeper) GetAuthority() []byte {
	return k.authority
}
