package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"

	"blobchain/x/txstorage/types"
)

// TransactionRoots returns the retained commitment metadata for payloads
// stored at the given block height, or ok=false when the block stored
// nothing or has been pruned.
func (k Keeper) TransactionRoots(ctx context.Context, block uint64) ([]types.TransactionInfo, bool, error) {
	list, err := k.Transactions.Get(ctx, block)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read transactions: %w", err)
	}
	return list.Transactions, true, nil
}

// RetainedChunkCount returns the total chunk count committed at the given
// block height; zero when nothing is retained for it.
func (k Keeper) RetainedChunkCount(ctx context.Context, block uint64) (uint64, error) {
	count, err := k.ChunkCounts.Get(ctx, block)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read chunk count: %w", err)
	}
	return count, nil
}
