package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"blobchain/x/txstorage/types"
)

// BeginBlock prunes commitments whose retention has elapsed and expires
// authorizations, before any challenge is derived or transaction executes.
// The proof for height n - StoragePeriod is still checked in this block, so
// pruning stops one block short of it.
func (k Keeper) BeginBlock(goCtx context.Context) error {
	ctx := sdk.UnwrapSDKContext(goCtx)
	params := k.GetParams(ctx)

	height := uint64(ctx.BlockHeight())
	if height > params.StoragePeriod+1 {
		obsolete := height - params.StoragePeriod - 1
		if err := k.Transactions.Remove(ctx, obsolete); err != nil && !errors.Is(err, collections.ErrNotFound) {
			return fmt.Errorf("failed to prune transactions: %w", err)
		}
		if err := k.ChunkCounts.Remove(ctx, obsolete); err != nil && !errors.Is(err, collections.ErrNotFound) {
			return fmt.Errorf("failed to prune chunk counts: %w", err)
		}
	}

	return k.expireAuthorizations(ctx, height)
}

// EndBlock enforces the mandatory-proof invariant and flushes the block's
// stored transactions into the retained ledger. A block that had an open
// challenge but no verified proof is invalid.
func (k Keeper) EndBlock(goCtx context.Context) error {
	ctx := sdk.UnwrapSDKContext(goCtx)

	checked, err := k.ProofChecked.Get(ctx)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return fmt.Errorf("failed to read proof-checked marker: %w", err)
	}
	if checked {
		if err := k.ProofChecked.Remove(ctx); err != nil {
			return fmt.Errorf("failed to reset proof-checked marker: %w", err)
		}
	} else if required, err := k.proofRequired(ctx); err != nil {
		return err
	} else if required {
		return errorsmod.Wrapf(types.ErrProofNotChecked, "height %d", ctx.BlockHeight())
	}

	list, err := k.BlockTransactions.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read block transactions: %w", err)
	}
	if err := k.BlockTransactions.Remove(ctx); err != nil {
		return fmt.Errorf("failed to reset block transactions: %w", err)
	}

	totalChunks := list.TotalChunks()
	if totalChunks == 0 {
		return nil
	}
	height := uint64(ctx.BlockHeight())
	if err := k.Transactions.Set(ctx, height, list); err != nil {
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	if err := k.ChunkCounts.Set(ctx, height, totalChunks); err != nil {
		return fmt.Errorf("failed to persist chunk count: %w", err)
	}

	ctx.Logger().Debug("retained block transactions",
		"height", height, "transactions", len(list.Transactions), "chunks", totalChunks)
	return nil
}

// proofRequired reports whether the current block had an open challenge.
// Early blocks and blocks whose target stored nothing are exempt.
func (k Keeper) proofRequired(ctx sdk.Context) (bool, error) {
	params := k.GetParams(ctx)
	height := uint64(ctx.BlockHeight())
	if height <= params.StoragePeriod {
		return false, nil
	}
	target := height - params.StoragePeriod
	totalChunks, err := k.ChunkCounts.Get(ctx, target)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read chunk count: %w", err)
	}
	return totalChunks != 0, nil
}
