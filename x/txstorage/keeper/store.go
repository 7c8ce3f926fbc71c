package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/crypto"

	"blobchain/x/txstorage/types"
)

// Store commits a payload for one storage period. The sender's account
// authorization is consumed when sender is set; otherwise the payload's
// preimage authorization is used. The raw bytes are handed to the off-chain
// transport; only the commitment metadata enters state.
func (k Keeper) Store(goCtx context.Context, sender sdk.AccAddress, data []byte) (types.StoredReceipt, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	params := k.GetParams(ctx)

	if len(data) == 0 {
		return types.StoredReceipt{}, types.ErrEmptyTransaction
	}
	if uint64(len(data)) > params.MaxTransactionSize {
		return types.StoredReceipt{}, errorsmod.Wrapf(types.ErrTransactionTooLarge,
			"%d bytes exceeds limit of %d", len(data), params.MaxTransactionSize)
	}

	contentHash := crypto.Keccak256Hash(data)
	if err := k.useAuthorization(ctx, sender, contentHash, uint64(len(data))); err != nil {
		return types.StoredReceipt{}, err
	}

	root, chunkCount, err := types.ChunkRoot(data, params.ChunkSize)
	if err != nil {
		return types.StoredReceipt{}, err
	}

	receipt, err := k.appendBlockTransaction(ctx, types.TransactionInfo{
		ChunkRoot:   root,
		ContentHash: contentHash,
		Size:        uint64(len(data)),
	}, chunkCount)
	if err != nil {
		return types.StoredReceipt{}, err
	}

	ctx.Logger().Debug("stored transaction data",
		"block", receipt.Block, "index", receipt.Index, "size", len(data), "chunks", chunkCount)

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeStored,
			sdk.NewAttribute(types.AttributeKeyBlock, fmt.Sprintf("%d", receipt.Block)),
			sdk.NewAttribute(types.AttributeKeyIndex, fmt.Sprintf("%d", receipt.Index)),
			sdk.NewAttribute(types.AttributeKeyContentHash, contentHash.Hex()),
			sdk.NewAttribute(types.AttributeKeyChunkRoot, root.Hex()),
			sdk.NewAttribute(types.AttributeKeySize, fmt.Sprintf("%d", len(data))),
		),
	)

	return receipt, nil
}

// Renew re-commits a still retained payload for another storage period
// without re-uploading its bytes. block/index is the receipt of the prior
// store or renew call. Requires the same authorization as Store.
func (k Keeper) Renew(goCtx context.Context, sender sdk.AccAddress, block uint64, index uint32) (types.StoredReceipt, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)

	list, err := k.Transactions.Get(ctx, block)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.StoredReceipt{}, types.ErrRenewedNotFound
		}
		return types.StoredReceipt{}, fmt.Errorf("failed to read transactions: %w", err)
	}
	if uint64(index) >= uint64(len(list.Transactions)) {
		return types.StoredReceipt{}, types.ErrRenewedNotFound
	}
	info := list.Transactions[index]

	if err := k.useAuthorization(ctx, sender, info.ContentHash, info.Size); err != nil {
		return types.StoredReceipt{}, err
	}

	params := k.GetParams(ctx)
	receipt, err := k.appendBlockTransaction(ctx, types.TransactionInfo{
		ChunkRoot:   info.ChunkRoot,
		ContentHash: info.ContentHash,
		Size:        info.Size,
	}, types.NumChunks(info.Size, params.ChunkSize))
	if err != nil {
		return types.StoredReceipt{}, err
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRenewed,
			sdk.NewAttribute(types.AttributeKeyBlock, fmt.Sprintf("%d", receipt.Block)),
			sdk.NewAttribute(types.AttributeKeyIndex, fmt.Sprintf("%d", receipt.Index)),
			sdk.NewAttribute(types.AttributeKeyContentHash, info.ContentHash.Hex()),
		),
	)

	return receipt, nil
}

// appendBlockTransaction adds commitment metadata to the current block's
// accumulator, maintaining the cumulative chunk count used by challenge
// selection.
func (k Keeper) appendBlockTransaction(ctx sdk.Context, info types.TransactionInfo, chunkCount uint64) (types.StoredReceipt, error) {
	params := k.GetParams(ctx)

	list, err := k.BlockTransactions.Get(ctx)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return types.StoredReceipt{}, fmt.Errorf("failed to read block transactions: %w", err)
	}
	if uint64(len(list.Transactions)) >= uint64(params.MaxBlockTransactions) {
		return types.StoredReceipt{}, types.ErrTooManyTransactions
	}

	info.BlockChunks = list.TotalChunks() + chunkCount
	list.Transactions = append(list.Transactions, info)
	if err := k.BlockTransactions.Set(ctx, list); err != nil {
		return types.StoredReceipt{}, fmt.Errorf("failed to persist block transactions: %w", err)
	}

	return types.StoredReceipt{
		Block: uint64(ctx.BlockHeight()),
		Index: uint32(len(list.Transactions) - 1),
	}, nil
}
