package keeper

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"blobchain/x/txstorage/types"
)

// CheckProof verifies the mandatory storage proof against the challenge
// derived for this block. It must run exactly once per block that has an
// open challenge; the host injects it before ordinary transactions and
// rejects the block when it fails.
func (k Keeper) CheckProof(goCtx context.Context, proof types.StorageProof) error {
	ctx := sdk.UnwrapSDKContext(goCtx)

	checked, err := k.ProofChecked.Get(ctx)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return fmt.Errorf("failed to read proof-checked marker: %w", err)
	}
	if checked {
		return types.ErrDoubleCheck
	}

	challenge, ok, err := k.CurrentChallenge(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrUnexpectedProof
	}

	params := k.GetParams(ctx)
	if err := types.VerifyChunkProof(challenge.Info.ChunkRoot, challenge.Info.Size, params.ChunkSize, challenge.ChunkIndex, proof); err != nil {
		ctx.Logger().Info("storage proof rejected",
			"target_block", challenge.TargetBlock, "tx_index", challenge.TxIndex,
			"chunk_index", challenge.ChunkIndex, "err", err)
		return err
	}

	if err := k.ProofChecked.Set(ctx, true); err != nil {
		return fmt.Errorf("failed to set proof-checked marker: %w", err)
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeProofChecked,
			sdk.NewAttribute(types.AttributeKeyTargetBlock, fmt.Sprintf("%d", challenge.TargetBlock)),
			sdk.NewAttribute(types.AttributeKeyIndex, fmt.Sprintf("%d", challenge.TxIndex)),
			sdk.NewAttribute(types.AttributeKeyChunkIndex, fmt.Sprintf("%d", challenge.ChunkIndex)),
		),
	)
	return nil
}
