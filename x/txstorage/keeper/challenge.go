package keeper

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"blobchain/x/txstorage/types"
)

const challengeTag = "txstorage/chal/v1"

// randomChunk maps the block seed to a single global chunk index in
// [0, totalChunks). Every node derives the identical index from the same
// seed and ledger state.
func randomChunk(seed []byte, totalChunks uint64) uint64 {
	buf := make([]byte, 0, len(challengeTag)+len(seed))
	buf = append(buf, []byte(challengeTag)...)
	buf = append(buf, seed...)
	sum := sha256.Sum256(buf)
	return binary.BigEndian.Uint64(sum[0:8]) % totalChunks
}

// CurrentChallenge derives the spot-check target for the current block: the
// block stored one storage period ago, and one uniformly selected chunk
// across all of its payloads. ok is false when there is nothing to
// challenge (early chain or an empty target block).
//
// The seed is the parent block hash: fixed before this block executes and
// outside the proposer's influence once the challenge window opens.
func (k Keeper) CurrentChallenge(ctx sdk.Context) (types.Challenge, bool, error) {
	params := k.GetParams(ctx)

	height := uint64(ctx.BlockHeight())
	if height <= params.StoragePeriod {
		return types.Challenge{}, false, nil
	}
	target := height - params.StoragePeriod

	totalChunks, err := k.ChunkCounts.Get(ctx, target)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Challenge{}, false, nil
		}
		return types.Challenge{}, false, fmt.Errorf("failed to read chunk count: %w", err)
	}
	if totalChunks == 0 {
		return types.Challenge{}, false, nil
	}

	seed := ctx.BlockHeader().LastBlockId.Hash
	selected := randomChunk(seed, totalChunks)

	list, err := k.Transactions.Get(ctx, target)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.Challenge{}, false, errorsmod.Wrapf(types.ErrMissingStateData,
				"chunk count exists for block %d but transactions are missing", target)
		}
		return types.Challenge{}, false, fmt.Errorf("failed to read transactions: %w", err)
	}

	// Cumulative chunk counts are strictly increasing, so the owning
	// transaction is the first whose BlockChunks exceeds the selection.
	idx := sort.Search(len(list.Transactions), func(i int) bool {
		return list.Transactions[i].BlockChunks > selected
	})
	if idx >= len(list.Transactions) {
		return types.Challenge{}, false, errorsmod.Wrapf(types.ErrMissingStateData,
			"selected chunk %d beyond recorded transactions of block %d", selected, target)
	}
	info := list.Transactions[idx]
	chunks := types.NumChunks(info.Size, params.ChunkSize)
	precedingChunks := satSub64(info.BlockChunks, chunks)

	return types.Challenge{
		TargetBlock: target,
		TxIndex:     uint32(idx),
		ChunkIndex:  selected - precedingChunks,
		Info:        info,
	}, true, nil
}
