package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blobchain/x/txstorage/types"
)

func TestNoChallengeBeforeStoragePeriodElapses(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) {
		p.ChunkSize = 4
		p.StoragePeriod = 3
		p.AuthorizationPeriod = 100
	})
	sender := testAddr(0x01)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.BeginBlock(ctx1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 10, 1000))
	_, err := f.keeper.Store(ctx1, sender, []byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, f.keeper.EndBlock(ctx1))

	for height := int64(1); height <= 3; height++ {
		ctx := f.blockCtx(height, testSeed(uint64(height)))
		_, ok, err := f.keeper.CurrentChallenge(ctx)
		require.NoError(t, err)
		require.False(t, ok, "height %d", height)
	}
}

func TestNoChallengeForEmptyTargetBlock(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) { p.StoragePeriod = 3 })

	// Nothing stored at height 1.
	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.BeginBlock(ctx1))
	require.NoError(t, f.keeper.EndBlock(ctx1))

	ctx4 := f.blockCtx(4, testSeed(4))
	require.NoError(t, f.keeper.BeginBlock(ctx4))
	_, ok, err := f.keeper.CurrentChallenge(ctx4)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, f.keeper.EndBlock(ctx4))
}

func TestChallengeTargetsBlockOnePeriodBack(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) {
		p.ChunkSize = 4
		p.StoragePeriod = 3
		p.AuthorizationPeriod = 100
	})
	sender := testAddr(0x01)
	data := []byte("0123456789")

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.BeginBlock(ctx1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 10, 1000))
	_, err := f.keeper.Store(ctx1, sender, data)
	require.NoError(t, err)
	require.NoError(t, f.keeper.EndBlock(ctx1))

	ctx4 := f.blockCtx(4, testSeed(4))
	require.NoError(t, f.keeper.BeginBlock(ctx4))
	challenge, ok, err := f.keeper.CurrentChallenge(ctx4)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(1), challenge.TargetBlock)
	require.Equal(t, uint32(0), challenge.TxIndex)
	require.Less(t, challenge.ChunkIndex, uint64(3))
	require.Equal(t, uint64(10), challenge.Info.Size)
}

func TestChallengeIsDeterministicPerSeed(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) {
		p.ChunkSize = 4
		p.StoragePeriod = 1
		p.AuthorizationPeriod = 100
	})
	sender := testAddr(0x01)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 10, 1000))
	_, err := f.keeper.Store(ctx1, sender, []byte("0123456789abcdef0123"))
	require.NoError(t, err)
	require.NoError(t, f.keeper.EndBlock(ctx1))

	ctx2a := f.blockCtx(2, testSeed(42))
	a, ok, err := f.keeper.CurrentChallenge(ctx2a)
	require.NoError(t, err)
	require.True(t, ok)

	ctx2b := f.blockCtx(2, testSeed(42))
	b, ok, err := f.keeper.CurrentChallenge(ctx2b)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, a, b)
}

// Stores two payloads (3 chunks and 2 chunks at chunk size 4) and checks
// that varying seeds map onto every one of the five global chunks, that the
// per-transaction chunk index is always in range, and that the spread is
// roughly uniform.
func TestChallengeSelectionCoversAllChunks(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) {
		p.ChunkSize = 4
		p.StoragePeriod = 1
		p.AuthorizationPeriod = 100
	})
	sender := testAddr(0x01)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 10, 1000))
	_, err := f.keeper.Store(ctx1, sender, []byte("0123456789")) // chunks 0..2
	require.NoError(t, err)
	_, err = f.keeper.Store(ctx1, sender, []byte("01234")) // chunks 3..4
	require.NoError(t, err)
	require.NoError(t, f.keeper.EndBlock(ctx1))

	chunksPerTx := []uint64{3, 2}
	counts := make(map[[2]uint64]int)

	const trials = 1000
	for i := uint64(0); i < trials; i++ {
		ctx := f.blockCtx(2, testSeed(i))
		challenge, ok, err := f.keeper.CurrentChallenge(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		require.Less(t, int(challenge.TxIndex), len(chunksPerTx))
		require.Less(t, challenge.ChunkIndex, chunksPerTx[challenge.TxIndex])
		counts[[2]uint64{uint64(challenge.TxIndex), challenge.ChunkIndex}]++
	}

	require.Len(t, counts, 5, "every chunk should be selectable")
	for chunk, n := range counts {
		require.Greater(t, n, 120, "chunk %v under-selected", chunk)
		require.Less(t, n, 280, "chunk %v over-selected", chunk)
	}
}

func TestPruneDropsExpiredCommitments(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) {
		p.ChunkSize = 4
		p.StoragePeriod = 2
		p.AuthorizationPeriod = 100
	})
	sender := testAddr(0x01)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.BeginBlock(ctx1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 10, 1000))
	_, err := f.keeper.Store(ctx1, sender, []byte("0123456789"))
	require.NoError(t, err)
	require.NoError(t, f.keeper.EndBlock(ctx1))

	// Height 3 still challenges block 1, so pruning must not touch it yet.
	ctx3 := f.blockCtx(3, testSeed(3))
	require.NoError(t, f.keeper.BeginBlock(ctx3))
	_, ok, err := f.keeper.TransactionRoots(ctx3, 1)
	require.NoError(t, err)
	require.True(t, ok)

	// Height 4 prunes block 1 (4 - period - 1).
	ctx4 := f.blockCtx(4, testSeed(4))
	require.NoError(t, f.keeper.BeginBlock(ctx4))
	_, ok, err = f.keeper.TransactionRoots(ctx4, 1)
	require.NoError(t, err)
	require.False(t, ok)

	count, err := f.keeper.RetainedChunkCount(ctx4, 1)
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	// No retained chunks for the target block, so no challenge either.
	_, ok, err = f.keeper.CurrentChallenge(ctx4)
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, f.keeper.EndBlock(ctx4))
}
