package keeper_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"blobchain/x/txstorage/types"
)

func TestAuthorizationExpires(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) { p.AuthorizationPeriod = 5 })
	sender := testAddr(0x01)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 3, 300))
	require.Equal(t, types.AuthorizationExtent{Transactions: 3, Bytes: 300},
		f.keeper.UnusedAccountAuthorizationExtent(ctx1, sender))

	// Still live one block before expiry.
	ctx5 := f.blockCtx(5, testSeed(5))
	require.NoError(t, f.keeper.BeginBlock(ctx5))
	require.Equal(t, types.AuthorizationExtent{Transactions: 3, Bytes: 300},
		f.keeper.UnusedAccountAuthorizationExtent(ctx5, sender))

	ctx6 := f.blockCtx(6, testSeed(6))
	require.NoError(t, f.keeper.BeginBlock(ctx6))
	require.Equal(t, types.AuthorizationExtent{},
		f.keeper.UnusedAccountAuthorizationExtent(ctx6, sender))

	_, err := f.keeper.Store(ctx6, sender, []byte("too late"))
	require.ErrorIs(t, err, types.ErrNotAuthorized)
}

func TestAuthorizationExpiryReleasesUsedFirst(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) { p.AuthorizationPeriod = 5 })
	sender := testAddr(0x01)

	// Grant at height 1 (expires after 6), consume part of it, then grant
	// again at height 3 (expires after 8). Expiring the first grant must
	// charge the consumption against it, leaving the second grant whole.
	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx1, sender, 2, 100))
	_, err := f.keeper.Store(ctx1, sender, []byte("0123456789"))
	require.NoError(t, err)

	ctx3 := f.blockCtx(3, testSeed(3))
	require.NoError(t, f.keeper.AuthorizeAccount(ctx3, sender, 4, 400))
	require.Equal(t, types.AuthorizationExtent{Transactions: 5, Bytes: 490},
		f.keeper.UnusedAccountAuthorizationExtent(ctx3, sender))

	ctx6 := f.blockCtx(6, testSeed(6))
	require.NoError(t, f.keeper.BeginBlock(ctx6))
	require.Equal(t, types.AuthorizationExtent{Transactions: 4, Bytes: 400},
		f.keeper.UnusedAccountAuthorizationExtent(ctx6, sender))

	ctx8 := f.blockCtx(8, testSeed(8))
	require.NoError(t, f.keeper.BeginBlock(ctx8))
	require.Equal(t, types.AuthorizationExtent{},
		f.keeper.UnusedAccountAuthorizationExtent(ctx8, sender))
}

func TestPreimageAuthorizationExpires(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) { p.AuthorizationPeriod = 2 })

	data := []byte("ephemeral")
	hash := crypto.Keccak256Hash(data)

	ctx1 := f.blockCtx(1, testSeed(1))
	require.NoError(t, f.keeper.AuthorizePreimage(ctx1, hash, uint64(len(data))))
	require.Equal(t, types.AuthorizationExtent{Transactions: 1, Bytes: uint64(len(data))},
		f.keeper.UnusedPreimageAuthorizationExtent(ctx1, hash))

	ctx3 := f.blockCtx(3, testSeed(3))
	require.NoError(t, f.keeper.BeginBlock(ctx3))
	require.Equal(t, types.AuthorizationExtent{},
		f.keeper.UnusedPreimageAuthorizationExtent(ctx3, hash))

	_, err := f.keeper.Store(ctx3, nil, data)
	require.ErrorIs(t, err, types.ErrNotAuthorized)
}

func TestTooManyAuthorizationsPerExpiry(t *testing.T) {
	f := initFixture(t)
	f.setParams(t, func(p *types.Params) { p.MaxBlockAuthorizationExpiries = 1 })
	ctx := f.blockCtx(1, testSeed(1))

	require.NoError(t, f.keeper.AuthorizeAccount(ctx, testAddr(0x01), 1, 100))
	err := f.keeper.AuthorizeAccount(ctx, testAddr(0x02), 1, 100)
	require.ErrorIs(t, err, types.ErrTooManyAuthorizations)
}

func TestAccountAndPreimageScopesAreDistinct(t *testing.T) {
	f := initFixture(t)
	sender := testAddr(0x01)
	ctx := f.blockCtx(1, testSeed(1))

	require.NoError(t, f.keeper.AuthorizeAccount(ctx, sender, 1, 100))

	// An account grant does not cover unsigned preimage uploads.
	_, err := f.keeper.Store(ctx, nil, []byte("unsigned"))
	require.ErrorIs(t, err, types.ErrNotAuthorized)
}
