package types_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"blobchain/x/txstorage/types"
)

func TestParamsValidate(t *testing.T) {
	require.NoError(t, types.DefaultParams().Validate())

	for name, mutate := range map[string]func(p *types.Params){
		"zero chunk size":           func(p *types.Params) { p.ChunkSize = 0 },
		"zero max tx size":          func(p *types.Params) { p.MaxTransactionSize = 0 },
		"zero block quota":          func(p *types.Params) { p.MaxBlockTransactions = 0 },
		"zero storage period":       func(p *types.Params) { p.StoragePeriod = 0 },
		"zero authorization period": func(p *types.Params) { p.AuthorizationPeriod = 0 },
		"zero expiry quota":         func(p *types.Params) { p.MaxBlockAuthorizationExpiries = 0 },
	} {
		p := types.DefaultParams()
		mutate(&p)
		require.Error(t, p.Validate(), name)
	}

	// A zero byte fee is a policy choice, not a misconfiguration.
	p := types.DefaultParams()
	p.ByteFee = 0
	require.NoError(t, p.Validate())
}

func TestScopeKeysAreDisjoint(t *testing.T) {
	addr := sdk.AccAddress(make([]byte, 32))
	var hash common.Hash

	// A 32-byte account and a content hash of the same bytes must not
	// collide in the usage map.
	require.NotEqual(t, types.AccountScope(addr), types.PreimageScope(hash))
	require.Len(t, types.AccountScope(addr), 33)
	require.Len(t, types.PreimageScope(hash), 33)
}

func TestTransactionListTotalChunks(t *testing.T) {
	require.Equal(t, uint64(0), types.TransactionList{}.TotalChunks())

	list := types.TransactionList{Transactions: []types.TransactionInfo{
		{Size: 10, BlockChunks: 3},
		{Size: 5, BlockChunks: 5},
	}}
	require.Equal(t, uint64(5), list.TotalChunks())
}

func TestAuthorizationUsageIsZero(t *testing.T) {
	require.True(t, types.AuthorizationUsage{}.IsZero())
	require.False(t, types.AuthorizationUsage{
		Unused: types.AuthorizationExtent{Transactions: 1},
	}.IsZero())
	require.False(t, types.AuthorizationUsage{
		Used: types.AuthorizationExtent{Bytes: 1},
	}.IsZero())
}

func TestCBORValueRoundTrip(t *testing.T) {
	codec := types.CBORValue[types.TransactionList]("test TransactionList")

	list := types.TransactionList{Transactions: []types.TransactionInfo{
		{
			ChunkRoot:   common.HexToHash("0x01"),
			ContentHash: common.HexToHash("0x02"),
			Size:        10,
			BlockChunks: 3,
		},
	}}

	b, err := codec.Encode(list)
	require.NoError(t, err)
	got, err := codec.Decode(b)
	require.NoError(t, err)
	require.Equal(t, list, got)

	// Canonical encoding is stable byte for byte.
	b2, err := codec.Encode(list)
	require.NoError(t, err)
	require.Equal(t, b, b2)

	j, err := codec.EncodeJSON(list)
	require.NoError(t, err)
	gotJSON, err := codec.DecodeJSON(j)
	require.NoError(t, err)
	require.Equal(t, list, gotJSON)
}
