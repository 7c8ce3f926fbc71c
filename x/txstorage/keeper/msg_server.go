package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/ethereum/go-ethereum/common"

	"blobchain/x/txstorage/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
// for the provided Keeper.
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

func (k msgServer) Store(goCtx context.Context, msg *types.MsgStore) (*types.MsgStoreResponse, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}

	receipt, err := k.Keeper.Store(goCtx, sender, msg.Data)
	if err != nil {
		return nil, err
	}
	return &types.MsgStoreResponse{Block: receipt.Block, Index: receipt.Index}, nil
}

func (k msgServer) Renew(goCtx context.Context, msg *types.MsgRenew) (*types.MsgRenewResponse, error) {
	sender, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}

	receipt, err := k.Keeper.Renew(goCtx, sender, msg.Block, msg.Index)
	if err != nil {
		return nil, err
	}
	return &types.MsgRenewResponse{Block: receipt.Block, Index: receipt.Index}, nil
}

func (k msgServer) CheckProof(goCtx context.Context, msg *types.MsgCheckProof) (*types.MsgCheckProofResponse, error) {
	if err := k.Keeper.CheckProof(goCtx, msg.Proof); err != nil {
		return nil, err
	}
	return &types.MsgCheckProofResponse{}, nil
}

func (k msgServer) AuthorizeAccount(goCtx context.Context, msg *types.MsgAuthorizeAccount) (*types.MsgAuthorizeAccountResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	who, err := sdk.AccAddressFromBech32(msg.Account)
	if err != nil {
		return nil, sdkerrors.ErrInvalidAddress.Wrapf("invalid account address: %s", err)
	}

	if err := k.Keeper.AuthorizeAccount(ctx, who, msg.Transactions, msg.Bytes); err != nil {
		return nil, err
	}
	return &types.MsgAuthorizeAccountResponse{}, nil
}

func (k msgServer) AuthorizePreimage(goCtx context.Context, msg *types.MsgAuthorizePreimage) (*types.MsgAuthorizePreimageResponse, error) {
	ctx := sdk.UnwrapSDKContext(goCtx)
	if err := k.checkAuthority(msg.Authority); err != nil {
		return nil, err
	}
	if len(msg.ContentHash) != common.HashLength {
		return nil, sdkerrors.ErrInvalidRequest.Wrapf("content hash must be %d bytes", common.HashLength)
	}

	if err := k.Keeper.AuthorizePreimage(ctx, common.BytesToHash(msg.ContentHash), msg.Bytes); err != nil {
		return nil, err
	}
	return &types.MsgAuthorizePreimageResponse{}, nil
}

func (k msgServer) checkAuthority(authority string) error {
	expected, err := k.addressCodec.BytesToString(k.authority)
	if err != nil {
		return err
	}
	if authority != expected {
		return sdkerrors.ErrUnauthorized.Wrapf("expected %s, got %s", expected, authority)
	}
	return nil
}
