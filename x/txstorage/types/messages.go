package types

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgServer is the transaction-handling surface exposed to the host's
// dispatch layer.
type MsgServer interface {
	Store(context.Context, *MsgStore) (*MsgStoreResponse, error)
	Renew(context.Context, *MsgRenew) (*MsgRenewResponse, error)
	CheckProof(context.Context, *MsgCheckProof) (*MsgCheckProofResponse, error)
	AuthorizeAccount(context.Context, *MsgAuthorizeAccount) (*MsgAuthorizeAccountResponse, error)
	AuthorizePreimage(context.Context, *MsgAuthorizePreimage) (*MsgAuthorizePreimageResponse, error)
}

// Message types are plain structs with hand-written proto.Message stubs; the
// host app wires its own transaction codec around them.

// MsgStore submits a payload for storage. The raw bytes are indexed off
// chain; the chain keeps only the commitment metadata.
type MsgStore struct {
	Creator string `json:"creator"`
	Data    []byte `json:"data"`
}

type MsgStoreResponse struct {
	Block uint64 `json:"block"`
	Index uint32 `json:"index"`
}

// MsgRenew re-commits a previously stored payload for another storage
// period, identified by its store receipt.
type MsgRenew struct {
	Creator string `json:"creator"`
	Block   uint64 `json:"block"`
	Index   uint32 `json:"index"`
}

type MsgRenewResponse struct {
	Block uint64 `json:"block"`
	Index uint32 `json:"index"`
}

// MsgCheckProof carries the mandatory once-per-block storage proof. It is
// injected by the block proposer before ordinary transactions.
type MsgCheckProof struct {
	Proof StorageProof `json:"proof"`
}

type MsgCheckProofResponse struct{}

// MsgAuthorizeAccount grants an account the right to store up to the given
// number of transactions and bytes. Governance-gated.
type MsgAuthorizeAccount struct {
	Authority    string `json:"authority"`
	Account      string `json:"account"`
	Transactions uint32 `json:"transactions"`
	Bytes        uint64 `json:"bytes"`
}

type MsgAuthorizeAccountResponse struct{}

// MsgAuthorizePreimage grants anyone the right to store the payload whose
// content hash matches. Governance-gated.
type MsgAuthorizePreimage struct {
	Authority   string `json:"authority"`
	ContentHash []byte `json:"content_hash"`
	Bytes       uint64 `json:"bytes"`
}

type MsgAuthorizePreimageResponse struct{}

var (
	_ sdk.Msg = (*MsgStore)(nil)
	_ sdk.Msg = (*MsgRenew)(nil)
	_ sdk.Msg = (*MsgCheckProof)(nil)
	_ sdk.Msg = (*MsgAuthorizeAccount)(nil)
	_ sdk.Msg = (*MsgAuthorizePreimage)(nil)
)

func (msg *MsgStore) Reset()         { *msg = MsgStore{} }
func (msg *MsgStore) String() string { return fmt.Sprintf("store %d bytes from %s", len(msg.Data), msg.Creator) }
func (msg *MsgStore) ProtoMessage()  {}

func (msg *MsgStore) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}
	if len(msg.Data) == 0 {
		return ErrEmptyTransaction
	}
	return nil
}

func (msg *MsgRenew) Reset()         { *msg = MsgRenew{} }
func (msg *MsgRenew) String() string { return fmt.Sprintf("renew %d/%d from %s", msg.Block, msg.Index, msg.Creator) }
func (msg *MsgRenew) ProtoMessage()  {}

func (msg *MsgRenew) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid creator address: %s", err)
	}
	return nil
}

func (msg *MsgCheckProof) Reset()         { *msg = MsgCheckProof{} }
func (msg *MsgCheckProof) String() string { return fmt.Sprintf("check proof for chunk of %d bytes", len(msg.Proof.Chunk)) }
func (msg *MsgCheckProof) ProtoMessage()  {}

func (msg *MsgCheckProof) ValidateBasic() error {
	if len(msg.Proof.Chunk) == 0 {
		return sdkerrors.ErrInvalidRequest.Wrap("proof chunk cannot be empty")
	}
	return nil
}

func (msg *MsgAuthorizeAccount) Reset()         { *msg = MsgAuthorizeAccount{} }
func (msg *MsgAuthorizeAccount) String() string { return fmt.Sprintf("authorize account %s", msg.Account) }
func (msg *MsgAuthorizeAccount) ProtoMessage()  {}

func (msg *MsgAuthorizeAccount) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid authority address: %s", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.Account); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid account address: %s", err)
	}
	if msg.Transactions == 0 {
		return sdkerrors.ErrInvalidRequest.Wrap("transactions cannot be zero")
	}
	if msg.Bytes == 0 {
		return sdkerrors.ErrInvalidRequest.Wrap("bytes cannot be zero")
	}
	return nil
}

func (msg *MsgAuthorizePreimage) Reset()         { *msg = MsgAuthorizePreimage{} }
func (msg *MsgAuthorizePreimage) String() string { return fmt.Sprintf("authorize preimage %x", msg.ContentHash) }
func (msg *MsgAuthorizePreimage) ProtoMessage()  {}

func (msg *MsgAuthorizePreimage) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return sdkerrors.ErrInvalidAddress.Wrapf("invalid authority address: %s", err)
	}
	if len(msg.ContentHash) != 32 {
		return sdkerrors.ErrInvalidRequest.Wrapf("content hash must be 32 bytes (got %d)", len(msg.ContentHash))
	}
	if msg.Bytes == 0 {
		return sdkerrors.ErrInvalidRequest.Wrap("bytes cannot be zero")
	}
	return nil
}
