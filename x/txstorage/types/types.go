package types

import (
	"github.com/ethereum/go-ethereum/common"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// DefaultChunkSize is the size in bytes of a single proof chunk. It is
	// part of the commitment format: changing it invalidates every stored
	// chunk root.
	DefaultChunkSize = 256

	// DefaultMaxTransactionSize bounds the data carried by one store call.
	DefaultMaxTransactionSize = 8 * 1024 * 1024

	// DefaultMaxBlockTransactions bounds the number of stored payloads per
	// block, which in turn bounds challenge-selection work.
	DefaultMaxBlockTransactions = 512
)

// TransactionInfo is the retained metadata for one stored payload. The raw
// bytes live off chain with the storage providers; the chain keeps only what
// proof verification needs.
type TransactionInfo struct {
	// ChunkRoot is the keccak256 Merkle root over the payload's chunk hashes.
	ChunkRoot common.Hash `json:"chunk_root"`
	// ContentHash is the plain hash of the full payload, used to address the
	// content for renewals and preimage authorizations.
	ContentHash common.Hash `json:"content_hash"`
	// Size of the payload in bytes.
	Size uint64 `json:"size"`
	// BlockChunks is the cumulative chunk count within the block up to and
	// including this transaction. Challenge selection binary-searches it.
	BlockChunks uint64 `json:"block_chunks"`
}

// TransactionList is the per-block sequence of stored transaction metadata.
type TransactionList struct {
	Transactions []TransactionInfo `json:"transactions"`
}

// TotalChunks returns the chunk count covered by the whole list.
func (l TransactionList) TotalChunks() uint64 {
	if len(l.Transactions) == 0 {
		return 0
	}
	return l.Transactions[len(l.Transactions)-1].BlockChunks
}

// StoredReceipt identifies a stored payload: the block it was accepted in
// and its index within that block. It is the handle used by Renew.
type StoredReceipt struct {
	Block uint64 `json:"block"`
	Index uint32 `json:"index"`
}

// StorageProof is the once-per-block response to the storage challenge: the
// challenged chunk and its Merkle path up to the recorded chunk root.
type StorageProof struct {
	Chunk []byte   `json:"chunk"`
	Path  [][]byte `json:"path"`
}

// Challenge is the derived spot-check target. It is recomputed from the
// block seed and ledger state on every node and never persisted.
type Challenge struct {
	// TargetBlock is the stored-at height whose payloads are being checked.
	TargetBlock uint64
	// TxIndex is the index of the challenged transaction within TargetBlock.
	TxIndex uint32
	// ChunkIndex is the chunk offset within the challenged transaction.
	ChunkIndex uint64
	// Info is the retained metadata of the challenged transaction.
	Info TransactionInfo
}

// AuthorizationExtent is the number of transactions and bytes covered by an
// authorization or set of authorizations.
type AuthorizationExtent struct {
	Transactions uint32 `json:"transactions"`
	Bytes        uint64 `json:"bytes"`
}

// AuthorizationUsage tracks consumption of unexpired authorizations for one
// scope. Expiry consumes from the used pool first.
type AuthorizationUsage struct {
	Used   AuthorizationExtent `json:"used"`
	Unused AuthorizationExtent `json:"unused"`
}

// IsZero reports whether no extent remains in either pool.
func (u AuthorizationUsage) IsZero() bool {
	return u.Used == AuthorizationExtent{} && u.Unused == AuthorizationExtent{}
}

// Authorization is one grant, kept keyed by expiry height so it can be
// unwound when it lapses.
type Authorization struct {
	Scope  []byte              `json:"scope"`
	Extent AuthorizationExtent `json:"extent"`
}

// AuthorizationList groups the authorizations expiring at one height.
type AuthorizationList struct {
	Authorizations []Authorization `json:"authorizations"`
}

const (
	scopeTagAccount  = 0x00
	scopeTagPreimage = 0x01
)

// AccountScope returns the usage-map key authorizing a specific account to
// store arbitrary data.
func AccountScope(addr sdk.AccAddress) []byte {
	out := make([]byte, 0, 1+len(addr))
	out = append(out, scopeTagAccount)
	return append(out, addr.Bytes()...)
}

// PreimageScope returns the usage-map key authorizing anyone to store the
// payload with the given content hash.
func PreimageScope(hash common.Hash) []byte {
	out := make([]byte, 0, 1+common.HashLength)
	out = append(out, scopeTagPreimage)
	return append(out, hash.Bytes()...)
}
