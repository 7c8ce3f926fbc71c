package types

import errorsmod "cosmossdk.io/errors"

// txstorage module sentinel errors
var (
	// ErrEmptyTransaction rejects a store call with no data.
	ErrEmptyTransaction = errorsmod.Register(ModuleName, 2, "attempting to store empty transaction")
	// ErrTransactionTooLarge rejects data above MaxTransactionSize.
	ErrTransactionTooLarge = errorsmod.Register(ModuleName, 3, "transaction is too large")
	// ErrTooManyTransactions rejects a store once the block quota is full.
	ErrTooManyTransactions = errorsmod.Register(ModuleName, 4, "too many transactions in the block")
	// ErrRenewedNotFound rejects a renewal of an unknown or expired payload.
	ErrRenewedNotFound = errorsmod.Register(ModuleName, 5, "renewed transaction not found")
	// ErrNotAuthorized rejects a store without a covering authorization.
	ErrNotAuthorized = errorsmod.Register(ModuleName, 6, "not authorized to store the given data")
	// ErrTooManyAuthorizations rejects a grant once the expiry-height bucket is full.
	ErrTooManyAuthorizations = errorsmod.Register(ModuleName, 7, "cannot add any new authorizations")
	// ErrUnexpectedProof rejects a proof when no challenge is open.
	ErrUnexpectedProof = errorsmod.Register(ModuleName, 8, "proof was not expected in this block")
	// ErrDoubleCheck rejects a second proof within one block.
	ErrDoubleCheck = errorsmod.Register(ModuleName, 9, "double proof check in the block")
	// ErrInvalidProof rejects a proof whose recomputed root does not match.
	ErrInvalidProof = errorsmod.Register(ModuleName, 10, "proof failed verification")
	// ErrWrongChunkLength rejects a proof chunk whose length is inconsistent
	// with its position in the payload.
	ErrWrongChunkLength = errorsmod.Register(ModuleName, 11, "proof chunk has the wrong length")
	// ErrMissingStateData means the challenged payload's metadata is absent.
	ErrMissingStateData = errorsmod.Register(ModuleName, 12, "state data for proof verification is missing")
	// ErrProofNotChecked invalidates a block that ends without its mandatory proof.
	ErrProofNotChecked = errorsmod.Register(ModuleName, 13, "storage proof was not checked in the block")
)
