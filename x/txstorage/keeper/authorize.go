package keeper

import (
	"errors"
	"fmt"
	"math"

	"cosmossdk.io/collections"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/ethereum/go-ethereum/common"

	"blobchain/x/txstorage/types"
)

// AuthorizeAccount grants an account the right to store up to transactions
// payloads totalling up to byteLimit bytes, expiring after the configured
// authorization period.
func (k Keeper) AuthorizeAccount(ctx sdk.Context, who sdk.AccAddress, transactions uint32, byteLimit uint64) error {
	if err := k.authorize(ctx, types.AccountScope(who), transactions, byteLimit); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAccountAuthorized,
			sdk.NewAttribute(types.AttributeKeyAccount, who.String()),
			sdk.NewAttribute(types.AttributeKeyTransactions, fmt.Sprintf("%d", transactions)),
			sdk.NewAttribute(types.AttributeKeyBytes, fmt.Sprintf("%d", byteLimit)),
		),
	)
	return nil
}

// AuthorizePreimage grants anyone the right to store the single payload
// whose content hash matches, up to byteLimit bytes.
func (k Keeper) AuthorizePreimage(ctx sdk.Context, hash common.Hash, byteLimit uint64) error {
	// A preimage authorized with a given hash must be uploaded in one
	// transaction.
	if err := k.authorize(ctx, types.PreimageScope(hash), 1, byteLimit); err != nil {
		return err
	}
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePreimageAuthorized,
			sdk.NewAttribute(types.AttributeKeyContentHash, hash.Hex()),
			sdk.NewAttribute(types.AttributeKeyBytes, fmt.Sprintf("%d", byteLimit)),
		),
	)
	return nil
}

func (k Keeper) authorize(ctx sdk.Context, scope []byte, transactions uint32, byteLimit uint64) error {
	params := k.GetParams(ctx)

	height := uint64(ctx.BlockHeight())
	expiry := height + params.AuthorizationPeriod
	if expiry < height {
		return fmt.Errorf("authorization expiry overflow")
	}

	// Credit the scope. Extents saturate rather than fail; an operator
	// granting close to the maximum has bigger problems.
	usage, err := k.AuthorizationUsage.Get(ctx, scope)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return fmt.Errorf("failed to read authorization usage: %w", err)
	}
	usage.Unused.Transactions = satAdd32(usage.Unused.Transactions, transactions)
	usage.Unused.Bytes = satAdd64(usage.Unused.Bytes, byteLimit)
	if err := k.AuthorizationUsage.Set(ctx, scope, usage); err != nil {
		return fmt.Errorf("failed to persist authorization usage: %w", err)
	}

	// Record the grant for expiration.
	list, err := k.AuthorizationsByExpiry.Get(ctx, expiry)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return fmt.Errorf("failed to read expiring authorizations: %w", err)
	}
	if uint64(len(list.Authorizations)) >= uint64(params.MaxBlockAuthorizationExpiries) {
		return types.ErrTooManyAuthorizations
	}
	list.Authorizations = append(list.Authorizations, types.Authorization{
		Scope:  scope,
		Extent: types.AuthorizationExtent{Transactions: transactions, Bytes: byteLimit},
	})
	if err := k.AuthorizationsByExpiry.Set(ctx, expiry, list); err != nil {
		return fmt.Errorf("failed to persist expiring authorizations: %w", err)
	}
	return nil
}

// useAuthorization consumes one transaction and size bytes from the scope
// covering this store call: the sender's account scope when the call is
// signed, the content preimage scope otherwise.
func (k Keeper) useAuthorization(ctx sdk.Context, sender sdk.AccAddress, contentHash common.Hash, size uint64) error {
	var scope []byte
	if len(sender) > 0 {
		scope = types.AccountScope(sender)
	} else {
		scope = types.PreimageScope(contentHash)
	}

	usage, err := k.AuthorizationUsage.Get(ctx, scope)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return types.ErrNotAuthorized
		}
		return fmt.Errorf("failed to read authorization usage: %w", err)
	}
	if usage.Unused.Transactions < 1 || usage.Unused.Bytes < size {
		return types.ErrNotAuthorized
	}

	usage.Unused.Transactions--
	usage.Unused.Bytes -= size
	usage.Used.Transactions = satAdd32(usage.Used.Transactions, 1)
	usage.Used.Bytes = satAdd64(usage.Used.Bytes, size)
	if err := k.AuthorizationUsage.Set(ctx, scope, usage); err != nil {
		return fmt.Errorf("failed to persist authorization usage: %w", err)
	}
	return nil
}

// expireAuthorizations unwinds the grants whose expiry height is the given
// block. Used extent is released first so an expired-but-consumed grant
// does not strand unused extent from a younger one.
func (k Keeper) expireAuthorizations(ctx sdk.Context, height uint64) error {
	list, err := k.AuthorizationsByExpiry.Get(ctx, height)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read expiring authorizations: %w", err)
	}
	if err := k.AuthorizationsByExpiry.Remove(ctx, height); err != nil {
		return fmt.Errorf("failed to clear expiring authorizations: %w", err)
	}

	for _, auth := range list.Authorizations {
		usage, err := k.AuthorizationUsage.Get(ctx, auth.Scope)
		if err != nil {
			if errors.Is(err, collections.ErrNotFound) {
				continue
			}
			return fmt.Errorf("failed to read authorization usage: %w", err)
		}

		unusedTransactions := satSub32(auth.Extent.Transactions, usage.Used.Transactions)
		unusedBytes := satSub64(auth.Extent.Bytes, usage.Used.Bytes)

		usage.Used.Transactions = satSub32(usage.Used.Transactions, auth.Extent.Transactions)
		usage.Used.Bytes = satSub64(usage.Used.Bytes, auth.Extent.Bytes)
		usage.Unused.Transactions = satSub32(usage.Unused.Transactions, unusedTransactions)
		usage.Unused.Bytes = satSub64(usage.Unused.Bytes, unusedBytes)

		if usage.IsZero() {
			if err := k.AuthorizationUsage.Remove(ctx, auth.Scope); err != nil {
				return fmt.Errorf("failed to remove authorization usage: %w", err)
			}
			continue
		}
		if err := k.AuthorizationUsage.Set(ctx, auth.Scope, usage); err != nil {
			return fmt.Errorf("failed to persist authorization usage: %w", err)
		}
	}
	return nil
}

// UnusedAccountAuthorizationExtent returns the unexpired, unconsumed extent
// granted to the given account.
func (k Keeper) UnusedAccountAuthorizationExtent(ctx sdk.Context, who sdk.AccAddress) types.AuthorizationExtent {
	usage, err := k.AuthorizationUsage.Get(ctx, types.AccountScope(who))
	if err != nil {
		return types.AuthorizationExtent{}
	}
	return usage.Unused
}

// UnusedPreimageAuthorizationExtent returns the unexpired, unconsumed
// extent granted for the given content hash.
func (k Keeper) UnusedPreimageAuthorizationExtent(ctx sdk.Context, hash common.Hash) types.AuthorizationExtent {
	usage, err := k.AuthorizationUsage.Get(ctx, types.PreimageScope(hash))
	if err != nil {
		return types.AuthorizationExtent{}
	}
	return usage.Unused
}

func satAdd32(a, b uint32) uint32 {
	if a > math.MaxUint32-b {
		return math.MaxUint32
	}
	return a + b
}

func satAdd64(a, b uint64) uint64 {
	if a > math.MaxUint64-b {
		return math.MaxUint64
	}
	return a + b
}

func satSub32(a, b uint32) uint32 {
	if b > a {
		return 0
	}
	return a - b
}

func satSub64(a, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
