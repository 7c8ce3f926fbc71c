package keeper

import (
	"context"

	"cosmossdk.io/math"
)

// StorageFeeInput returns the fee basis for storing size bytes for one
// storage period: size x byte fee x retention length. The host's fee layer
// turns this into an actual charge; no currency mechanics live here.
func (k Keeper) StorageFeeInput(ctx context.Context, size uint64) math.Int {
	params := k.GetParams(ctx)
	return math.NewIntFromUint64(size).
		Mul(math.NewIntFromUint64(params.ByteFee)).
		Mul(math.NewIntFromUint64(params.StoragePeriod))
}
