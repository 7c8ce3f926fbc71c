package types

import (
	"fmt"

	paramtypes "github.com/cosmos/cosmos-sdk/x/params/types"
)

var _ paramtypes.ParamSet = (*Params)(nil)

var (
	KeyChunkSize                     = []byte("ChunkSize")
	KeyMaxTransactionSize            = []byte("MaxTransactionSize")
	KeyMaxBlockTransactions          = []byte("MaxBlockTransactions")
	KeyStoragePeriod                 = []byte("StoragePeriod")
	KeyAuthorizationPeriod           = []byte("AuthorizationPeriod")
	KeyMaxBlockAuthorizationExpiries = []byte("MaxBlockAuthorizationExpiries")
	KeyByteFee                       = []byte("ByteFee")
)

// Params are the module's on-chain parameters. ChunkSize is part of the
// commitment format and must never change on a live chain; the rest are
// operational limits.
type Params struct {
	ChunkSize                     uint64 `json:"chunk_size"`
	MaxTransactionSize            uint64 `json:"max_transaction_size"`
	MaxBlockTransactions          uint32 `json:"max_block_transactions"`
	StoragePeriod                 uint64 `json:"storage_period"`
	AuthorizationPeriod           uint64 `json:"authorization_period"`
	MaxBlockAuthorizationExpiries uint32 `json:"max_block_authorization_expiries"`
	ByteFee                       uint64 `json:"byte_fee"`
}

// ParamKeyTable the param key table for the txstorage module
func ParamKeyTable() paramtypes.KeyTable {
	return paramtypes.NewKeyTable().RegisterParamSet(&Params{})
}

// NewParams creates a new Params instance.
func NewParams(
	chunkSize uint64,
	maxTransactionSize uint64,
	maxBlockTransactions uint32,
	storagePeriod uint64,
	authorizationPeriod uint64,
	maxBlockAuthorizationExpiries uint32,
	byteFee uint64,
) Params {
	return Params{
		ChunkSize:                     chunkSize,
		MaxTransactionSize:            maxTransactionSize,
		MaxBlockTransactions:          maxBlockTransactions,
		StoragePeriod:                 storagePeriod,
		AuthorizationPeriod:           authorizationPeriod,
		MaxBlockAuthorizationExpiries: maxBlockAuthorizationExpiries,
		ByteFee:                       byteFee,
	}
}

// DefaultParams returns a default set of parameters.
func DefaultParams() Params {
	return NewParams(
		DefaultChunkSize,
		DefaultMaxTransactionSize,
		DefaultMaxBlockTransactions,
		100800, // StoragePeriod: ~2 weeks of 12s blocks
		10,     // AuthorizationPeriod
		512,    // MaxBlockAuthorizationExpiries
		1,      // ByteFee
	)
}

// ParamSetPairs get the params.ParamSet
func (p *Params) ParamSetPairs() paramtypes.ParamSetPairs {
	return paramtypes.ParamSetPairs{
		paramtypes.NewParamSetPair(KeyChunkSize, &p.ChunkSize, validateNonZeroUint64),
		paramtypes.NewParamSetPair(KeyMaxTransactionSize, &p.MaxTransactionSize, validateNonZeroUint64),
		paramtypes.NewParamSetPair(KeyMaxBlockTransactions, &p.MaxBlockTransactions, validateNonZeroUint32),
		paramtypes.NewParamSetPair(KeyStoragePeriod, &p.StoragePeriod, validateNonZeroUint64),
		paramtypes.NewParamSetPair(KeyAuthorizationPeriod, &p.AuthorizationPeriod, validateNonZeroUint64),
		paramtypes.NewParamSetPair(KeyMaxBlockAuthorizationExpiries, &p.MaxBlockAuthorizationExpiries, validateNonZeroUint32),
		paramtypes.NewParamSetPair(KeyByteFee, &p.ByteFee, validateUint64),
	}
}

// Validate validates the set of params.
func (p Params) Validate() error {
	if err := validateNonZeroUint64(p.ChunkSize); err != nil {
		return fmt.Errorf("chunk_size: %w", err)
	}
	if err := validateNonZeroUint64(p.MaxTransactionSize); err != nil {
		return fmt.Errorf("max_transaction_size: %w", err)
	}
	if err := validateNonZeroUint32(p.MaxBlockTransactions); err != nil {
		return fmt.Errorf("max_block_transactions: %w", err)
	}
	if err := validateNonZeroUint64(p.StoragePeriod); err != nil {
		return fmt.Errorf("storage_period: %w", err)
	}
	if err := validateNonZeroUint64(p.AuthorizationPeriod); err != nil {
		return fmt.Errorf("authorization_period: %w", err)
	}
	if err := validateNonZeroUint32(p.MaxBlockAuthorizationExpiries); err != nil {
		return fmt.Errorf("max_block_authorization_expiries: %w", err)
	}
	return nil
}

func validateUint64(i interface{}) error {
	if _, ok := i.(uint64); !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	return nil
}

func validateNonZeroUint64(i interface{}) error {
	v, ok := i.(uint64)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 {
		return fmt.Errorf("must be non-zero")
	}
	return nil
}

func validateNonZeroUint32(i interface{}) error {
	v, ok := i.(uint32)
	if !ok {
		return fmt.Errorf("invalid parameter type: %T", i)
	}
	if v == 0 {
		return fmt.Errorf("must be non-zero")
	}
	return nil
}
