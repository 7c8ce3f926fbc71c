package types

// Event types
const (
	EventTypeStored             = "stored"
	EventTypeRenewed            = "renewed"
	EventTypeProofChecked       = "proof_checked"
	EventTypeAccountAuthorized  = "account_authorized"
	EventTypePreimageAuthorized = "preimage_authorized"

	AttributeKeyBlock        = "block"
	AttributeKeyIndex        = "index"
	AttributeKeyContentHash  = "content_hash"
	AttributeKeySize         = "size"
	AttributeKeyChunkRoot    = "chunk_root"
	AttributeKeyTargetBlock  = "target_block"
	AttributeKeyChunkIndex   = "chunk_index"
	AttributeKeyAccount      = "account"
	AttributeKeyTransactions = "transactions"
	AttributeKeyBytes        = "bytes"
)
