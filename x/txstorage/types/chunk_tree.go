package types

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Chunk tree rules:
// - the payload is split into chunkSize chunks; the last chunk keeps its
//   true length and is never zero-padded
// - leaf i is keccak256(chunk_i)
// - leaves are ordered; if a level has odd length, the last element is
//   duplicated (an unpaired node is hashed with itself)
// - internal node hash: keccak256(left || right)
// - a single-leaf tree has root keccak256(leaf || leaf)
//
// The same rules are applied by commit, proof building and verification;
// they are part of the wire-compatible commitment format.

// NumChunks returns ceil(size / chunkSize).
func NumChunks(size uint64, chunkSize uint64) uint64 {
	if chunkSize == 0 {
		return 0
	}
	return (size + chunkSize - 1) / chunkSize
}

// ChunkLength returns the expected byte length of the chunk at index for a
// payload of the given size.
func ChunkLength(size uint64, chunkSize uint64, index uint64) uint64 {
	count := NumChunks(size, chunkSize)
	if index+1 < count {
		return chunkSize
	}
	return size - (count-1)*chunkSize
}

// ChunkRoot splits data into chunks and commits to them with a keccak256
// Merkle root. Pure and deterministic; identical input yields an identical
// root on every node.
func ChunkRoot(data []byte, chunkSize uint64) (common.Hash, uint64, error) {
	if len(data) == 0 {
		return common.Hash{}, 0, ErrEmptyTransaction
	}
	leaves := chunkLeaves(data, chunkSize)
	root, _ := chunkMerkleRootAndPaths(leaves)
	return root, uint64(len(leaves)), nil
}

// BuildChunkProof produces the honest proof for the chunk at index: the raw
// chunk bytes and the sibling path from its leaf to the root.
func BuildChunkProof(data []byte, chunkSize uint64, index uint64) (StorageProof, error) {
	if len(data) == 0 {
		return StorageProof{}, ErrEmptyTransaction
	}
	leaves := chunkLeaves(data, chunkSize)
	if index >= uint64(len(leaves)) {
		return StorageProof{}, errorsmod.Wrapf(ErrInvalidProof, "chunk index %d out of range (%d chunks)", index, len(leaves))
	}
	_, paths := chunkMerkleRootAndPaths(leaves)

	start := index * chunkSize
	end := start + ChunkLength(uint64(len(data)), chunkSize, index)
	chunk := make([]byte, end-start)
	copy(chunk, data[start:end])

	return StorageProof{Chunk: chunk, Path: paths[index]}, nil
}

// VerifyChunkProof checks a StorageProof for the chunk at index against the
// committed root of a payload of the given size. It touches only the chunk
// and a logarithmic number of sibling hashes.
func VerifyChunkProof(root common.Hash, size uint64, chunkSize uint64, index uint64, proof StorageProof) error {
	count := NumChunks(size, chunkSize)
	if count == 0 || index >= count {
		return errorsmod.Wrapf(ErrInvalidProof, "chunk index %d out of range (%d chunks)", index, count)
	}
	if want := ChunkLength(size, chunkSize, index); uint64(len(proof.Chunk)) != want {
		return errorsmod.Wrapf(ErrWrongChunkLength, "chunk %d: got %d bytes, want %d", index, len(proof.Chunk), want)
	}
	if want := chunkPathDepth(count); len(proof.Path) != want {
		return errorsmod.Wrapf(ErrInvalidProof, "merkle path has %d nodes, want %d", len(proof.Path), want)
	}

	h := crypto.Keccak256(proof.Chunk)
	idx := index
	for _, sib := range proof.Path {
		if len(sib) != common.HashLength {
			return errorsmod.Wrapf(ErrInvalidProof, "merkle path node is %d bytes, want %d", len(sib), common.HashLength)
		}
		if idx%2 == 0 {
			h = crypto.Keccak256(h, sib)
		} else {
			h = crypto.Keccak256(sib, h)
		}
		idx /= 2
	}
	if common.BytesToHash(h) != root {
		return errorsmod.Wrap(ErrInvalidProof, "recomputed root does not match commitment")
	}
	return nil
}

func chunkLeaves(data []byte, chunkSize uint64) []common.Hash {
	count := NumChunks(uint64(len(data)), chunkSize)
	leaves := make([]common.Hash, 0, count)
	for start := uint64(0); start < uint64(len(data)); start += chunkSize {
		end := start + chunkSize
		if end > uint64(len(data)) {
			end = uint64(len(data))
		}
		leaves = append(leaves, crypto.Keccak256Hash(data[start:end]))
	}
	return leaves
}

// chunkPathDepth returns the sibling-path length for a tree with the given
// leaf count under the duplication rule above.
func chunkPathDepth(leafCount uint64) int {
	if leafCount <= 1 {
		return 1
	}
	depth := 0
	for w := leafCount; w > 1; w = (w + 1) / 2 {
		depth++
	}
	return depth
}

// chunkMerkleRootAndPaths computes the Merkle root and per-leaf sibling
// paths. paths[i] holds the 32-byte sibling nodes from leaf i to the root.
func chunkMerkleRootAndPaths(leaves []common.Hash) (common.Hash, [][][]byte) {
	if len(leaves) == 0 {
		return common.Hash{}, nil
	}
	if len(leaves) == 1 {
		leaf := leaves[0]
		root := crypto.Keccak256Hash(leaf.Bytes(), leaf.Bytes())
		return root, [][][]byte{{leaf.Bytes()}}
	}

	paths := make([][][]byte, len(leaves))
	indices := make([]int, len(leaves))
	level := make([]common.Hash, len(leaves))
	for i := range leaves {
		indices[i] = i
		level[i] = leaves[i]
	}

	for len(level) > 1 {
		if len(level)%2 == 1 {
			level = append(level, level[len(level)-1])
		}

		for i := range paths {
			idx := indices[i]
			sibling := level[idx^1]
			paths[i] = append(paths[i], sibling.Bytes())
			indices[i] = idx / 2
		}

		next := make([]common.Hash, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next[i/2] = crypto.Keccak256Hash(level[i].Bytes(), level[i+1].Bytes())
		}
		level = next
	}

	return level[0], paths
}
