package database

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Set of error variables for block processing.
var (
	ErrSerialization = errors.New("block cannot be serialized")
	ErrInvalidChain  = errors.New("invalid chain")
)

// GenesisProof is the proof stamped on the genesis block. It seeds the
// puzzle for the first mined block.
const GenesisProof uint64 = 100

// =============================================================================

// Block represents a group of transactions sealed together. The field order
// of this struct is the canonical serialization used for hashing and must
// not change.
type Block struct {
	Index        uint64    `json:"index"`         // Position in the chain, starting at 1.
	TimeStamp    int64     `json:"timestamp"`     // Milliseconds since epoch when the block was sealed.
	Transactions []Tx      `json:"transactions"`  // Pool contents at sealing time in arrival order.
	Proof        uint64    `json:"proof"`         // Solution to the puzzle seeded with the previous proof.
	PrevHash     BlockHash `json:"previous_hash"` // Hash of the previous block in the chain.
}

// NewGenesis constructs the fixed first block of every chain.
func NewGenesis(now time.Time) Block {
	return Block{
		Index:        1,
		TimeStamp:    now.UnixMilli(),
		Transactions: []Tx{},
		Proof:        GenesisProof,
		PrevHash:     ZeroHash,
	}
}

// NewBlock constructs the block that follows the previous block.
func NewBlock(prevBlock Block, prevHash BlockHash, proof uint64, trans []Tx, now time.Time) Block {
	if trans == nil {
		trans = []Tx{}
	}

	return Block{
		Index:        prevBlock.Index + 1,
		TimeStamp:    now.UnixMilli(),
		Transactions: trans,
		Proof:        proof,
		PrevHash:     prevHash,
	}
}

// Hash returns the unique hash for the block.
func (b Block) Hash() (BlockHash, error) {
	return Hash(b)
}

// ValidateNext checks the block correctly follows the previous block. The
// parent hash must match and the proof must solve the puzzle seeded with
// the previous proof.
func (b Block) ValidateNext(prevBlock Block) error {
	prevHash, err := prevBlock.Hash()
	if err != nil {
		return err
	}

	if !b.PrevHash.Equal(prevHash) {
		return fmt.Errorf("parent block hash doesn't match, got %s, exp %s", b.PrevHash, prevHash)
	}

	if !pow.ValidProof(prevBlock.Proof, b.Proof) {
		return fmt.Errorf("proof %d does not solve the puzzle for parent proof %d", b.Proof, prevBlock.Proof)
	}

	return nil
}

// =============================================================================

// Hash returns the SHA-256 digest of the canonical JSON encoding of the block.
func Hash(b Block) (BlockHash, error) {

	// A nil and an empty transaction list are the same block.
	if b.Transactions == nil {
		b.Transactions = []Tx{}
	}

	data, err := json.Marshal(b)
	if err != nil {
		return BlockHash{}, fmt.Errorf("%w: blk[%d]: %w", ErrSerialization, b.Index, err)
	}

	return sha256.Sum256(data), nil
}

// ValidateChain checks that every block is linked to its predecessor by
// hash and carries a proof that solves the puzzle seeded by the
// predecessor's proof. Block indexes and genesis content are not checked.
// A chain with one block or less is valid.
func ValidateChain(chain []Block) error {
	for i := 1; i < len(chain); i++ {
		if err := chain[i].ValidateNext(chain[i-1]); err != nil {
			return fmt.Errorf("%w: blk[%d]: %w", ErrInvalidChain, chain[i].Index, err)
		}
	}

	return nil
}
