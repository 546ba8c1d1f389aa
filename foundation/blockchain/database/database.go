// Package database handles the lower level support for maintaining the
// blockchain in memory: the block and transaction model, block hashing and
// chain validation.
package database

import (
	"fmt"
	"time"
)

// Database manages the ordered set of blocks that make up the chain. It is
// not safe for concurrent use; the owner is expected to serialize access.
type Database struct {
	blocks []Block
}

// New constructs a database holding only the genesis block.
func New(now time.Time) *Database {
	return &Database{
		blocks: []Block{NewGenesis(now)},
	}
}

// Len returns the number of blocks in the chain.
func (db *Database) Len() int {
	return len(db.blocks)
}

// LatestBlock returns the last block in the chain. The boolean is false
// if the chain is empty.
func (db *Database) LatestBlock() (Block, bool) {
	if len(db.blocks) == 0 {
		return Block{}, false
	}

	return db.blocks[len(db.blocks)-1], true
}

// Write appends the block to the chain after checking it is the next block.
func (db *Database) Write(block Block) error {
	latest, exists := db.LatestBlock()
	if !exists {
		return fmt.Errorf("no genesis block to extend")
	}

	if block.Index != latest.Index+1 {
		return fmt.Errorf("this block is not the next number, got %d, exp %d", block.Index, latest.Index+1)
	}

	if err := block.ValidateNext(latest); err != nil {
		return err
	}

	db.blocks = append(db.blocks, block)

	return nil
}

// Replace swaps the entire chain for the specified blocks.
func (db *Database) Replace(blocks []Block) {
	db.blocks = copyBlocks(blocks)
}

// Copy returns a copy of the blocks in the chain.
func (db *Database) Copy() []Block {
	return copyBlocks(db.blocks)
}

// =============================================================================

// copyBlocks makes a deep enough copy so the caller can't change the
// transactions held by the chain.
func copyBlocks(blocks []Block) []Block {
	cpy := make([]Block, len(blocks))
	for i, block := range blocks {
		trans := make([]Tx, len(block.Transactions))
		copy(trans, block.Transactions)

		block.Transactions = trans
		cpy[i] = block
	}

	return cpy
}
