package state

import (
	"context"
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/pow"
)

// Mine seals every pending transaction into a new block. The proof of work
// search runs while the ledger is locked, so every other operation waits
// for it to finish. It returns the hash of the block that was the latest
// block before mining, which is the previous hash of the new block.
func (s *State) Mine(ctx context.Context) (database.BlockHash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: Mine: MINING: started")
	defer s.evHandler("state: Mine: MINING: completed")

	latest, exists := s.db.LatestBlock()
	if !exists {
		return database.BlockHash{}, ErrNoGenesisBlock
	}

	t := time.Now()

	proof, err := pow.FindProof(ctx, latest.Proof, pow.EventHandler(s.evHandler))
	if err != nil {
		return database.BlockHash{}, fmt.Errorf("finding proof: %w", err)
	}

	s.evHandler("state: Mine: MINING: proof[%d]: duration[%v]", proof, time.Since(t))

	prevHash, err := latest.Hash()
	if err != nil {
		return database.BlockHash{}, fmt.Errorf("%w: %w", ErrHashFailed, err)
	}

	// Nothing is changed until the new block is part of the chain.
	block := database.NewBlock(latest, prevHash, proof, s.mempool.Copy(), time.Now())
	if err := s.db.Write(block); err != nil {
		return database.BlockHash{}, fmt.Errorf("writing block: %w", err)
	}
	s.mempool.Truncate()

	s.evHandler("viewer: block: MINED: blk[%d]: prevHash[%s]: txs[%d]", block.Index, prevHash, len(block.Transactions))

	return prevHash, nil
}
