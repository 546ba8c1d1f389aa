// Package mempool maintains the mempool for the blockchain.
package mempool

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents the ordered set of transactions waiting to be sealed
// into the next block. Transactions are kept in arrival order with no
// deduplication. A Mempool is not safe for concurrent use; the state that
// owns it serializes access.
type Mempool struct {
	pool []database.Tx
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{
		pool: []database.Tx{},
	}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the new
// size of the pool.
func (mp *Mempool) Add(tx database.Tx) int {
	mp.pool = append(mp.pool, tx)
	return len(mp.pool)
}

// Copy returns a copy of the pool in arrival order.
func (mp *Mempool) Copy() []database.Tx {
	cpy := make([]database.Tx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.pool = []database.Tx{}
}
