package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// AddTransaction appends the transaction to the pool of pending
// transactions. The returned block index is only advisory: it is the index
// the next mined block will have right now, but a chain replacement before
// that block is mined can change where the transaction lands.
func (s *State) AddTransaction(tx database.Tx) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.mempool.Add(tx)
	s.evHandler("state: AddTransaction: tx[%s]: pending[%d]", tx, n)

	latest, _ := s.db.LatestBlock()
	return latest.Index + 1
}

// AddTransactions appends the set of transactions to the pool in order. It
// returns the advisory block index along with the pending pool as it stands
// right after the append.
func (s *State) AddTransactions(txs []database.Tx) (uint64, []database.Tx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tx := range txs {
		n := s.mempool.Add(tx)
		s.evHandler("state: AddTransactions: tx[%s]: pending[%d]", tx, n)
	}

	latest, _ := s.db.LatestBlock()
	return latest.Index + 1, s.mempool.Copy()
}
