package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RetrieveHost returns a copy of host information.
func (s *State) RetrieveHost() string {
	return s.host
}

// RetrieveChain returns a snapshot of the full ledger.
func (s *State) RetrieveChain() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Chain:               s.db.Copy(),
		PendingTransactions: s.mempool.Copy(),
		Peers:               s.knownPeers.Hosts(),
	}
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	latest, _ := s.db.LatestBlock()
	return latest
}

// RetrieveMempool returns a copy of the mempool.
func (s *State) RetrieveMempool() []database.Tx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveKnownPeers retrieves a copy of the known peer list.
func (s *State) RetrieveKnownPeers() []peer.Peer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.knownPeers.Copy(s.host)
}
