package state

import (
	"context"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// IsValidChain reports whether every block in the chain is linked to its
// predecessor by hash and carries a valid proof. It does not check block
// indexes or the content of the genesis block.
func IsValidChain(chain []database.Block) bool {
	return database.ValidateChain(chain) == nil
}

// ResolveConflicts asks every known peer, in registration order, for its
// chain and adopts any chain that is both longer than the local chain and
// valid. Each peer is compared with the local chain as it stands at that
// moment, so a later peer only wins over an earlier one if its chain is
// longer still. Peers that can't be reached, return a malformed response or
// hold an invalid chain are skipped. The pool of pending transactions is
// left untouched. It reports true if the local chain was replaced. An error
// is only returned if the context is done before every peer was asked.
func (s *State) ResolveConflicts(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: ResolveConflicts: started: peers[%d]", s.knownPeers.Len())
	defer s.evHandler("state: ResolveConflicts: completed")

	var replaced bool
	for _, pr := range s.knownPeers.Copy(s.host) {
		if err := ctx.Err(); err != nil {
			return replaced, err
		}

		snapshot, err := s.fetcher.FetchChain(ctx, pr.Host)
		if err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: SKIP: %s", pr, err)
			continue
		}

		if len(snapshot.Chain) <= s.db.Len() {
			s.evHandler("state: ResolveConflicts: peer[%s]: SKIP: chain not longer: peer[%d]: local[%d]", pr, len(snapshot.Chain), s.db.Len())
			continue
		}

		if err := database.ValidateChain(snapshot.Chain); err != nil {
			s.evHandler("state: ResolveConflicts: peer[%s]: SKIP: %s", pr, err)
			continue
		}

		s.db.Replace(snapshot.Chain)
		replaced = true

		s.evHandler("viewer: chain: REPLACED: peer[%s]: length[%d]", pr, len(snapshot.Chain))
	}

	return replaced, nil
}
