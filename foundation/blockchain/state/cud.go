package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// RegisterPeer adds the host to the set of known peers. The address is not
// validated in any way. It reports false if the host was already known or
// is the address of this node.
func (s *State) RegisterPeer(host string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isSelf(host) {
		s.evHandler("state: RegisterPeer: peer[%s]: SKIP: this node", host)
		return false
	}

	added := s.knownPeers.Add(peer.New(host))
	if added {
		s.evHandler("state: RegisterPeer: peer[%s]: added", host)
	}

	return added
}

// RegisterPeers adds the set of hosts to the known peers in order and
// returns every known peer afterwards.
func (s *State) RegisterPeers(hosts []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, host := range hosts {
		if s.isSelf(host) {
			s.evHandler("state: RegisterPeers: peer[%s]: SKIP: this node", host)
			continue
		}

		if s.knownPeers.Add(peer.New(host)) {
			s.evHandler("state: RegisterPeers: peer[%s]: added", host)
		}
	}

	return s.knownPeers.Hosts()
}

// isSelf reports whether the host is the address of this node.
func (s *State) isSelf(host string) bool {
	return s.host != "" && peer.New(host).Match(s.host)
}
