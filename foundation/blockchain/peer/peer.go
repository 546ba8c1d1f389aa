// Package peer maintains the peer related information such as the set
// of know peers and their status.
package peer

import (
	"net/url"
	"strings"
)

// Peer represents information about a Node in the network. Host is the
// base address used to reach the node, such as "http://localhost:8001".
type Peer struct {
	Host string
}

// New contructs a new info value.
func New(host string) Peer {
	return Peer{
		Host: host,
	}
}

// Match validates if the specified host matches this node. A base url and
// a bare host:port name the same node, so "http://127.0.0.1:8000/" matches
// "127.0.0.1:8000".
func (p Peer) Match(host string) bool {
	return address(p.Host) == address(host)
}

// String implements the fmt.Stringer interface.
func (p Peer) String() string {
	return p.Host
}

// address reduces a host to the lowercase host:port used for comparisons.
func address(host string) string {
	host = strings.TrimSpace(host)

	if u, err := url.Parse(host); err == nil && u.Host != "" {
		host = u.Host
	}

	return strings.ToLower(strings.TrimSuffix(host, "/"))
}

// =============================================================================

// PeerSet represents the data representation to maintain a set of known
// peers in registration order. The address of a peer is not validated. A
// PeerSet is not safe for concurrent use; the state that owns it serializes
// access.
type PeerSet struct {
	order []Peer
	set   map[string]struct{}
}

// NewPeerSet constructs a new info set to manage node peer information.
func NewPeerSet() *PeerSet {
	return &PeerSet{
		set: make(map[string]struct{}),
	}
}

// Add adds a new node to the end of the set. It reports false if the
// node was already known.
func (ps *PeerSet) Add(peer Peer) bool {
	key := address(peer.Host)
	if _, exists := ps.set[key]; exists {
		return false
	}

	ps.set[key] = struct{}{}
	ps.order = append(ps.order, peer)

	return true
}

// Remove removes a node from the set. It reports false if the node
// was not known.
func (ps *PeerSet) Remove(peer Peer) bool {
	key := address(peer.Host)
	if _, exists := ps.set[key]; !exists {
		return false
	}

	delete(ps.set, key)
	for i, p := range ps.order {
		if p.Match(peer.Host) {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}

	return true
}

// Len returns the number of known peers.
func (ps *PeerSet) Len() int {
	return len(ps.order)
}

// Copy returns the known peers in registration order, leaving out the
// specified host.
func (ps *PeerSet) Copy(host string) []Peer {
	peers := make([]Peer, 0, len(ps.order))
	for _, peer := range ps.order {
		if !peer.Match(host) {
			peers = append(peers, peer)
		}
	}

	return peers
}

// Hosts returns the host of every known peer in registration order.
func (ps *PeerSet) Hosts() []string {
	hosts := make([]string, len(ps.order))
	for i, peer := range ps.order {
		hosts[i] = peer.Host
	}

	return hosts
}
