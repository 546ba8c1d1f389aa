// Package state is the core API for the blockchain and implements all the
// business rules and processing.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
)

// Set of error variables for ledger processing.
var (
	ErrNoGenesisBlock        = errors.New("genesis block not found")
	ErrHashFailed            = errors.New("cannot calculate hash value")
	ErrPeerUnreachable       = errors.New("peer unreachable")
	ErrPeerMalformedResponse = errors.New("peer response malformed")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for background peer synchronization.
type Worker interface {
	Shutdown()
	SignalSync()
}

// Fetcher interface represents the behavior required to retrieve the ledger
// snapshot of a peer node.
type Fetcher interface {
	FetchChain(ctx context.Context, host string) (Snapshot, error)
}

// Snapshot is the full view of a ledger. It is what a node returns from
// its chain endpoint and what peers exchange during conflict resolution.
type Snapshot struct {
	Chain               []database.Block `json:"chain" validate:"required,min=1"`
	PendingTransactions []database.Tx    `json:"pending_transactions"`
	Peers               []string         `json:"peers"`
}

// =============================================================================

// Config represents the configuration required to start
// the blockchain node.
type Config struct {
	Host       string // Base url peers use to reach this node.
	KnownPeers *peer.PeerSet
	Fetcher    Fetcher
	EvHandler  EventHandler
}

// State manages the ledger: the chain, the pool of pending transactions and
// the set of known peers. A single mutex guards all of it and every
// operation holds it for its full duration, including the proof of work
// search and the peer requests made while resolving conflicts.
type State struct {
	host      string
	evHandler EventHandler
	fetcher   Fetcher
	mu        sync.Mutex

	knownPeers *peer.PeerSet
	mempool    *mempool.Mempool
	db         *database.Database

	Worker Worker
}

// New constructs a new ledger holding only the genesis block.
func New(cfg Config) *State {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	knownPeers := cfg.KnownPeers
	if knownPeers == nil {
		knownPeers = peer.NewPeerSet()
	}

	// A node asking itself for its chain would wait on its own lock.
	if cfg.Host != "" && knownPeers.Remove(peer.New(cfg.Host)) {
		ev("state: New: peer[%s]: removed: this node", cfg.Host)
	}

	fetcher := cfg.Fetcher
	if fetcher == nil {
		fetcher = NewHTTPFetcher(0)
	}

	db := database.New(time.Now())
	if genesis, exists := db.LatestBlock(); exists {
		ev("state: New: genesis: proof[%d]: timestamp[%d]", genesis.Proof, genesis.TimeStamp)
	}

	state := State{
		host:      cfg.Host,
		evHandler: ev,
		fetcher:   fetcher,

		knownPeers: knownPeers,
		mempool:    mempool.New(),
		db:         db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {
	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	// Stop all background activity.
	if s.Worker != nil {
		s.Worker.Shutdown()
	}

	return nil
}
