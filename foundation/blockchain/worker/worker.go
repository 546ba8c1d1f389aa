// Package worker implements the background peer synchronization for the
// blockchain.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/state"
)

// =============================================================================

// Worker manages the peer sync workflow for the blockchain.
type Worker struct {
	state     *state.State
	wg        sync.WaitGroup
	ticker    *time.Ticker
	shut      chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	syncs     chan bool
	evHandler state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the background process. Conflicts with peers are resolved
// every interval, and on demand through SignalSync. An interval of zero
// turns off the periodic sync.
func Run(st *state.State, evHandler state.EventHandler, interval time.Duration) *Worker {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	ctx, cancel := context.WithCancel(context.Background())

	w := Worker{
		state:     st,
		shut:      make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
		syncs:     make(chan bool, 1),
		evHandler: evHandler,
	}

	if interval > 0 {
		w.ticker = time.NewTicker(interval)
	}

	// Register this worker with the state package.
	st.Worker = &w

	w.wg.Add(1)

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.syncOperations()
	}()

	<-hasStarted

	// Update this node with the known peers before anything else.
	if len(st.RetrieveKnownPeers()) > 0 {
		w.SignalSync()
	}

	return &w
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	if w.ticker != nil {
		w.evHandler("worker: shutdown: stop ticker")
		w.ticker.Stop()
	}

	w.evHandler("worker: shutdown: cancel peer requests")
	w.cancel()

	w.evHandler("worker: shutdown: terminate goroutines")
	close(w.shut)
	w.wg.Wait()
}

// SignalSync starts a sync operation. If there is already a signal pending
// in the channel, just return since a sync operation will start.
func (w *Worker) SignalSync() {
	select {
	case w.syncs <- true:
		w.evHandler("worker: SignalSync: sync signaled")
	default:
	}
}

// =============================================================================

// syncOperations handles resolving conflicts with the known peers.
func (w *Worker) syncOperations() {
	w.evHandler("worker: syncOperations: G started")
	defer w.evHandler("worker: syncOperations: G completed")

	// A nil channel blocks forever which turns off the periodic sync.
	var tick <-chan time.Time
	if w.ticker != nil {
		tick = w.ticker.C
	}

	for {
		select {
		case <-w.syncs:
			if !w.isShutdown() {
				w.runSyncOperation()
			}
		case <-tick:
			if !w.isShutdown() {
				w.runSyncOperation()
			}
		case <-w.shut:
			w.evHandler("worker: syncOperations: received shut signal")
			return
		}
	}
}

// runSyncOperation resolves conflicts with every known peer.
func (w *Worker) runSyncOperation() {
	w.evHandler("worker: runSyncOperation: started")
	defer w.evHandler("worker: runSyncOperation: completed")

	replaced, err := w.state.ResolveConflicts(w.ctx)
	if err != nil {
		w.evHandler("worker: runSyncOperation: ERROR: %s", err)
		return
	}

	w.evHandler("worker: runSyncOperation: replaced[%t]: latest-blknum[%d]", replaced, w.state.RetrieveLatestBlock().Index)
}

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
