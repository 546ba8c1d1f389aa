// Package ledgergrp maintains the group of handlers for the ledger.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Chain returns the full chain along with the pending transactions and
// the known peers.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.State.RetrieveChain(), http.StatusOK)
}

// Mine seals the pending transactions into a new block and returns the
// hash of the block it was linked to.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hash, err := h.State.Mine(ctx)
	if err != nil {
		if errors.Is(err, state.ErrHashFailed) {
			return errs.NewTrusted(err, http.StatusInternalServerError)
		}
		return fmt.Errorf("mine: %w", err)
	}

	latest := h.State.RetrieveLatestBlock()
	metrics.SetBlocks(ctx, int(latest.Index))

	h.Log.Infow("mine", "traceid", web.GetTraceID(ctx), "index", latest.Index, "proof", latest.Proof, "prevhash", hash)

	return web.Respond(ctx, w, mined{Hash: hash}, http.StatusOK)
}

// NewTransaction adds a transaction to the pool of pending transactions
// and returns the pool.
func (h Handlers) NewTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(ntx); err != nil {
		return err
	}

	index, pool := h.State.AddTransactions([]database.Tx{toDBTx(ntx)})

	h.Log.Infow("add tran", "traceid", web.GetTraceID(ctx), "sender", *ntx.Sender, "recipient", *ntx.Recipient, "amount", *ntx.Amount, "block", index)

	return web.Respond(ctx, w, pool, http.StatusCreated)
}

// RegisterNodes adds the list of hosts to the known peers and returns every
// known peer.
func (h Handlers) RegisterNodes(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var hosts []string
	if err := web.Decode(r, &hosts); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if hosts == nil {
		return errs.NewTrusted(errors.New("please supply a valid list of nodes"), http.StatusBadRequest)
	}

	peers := h.State.RegisterPeers(hosts)

	h.Log.Infow("register nodes", "traceid", web.GetTraceID(ctx), "added", len(hosts), "known", len(peers))

	return web.Respond(ctx, w, peers, http.StatusCreated)
}

// Resolve runs the consensus algorithm against every known peer.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, err := h.State.ResolveConflicts(ctx)
	if err != nil {
		h.Log.Errorw("resolve", "traceid", web.GetTraceID(ctx), "ERROR", err)
		return web.Respond(ctx, w, errs.Message{Message: "cannot resolve"}, http.StatusInternalServerError)
	}

	resp := resolved{
		Replaced: replaced,
		Chain:    h.State.RetrieveChain(),
	}

	metrics.SetBlocks(ctx, len(resp.Chain.Chain))

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// The trace id is unique per request so it identifies the subscriber.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return nil
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
