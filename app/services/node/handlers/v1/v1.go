// Package v1 contains the full set of handler functions and routes
// supported by the node api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/viewergrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// The ledger routes are served from the root so peers can reach each
// other's chain at <host>/chain.
const group = ""

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// Routes binds all the ledger routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		WS:    websocket.Upgrader{},
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodGet, group, "/chain", lgh.Chain)
	app.Handle(http.MethodGet, group, "/mine", lgh.Mine)
	app.Handle(http.MethodPost, group, "/transactions/new", lgh.NewTransaction)
	app.Handle(http.MethodPost, group, "/nodes/register", lgh.RegisterNodes)
	app.Handle(http.MethodPost, group, "/nodes/resolve", lgh.Resolve)
	app.Handle(http.MethodGet, group, "/events", lgh.Events)

	app.Handle(http.MethodGet, group, "/viewer", viewergrp.Index)
}
