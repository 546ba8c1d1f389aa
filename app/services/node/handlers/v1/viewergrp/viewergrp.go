// Package viewergrp serves a page that streams the ledger events of the
// node to a browser.
package viewergrp

import (
	"context"
	_ "embed"
	"net/http"

	"github.com/ardanlabs/ledger/foundation/web"
)

//go:embed index.html
var index []byte

// Index writes the viewer page. The page connects back to the events
// websocket of the node that served it.
func Index(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	web.SetStatusCode(ctx, http.StatusOK)

	w.Header().Set("Content-Type", "text/html; charset=UTF-8")
	w.WriteHeader(http.StatusOK)

	_, err := w.Write(index)
	return err
}
