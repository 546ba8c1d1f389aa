package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func TestSend(t *testing.T) {
	srv := httptest.NewServer(handlers.APIMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    state.New(state.Config{}),
		Evts:     events.New(),
	}))
	defer srv.Close()

	url = srv.URL
	ctx := context.Background()

	t.Log("Given the need to talk to a node.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen sending a transaction and mining it.", testID)
		{
			var pool []database.Tx
			if err := send(ctx, http.MethodPost, "/transactions/new", database.NewTx("alice", "bob", 1.5), &pool); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to send a transaction : %v", failed, testID, err)
			}
			if len(pool) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould see the transaction pending : %d", failed, testID, len(pool))
			}
			t.Logf("\t%s\tTest %d:\tShould see the transaction pending.", success, testID)

			var resp struct {
				Hash database.BlockHash `json:"hash"`
			}
			if err := send(ctx, http.MethodGet, "/mine", nil, &resp); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to mine : %v", failed, testID, err)
			}

			var snapshot state.Snapshot
			if err := send(ctx, http.MethodGet, "/chain", nil, &snapshot); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to read the chain : %v", failed, testID, err)
			}
			if len(snapshot.Chain) != 2 || snapshot.Chain[1].PrevHash != resp.Hash {
				t.Fatalf("\t%s\tTest %d:\tShould link the mined block to the returned hash.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould link the mined block to the returned hash.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the node rejects a request.", testID)
		{
			err := send(ctx, http.MethodPost, "/transactions/new", map[string]string{"sender": "alice"}, nil)
			if err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould return an error.", failed, testID)
			}
			if !strings.Contains(err.Error(), "status[400]") || !strings.Contains(err.Error(), "amount") {
				t.Fatalf("\t%s\tTest %d:\tShould describe the failed fields : %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould describe the failed fields.", success, testID)
		}
	}
}
