package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/app/services/node/handlers"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/peer"
	"github.com/ardanlabs/ledger/foundation/blockchain/state"
	"github.com/ardanlabs/ledger/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

type fetcher struct {
	snapshots map[string]state.Snapshot
}

func (f fetcher) FetchChain(ctx context.Context, host string) (state.Snapshot, error) {
	snapshot, exists := f.snapshots[host]
	if !exists {
		return state.Snapshot{}, state.ErrPeerUnreachable
	}
	return snapshot, nil
}

func newMux(st *state.State) http.Handler {
	return handlers.APIMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	})
}

func call(mux http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)
	return w
}

func TestLedgerRoutes(t *testing.T) {
	st := state.New(state.Config{})
	mux := newMux(st)

	t.Log("Given the need to drive the ledger over http.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen handling a transaction.", testID)
		{
			w := call(mux, http.MethodPost, "/transactions/new", `{"sender":"alice","recipient":"bob","amount":5}`)
			if w.Code != http.StatusCreated {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 201 for the response : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a status code of 201 for the response.", success, testID)

			var pool []database.Tx
			if err := json.NewDecoder(w.Body).Decode(&pool); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if len(pool) != 1 || pool[0] != database.NewTx("alice", "bob", 5) {
				t.Fatalf("\t%s\tTest %d:\tShould return the pending pool : %v", failed, testID, pool)
			}
			t.Logf("\t%s\tTest %d:\tShould return the pending pool.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen handling a transaction with a missing field.", testID)
		{
			w := call(mux, http.MethodPost, "/transactions/new", `{"sender":"","recipient":"bob"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 400 for the response : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a status code of 400 for the response.", success, testID)

			var er errs.Response
			if err := json.NewDecoder(w.Body).Decode(&er); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if _, exists := er.Fields["amount"]; !exists || len(er.Fields) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould only report the missing amount : %v", failed, testID, er.Fields)
			}
			t.Logf("\t%s\tTest %d:\tShould only report the missing amount.", success, testID)

			if n := len(st.RetrieveMempool()); n != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould leave the pool unchanged : %d", failed, testID, n)
			}
			t.Logf("\t%s\tTest %d:\tShould leave the pool unchanged.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen handling a mine request.", testID)
		{
			genesis := st.RetrieveLatestBlock()

			w := call(mux, http.MethodGet, "/mine", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a status code of 200 for the response.", success, testID)

			var resp struct {
				Hash database.BlockHash `json:"hash"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}

			want, err := genesis.Hash()
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to hash the genesis block : %v", failed, testID, err)
			}
			if resp.Hash != want {
				t.Fatalf("\t%s\tTest %d:\tShould return the hash of the genesis block : got %s, exp %s", failed, testID, resp.Hash, want)
			}
			t.Logf("\t%s\tTest %d:\tShould return the hash of the genesis block.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen handling a chain request.", testID)
		{
			w := call(mux, http.MethodGet, "/chain", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}

			var snapshot state.Snapshot
			if err := json.NewDecoder(w.Body).Decode(&snapshot); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if len(snapshot.Chain) != 2 || len(snapshot.PendingTransactions) != 0 {
				t.Fatalf("\t%s\tTest %d:\tShould hold two blocks and no pending transactions : %d %d", failed, testID, len(snapshot.Chain), len(snapshot.PendingTransactions))
			}
			if len(snapshot.Chain[1].Transactions) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould seal the transaction in the mined block.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould return the mined chain.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen registering nodes.", testID)
		{
			w := call(mux, http.MethodPost, "/nodes/register", `["http://peerA","http://peerB","http://peerA"]`)
			if w.Code != http.StatusCreated {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 201 for the response : %v", failed, testID, w.Code)
			}

			var hosts []string
			if err := json.NewDecoder(w.Body).Decode(&hosts); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if len(hosts) != 2 || hosts[0] != "http://peerA" || hosts[1] != "http://peerB" {
				t.Fatalf("\t%s\tTest %d:\tShould return each peer once in order : %v", failed, testID, hosts)
			}
			t.Logf("\t%s\tTest %d:\tShould return each peer once in order.", success, testID)

			w = call(mux, http.MethodPost, "/nodes/register", `{"nodes":"http://peerC"}`)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("\t%s\tTest %d:\tShould reject a body that is not a list : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould reject a body that is not a list.", success, testID)
		}
	}
}

func TestResolveRoute(t *testing.T) {
	remote := state.New(state.Config{})
	for i := 0; i < 2; i++ {
		remote.AddTransaction(database.NewTx("alice", "bob", 1))
		if _, err := remote.Mine(context.Background()); err != nil {
			t.Fatalf("Should be able to mine : %v", err)
		}
	}

	known := peer.NewPeerSet()
	known.Add(peer.New("http://peerA"))

	st := state.New(state.Config{
		KnownPeers: known,
		Fetcher:    fetcher{snapshots: map[string]state.Snapshot{"http://peerA": remote.RetrieveChain()}},
	})
	st.AddTransaction(database.NewTx("carol", "dave", 2))
	mux := newMux(st)

	t.Log("Given the need to resolve conflicts over http.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen a peer holds a longer valid chain.", testID)
		{
			w := call(mux, http.MethodPost, "/nodes/resolve", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}

			var resp struct {
				Replaced bool           `json:"replaced"`
				Chain    state.Snapshot `json:"chain"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if !resp.Replaced || len(resp.Chain.Chain) != 3 {
				t.Fatalf("\t%s\tTest %d:\tShould adopt the peer chain : %t %d", failed, testID, resp.Replaced, len(resp.Chain.Chain))
			}
			t.Logf("\t%s\tTest %d:\tShould adopt the peer chain.", success, testID)

			if len(resp.Chain.PendingTransactions) != 1 {
				t.Fatalf("\t%s\tTest %d:\tShould keep the pending transactions.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould keep the pending transactions.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen resolving again.", testID)
		{
			w := call(mux, http.MethodPost, "/nodes/resolve", "")

			var resp struct {
				Replaced bool `json:"replaced"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if resp.Replaced {
				t.Fatalf("\t%s\tTest %d:\tShould not replace a chain of the same length.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not replace a chain of the same length.", success, testID)
		}
	}
}

func TestViewerRoute(t *testing.T) {
	mux := newMux(state.New(state.Config{}))

	t.Log("Given the need to watch ledger events from a browser.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen requesting the viewer page.", testID)
		{
			w := call(mux, http.MethodGet, "/viewer", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}
			if !strings.Contains(w.Body.String(), "/events") {
				t.Fatalf("\t%s\tTest %d:\tShould connect the page to the events stream.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould serve the page connected to the events stream.", success, testID)
		}
	}
}

func TestResolveCancelled(t *testing.T) {
	known := peer.NewPeerSet()
	known.Add(peer.New("http://peerA"))

	st := state.New(state.Config{
		KnownPeers: known,
		Fetcher:    fetcher{snapshots: map[string]state.Snapshot{}},
	})
	mux := newMux(st)

	t.Log("Given the need to report a resolve that could not finish.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen the request is cancelled before any peer is asked.", testID)
		{
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			r := httptest.NewRequest(http.MethodPost, "/nodes/resolve", nil).WithContext(ctx)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, r)

			if w.Code != http.StatusInternalServerError {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 500 for the response : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould receive a status code of 500 for the response.", success, testID)

			var msg errs.Message
			if err := json.NewDecoder(w.Body).Decode(&msg); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if msg.Message != "cannot resolve" {
				t.Fatalf("\t%s\tTest %d:\tShould report that it cannot resolve : %q", failed, testID, msg.Message)
			}
			t.Logf("\t%s\tTest %d:\tShould report that it cannot resolve.", success, testID)
		}
	}
}

func TestDebugChecks(t *testing.T) {
	st := state.New(state.Config{Host: "http://localhost:8000"})
	mux := handlers.DebugMux("test", zap.NewNop().Sugar(), st)

	t.Log("Given the need to check the health of a node.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen checking liveness.", testID)
		{
			w := call(mux, http.MethodGet, "/debug/liveness", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}

			var resp struct {
				Status    string `json:"status"`
				PublicURL string `json:"publicURL"`
			}
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to unmarshal the response : %v", failed, testID, err)
			}
			if resp.Status != "up" || resp.PublicURL != "http://localhost:8000" {
				t.Fatalf("\t%s\tTest %d:\tShould report the node url : %+v", failed, testID, resp)
			}
			t.Logf("\t%s\tTest %d:\tShould report the node url.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen checking readiness.", testID)
		{
			w := call(mux, http.MethodGet, "/debug/readiness", "")
			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tTest %d:\tShould receive a status code of 200 for the response : %v", failed, testID, w.Code)
			}
			t.Logf("\t%s\tTest %d:\tShould be ready once the genesis block exists.", success, testID)
		}
	}
}
