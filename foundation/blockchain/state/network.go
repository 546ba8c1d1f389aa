package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// validate holds the schema rules for snapshots received from peers.
var validate = validator.New(validator.WithRequiredStructEnabled())

// HTTPFetcher retrieves a peer's ledger over HTTP using the chain endpoint.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher constructs a fetcher. A timeout of zero means requests to
// peers never time out on their own.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// FetchChain performs a GET on <host>/chain and decodes the snapshot. The
// response must match the snapshot schema exactly.
func (f *HTTPFetcher) FetchChain(ctx context.Context, host string) (Snapshot, error) {
	url := fmt.Sprintf("%s/chain", strings.TrimSuffix(host, "/"))

	var snapshot Snapshot
	if err := get(ctx, f.client, url, &snapshot); err != nil {
		return Snapshot{}, err
	}

	if err := validate.Struct(snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s: %w", ErrPeerMalformedResponse, host, err)
	}

	return snapshot, nil
}

// =============================================================================

// get is a helper function to send a GET request to a node and decode the
// JSON response.
func get(ctx context.Context, client *http.Client, url string, dataRecv any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPeerUnreachable, url, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPeerUnreachable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: status[%d]: %s", ErrPeerUnreachable, url, resp.StatusCode, bytes.TrimSpace(msg))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dataRecv); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPeerMalformedResponse, url, err)
	}

	return nil
}
