package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// nodeError covers the error bodies a node can respond with.
type nodeError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields"`
}

func (ne nodeError) err(status int) error {
	msg := ne.Error
	if msg == "" {
		msg = ne.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	if len(ne.Fields) > 0 {
		var b strings.Builder
		for field, reason := range ne.Fields {
			fmt.Fprintf(&b, " %s[%s]", field, reason)
		}
		msg += ":" + b.String()
	}

	return fmt.Errorf("node responded with status[%d]: %s", status, msg)
}

// send performs a request against the node and decodes the JSON response
// into dataRecv.
func send(ctx context.Context, method string, path string, dataSend any, dataRecv any) error {
	var body bytes.Buffer
	if dataSend != nil {
		if err := json.NewEncoder(&body).Encode(dataSend); err != nil {
			return err
		}
	}

	endpoint := strings.TrimSuffix(url, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var ne nodeError
		if err := json.NewDecoder(resp.Body).Decode(&ne); err != nil {
			return errors.Join(ne.err(resp.StatusCode), err)
		}
		return ne.err(resp.StatusCode)
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
