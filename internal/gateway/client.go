package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client encapsule la passerelle REST catalogue/commandes.
// Chaque appel est atomique côté passerelle ; il n'existe aucune transaction
// couvrant plusieurs appels, c'est le coordinateur de checkout qui compense.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Error couvre indifféremment panne réseau, 4xx et 5xx : pour l'appelant,
// l'étape a échoué, point.
type Error struct {
	Op     string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("passerelle %s: statut %d", e.Op, e.Status)
	}
	return fmt.Sprintf("passerelle %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	return c.do(op, req, out)
}

func (c *Client) postJSON(ctx context.Context, op, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(op, req, out)
}

func (c *Client) deleteJSON(ctx context.Context, op, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return &Error{Op: op, Err: err}
	}

	return c.do(op, req, nil)
}

func (c *Client) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &Error{Op: op, Status: resp.StatusCode}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Op: op, Err: err}
	}
	return nil
}
