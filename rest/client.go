// Package rest implements the identity-persistence contract on top of a
// remote REST backend: one HTTP client, one error classification, one call
// per operation.
package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const secretHeader = "x-auth-secret"

// Client is the gateway every backend call funnels through. It binds a base
// URL and the shared secret; it performs no retries and keeps no state
// between calls.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(baseURL, secret string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		http:    httpClient,
		log:     log,
	}
}

func (c *Client) Get(path string) (json.RawMessage, error) {
	return c.do(http.MethodGet, path, nil)
}

func (c *Client) Post(path string, body any) (json.RawMessage, error) {
	return c.do(http.MethodPost, path, body)
}

func (c *Client) Patch(path string, body any) (json.RawMessage, error) {
	return c.do(http.MethodPatch, path, body)
}

func (c *Client) Delete(path string) (json.RawMessage, error) {
	return c.do(http.MethodDelete, path, nil)
}

// do issues one request and classifies its outcome. A 2xx response yields
// the raw body; everything else yields an *APIError.
func (c *Client) do(method, path string, body any) (json.RawMessage, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, requestError(err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return nil, requestError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(secretHeader, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("backend unreachable",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, unreachableError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, unreachableError(err)
	}

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusError(resp.StatusCode)
	}

	return data, nil
}
