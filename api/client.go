// Package api is the HTTP client of the extraction and download service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/downify/downify/auth"
	"github.com/downify/downify/constant"
	"github.com/downify/downify/filesystem"
	"github.com/downify/downify/key"
	"github.com/downify/downify/log"
	"github.com/downify/downify/media"
	"github.com/downify/downify/network"
	"github.com/downify/downify/util"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// Client talks to a single service instance.
type Client struct {
	base  string
	http  *http.Client
	token string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the shared network client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithToken sends the token as a bearer credential.
func WithToken(token string) Option {
	return func(client *Client) {
		client.token = token
	}
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: network.Client,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// FromConfig creates a client for the configured service, authenticated with the keyring token if any.
func FromConfig() *Client {
	base := viper.GetString(key.ServiceURL)
	if base == "" {
		base = constant.DefaultServiceURL
	}

	token, err := auth.Token()
	if err != nil {
		log.Warnf("continuing without token: %v", err)
	}

	return New(base, WithToken(token))
}

// BaseURL is the service root this client addresses.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return req, nil
}

// do sends the request and returns the response when it is a 200.
// The caller closes the body.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	entry := log.WithFields(log.Fields{
		"op":         op,
		"request_id": req.Header.Get("X-Request-ID"),
	})
	entry.Debugf("%s %s", req.Method, req.URL.Path)

	resp, err := c.http.Do(req)
	if err != nil {
		entry.Warn(err)
		return nil, transportErr(op, err)
	}

	if resp.StatusCode != http.StatusOK {
		defer util.Ignore(resp.Body.Close)
		statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: detail(resp.Body)}
		entry.Warn(statusErr)
		return nil, fmt.Errorf("%s: %w", op, statusErr)
	}

	return resp, nil
}

// detail extracts FastAPI-style {"detail": "..."} messages.
func detail(body io.Reader) string {
	var payload struct {
		Detail any `json:"detail"`
	}
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&payload); err != nil {
		return ""
	}
	if s, ok := payload.Detail.(string); ok {
		return s
	}
	return ""
}

func (c *Client) call(ctx context.Context, method, path, op string, body, out any) error {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	resp, err := c.do(req, op)
	if err != nil {
		return err
	}
	defer util.Ignore(resp.Body.Close)

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return transportErr(op, err)
	}
	return nil
}

// Extract asks the service to describe the URL.
func (c *Client) Extract(ctx context.Context, request ExtractRequest) (*media.Info, error) {
	var dto infoDTO
	if err := c.call(ctx, http.MethodPost, constant.EndpointExtract, "extract", request, &dto); err != nil {
		return nil, err
	}
	return dto.toInfo(), nil
}

// Queue submits a download job.
func (c *Client) Queue(ctx context.Context, request QueueRequest) (*QueueResponse, error) {
	var response QueueResponse
	if err := c.call(ctx, http.MethodPost, constant.EndpointQueue, "queue", request, &response); err != nil {
		return nil, err
	}
	if response.TaskID == "" {
		return nil, fmt.Errorf("queue: %w: empty task id", ErrTransport)
	}
	return &response, nil
}

// Status fetches the current state of a job. A job not yet registered yields a 404 StatusError.
func (c *Client) Status(ctx context.Context, taskID string) (*StatusResponse, error) {
	var response StatusResponse
	path := constant.EndpointStatus + url.PathEscape(taskID)
	if err := c.call(ctx, http.MethodGet, path, "status", nil, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

// FileURL is the retrieval locator of a produced file.
func (c *Client) FileURL(fileID string) string {
	return c.base + constant.EndpointFile + url.PathEscape(fileID)
}

// Download retrieves a produced file into dir and returns the written path.
// The name comes from Content-Disposition when present, else from the file id.
// Existing files are never overwritten.
func (c *Client) Download(ctx context.Context, fileID, dir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, constant.EndpointFile+url.PathEscape(fileID), nil)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}
	req.Header.Set("Accept", "*/*")

	resp, err := c.do(req, "download")
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	name := fileID
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		name = params["filename"]
	}
	name = util.SanitizeFilename(filepath.Base(name))
	if name == "" {
		name = "download"
	}

	fs := filesystem.API()
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	path, err := filesystem.Unique(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	file, err := fs.Create(path)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	_, err = io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		util.Ignore(func() error { return fs.Remove(path) })
		return "", transportErr("download", err)
	}

	log.WithField("path", path).Info("saved file")
	return path, nil
}

// Health verifies that the service answers {"status":"ok"}.
func (c *Client) Health(ctx context.Context) error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.call(ctx, http.MethodGet, constant.EndpointHealth, "health", nil, &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("health: unexpected status %q", response.Status)
	}
	return nil
}
