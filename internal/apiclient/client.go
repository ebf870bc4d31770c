// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/go-console-client/internal/authz"
	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/metrics"
	"github.com/MKhiriev/go-console-client/internal/utils"
	"github.com/MKhiriev/go-console-client/models"
)

// Request and response headers understood by the client.
const (
	HeaderRequestID     = "X-Request-ID"
	HeaderTokenOutdated = "X-Token-Outdated"

	headerAuthorization = "Authorization"
	headerAccept        = "Accept"
	headerContentType   = "Content-Type"
	mimeJSON            = "application/json"
)

// Deps are the collaborators of a [Client]. Credentials is required, the
// rest may be nil.
type Deps struct {
	Credentials CredentialStore
	Publisher   Publisher
	Navigator   Navigator
	Tracker     VersionTracker
	Metrics     *metrics.Metrics
}

// Client is the authenticated HTTP client. It is safe for concurrent use.
type Client struct {
	http *utils.HTTPClient
	raw  *utils.HTTPClient

	cfg       config.API
	authPaths map[string]struct{}
	basePath  string

	creds     CredentialStore
	publisher Publisher
	navigator Navigator
	tracker   VersionTracker
	metrics   *metrics.Metrics
	ids       *utils.UUIDGenerator

	refreshGroup singleflight.Group

	logger *logger.Logger
}

// New builds a client for the backend described by cfg. Two resty clients
// are created: the pipeline client with the credential and logging hooks,
// and a bare one used only for the token exchange.
func New(cfg config.API, deps Deps, log *logger.Logger) *Client {
	c := &Client{
		http:      utils.NewBaseHTTPClient(cfg.BaseURL, cfg.RequestTimeout),
		raw:       utils.NewBaseHTTPClient(cfg.BaseURL, cfg.RequestTimeout),
		cfg:       cfg,
		authPaths: make(map[string]struct{}, 3),
		creds:     deps.Credentials,
		publisher: deps.Publisher,
		navigator: deps.Navigator,
		tracker:   deps.Tracker,
		metrics:   deps.Metrics,
		ids:       utils.NewUUIDGenerator(),
		logger:    log,
	}

	if u, err := url.Parse(cfg.BaseURL); err == nil {
		if p := normalizePath(u.Path); p != "/" {
			c.basePath = p
		}
	}
	for _, p := range cfg.AuthPaths() {
		if p = normalizePath(p); p != "" {
			c.authPaths[p] = struct{}{}
		}
	}

	c.http.
		SetLogger(restyLogger{log}).
		OnBeforeRequest(c.injectCredentials).
		OnAfterResponse(c.logResponse).
		OnError(c.logError)
	c.raw.SetLogger(restyLogger{log})

	return c
}

// call is the in-flight record of one Request invocation.
type call struct {
	method  string
	path    string
	body    any
	opts    requestOptions
	retried bool
}

// Request sends method path with body encoded as JSON and returns the
// unwrapped envelope. An authorization failure on a non-auth path triggers
// one token exchange and one resend.
func (c *Client) Request(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	cl := &call{method: method, path: path, body: body, opts: newRequestOptions(opts)}
	if cl.opts.skipAuth {
		ctx = withSkipAuth(ctx)
	}

	resp, sent, err := c.send(ctx, cl)
	if err == nil {
		return resp, nil
	}

	apiErr, ok := AsAPIError(err)
	if !ok || !c.shouldRefresh(ctx, cl, apiErr) {
		return nil, err
	}
	cl.retried = true

	if !c.tokenRotated(ctx, sent) {
		if refreshErr := c.Refresh(ctx); refreshErr != nil {
			c.logger.Warn().Err(refreshErr).
				Str("method", method).
				Str("path", path).
				Msg("session could not be refreshed")
			c.endSession(ctx)
			return nil, apiErr
		}
	}

	resp, _, err = c.send(ctx, cl)
	if err != nil {
		if again, ok := AsAPIError(err); ok && again.IsAuthFailure() {
			c.logger.Warn().
				Str("method", method).
				Str("path", path).
				Msg("request rejected after token refresh")
			c.endSession(ctx)
		}
		return nil, err
	}
	return resp, nil
}

// Get sends a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodGet, path, nil, opts...)
}

// Post sends a POST request.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPost, path, body, opts...)
}

// Put sends a PUT request.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPut, path, body, opts...)
}

// Patch sends a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodPatch, path, body, opts...)
}

// Delete sends a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, http.MethodDelete, path, nil, opts...)
}

// Fetch sends a request and decodes the envelope data into T.
func Fetch[T any](ctx context.Context, c *Client, method, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	resp, err := c.Request(ctx, method, path, body, opts...)
	if err != nil {
		return out, err
	}
	if err = resp.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

// send performs one attempt. It returns the access token the attempt
// carried so the caller can tell whether it has been rotated since.
func (c *Client) send(ctx context.Context, cl *call) (*Response, string, error) {
	if cl.opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cl.opts.timeout)
		defer cancel()
	}

	req := c.http.R().
		SetContext(ctx).
		SetHeader(headerAccept, mimeJSON)
	if cl.body != nil {
		req.SetHeader(headerContentType, mimeJSON).SetBody(cl.body)
	}
	if len(cl.opts.query) > 0 {
		req.SetQueryParams(cl.opts.query)
	}
	for k, v := range cl.opts.headers {
		req.SetHeader(k, v)
	}

	resp, err := req.Execute(cl.method, cl.path)
	sent, _ := utils.ParseBearerToken(req.Header.Get(headerAuthorization))
	if err != nil {
		return nil, sent, mapTransportError(cl.method, cl.path, req.Header.Get(HeaderRequestID), err)
	}

	if !resp.IsSuccess() {
		return nil, sent, mapHTTPError(cl.method, cl.path, resp, parseEnvelope(resp.Body()))
	}

	c.checkAuthzVersion(ctx, resp)

	out := &Response{
		Status:   resp.StatusCode(),
		Header:   resp.Header(),
		Duration: resp.Time(),
	}
	if len(strings.TrimSpace(string(resp.Body()))) == 0 {
		return out, sent, nil
	}

	var env models.Envelope
	if err = json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, sent, malformed(cl.method, cl.path, resp, err)
	}
	if !env.OK {
		if env.Error == nil {
			return nil, sent, malformed(cl.method, cl.path, resp, nil)
		}
		return nil, sent, mapHTTPError(cl.method, cl.path, resp, &env)
	}

	out.Data = env.Data
	out.Meta = env.Meta
	return out, sent, nil
}

func parseEnvelope(body []byte) *models.Envelope {
	if len(body) == 0 {
		return nil
	}
	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil
	}
	return &env
}

func (c *Client) shouldRefresh(ctx context.Context, cl *call, apiErr *APIError) bool {
	if !apiErr.IsAuthFailure() || cl.retried || skipAuth(ctx) {
		return false
	}
	return !c.isAuthPath(cl.path)
}

func (c *Client) isAuthPath(path string) bool {
	_, ok := c.authPaths[c.relativePath(path)]
	return ok
}

// relativePath reduces an absolute request URL to its path below the base
// URL, so that "http://host/api/auth/login" and "/auth/login" compare equal.
func (c *Client) relativePath(path string) string {
	u, err := url.Parse(strings.TrimSpace(path))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return normalizePath(path)
	}
	p := normalizePath(u.EscapedPath())
	if c.basePath != "" && strings.HasPrefix(p, c.basePath+"/") {
		p = strings.TrimPrefix(p, c.basePath)
	}
	return p
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

// tokenRotated reports whether, in shared refresh mode, another request has
// already replaced the access token that sent was rejected with.
func (c *Client) tokenRotated(ctx context.Context, sent string) bool {
	if !c.cfg.SharedRefresh() || sent == "" {
		return false
	}
	current, err := c.creds.AccessToken(ctx)
	if err != nil {
		return false
	}
	return current != "" && current != sent
}

// endSession clears the token pair and sends the navigator to the login
// route unless it is already there.
func (c *Client) endSession(ctx context.Context) {
	if err := c.creds.ClearTokens(context.WithoutCancel(ctx)); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear stored tokens")
	}
	if c.navigator == nil || c.cfg.LoginRoute == "" {
		return
	}
	if c.navigator.CurrentPath() != c.cfg.LoginRoute {
		c.navigator.Navigate(c.cfg.LoginRoute)
	}
}

// checkAuthzVersion publishes a version-outdated event when the response
// reports a newer authorization version than the cached profile.
func (c *Client) checkAuthzVersion(ctx context.Context, resp *resty.Response) {
	if c.tracker == nil {
		return
	}
	server, ok := authz.ParseVersion(resp.Header().Get(authz.HeaderVersion))
	if !ok {
		return
	}
	ev, outdated := c.tracker.Observe(server)
	if !outdated {
		return
	}

	c.logger.Info().
		Int64("server_version", ev.ServerVersion).
		Int64("current_version", ev.CurrentVersion).
		Msg("authorization version outdated")
	if c.publisher != nil {
		c.publisher.Publish(ctx, events.TopicVersionOutdated, ev)
	}
}
