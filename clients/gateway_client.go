package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenSource is the part of the token store the gateway needs.
type TokenSource interface {
	Token(ctx context.Context) string
	ClearSession(ctx context.Context) error
}

// Navigator sends the user somewhere else, the login page after a 401.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// LogNavigator only records the navigation in the log.
type LogNavigator struct {
	Log *zap.Logger
}

func (n LogNavigator) Navigate(ctx context.Context, target string) {
	logger.FromContext(ctx, n.Log).Info("navigation requested", zap.String("target", target))
}

// RequestOptions shape a single call. The zero value is an authenticated GET
// that redirects to the login page on 401.
type RequestOptions struct {
	Method  string
	Body    any // *Multipart or anything encoding/json accepts
	Query   Query
	Headers http.Header
	// Anonymous skips the Authorization header.
	Anonymous bool
	// NoRedirect suppresses the login navigation on 401. The session is
	// cleared either way.
	NoRedirect bool
}

// Response is a successful (2xx) reply.
type Response struct {
	Status int
	Header http.Header
	Raw    []byte
	// Data is the parsed body: a JSON value when the body parsed, the text
	// otherwise, nil when the body was empty.
	Data any
}

// Decode unmarshals the raw body into out. An empty body leaves out untouched.
func (r *Response) Decode(out any) error {
	if r == nil || len(bytes.TrimSpace(r.Raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Raw, out); err != nil {
		return apperrors.DecodeFailure("response body", err)
	}
	return nil
}

type GatewayOptions struct {
	HTTPClient *http.Client
	Tokens     TokenSource
	Navigator  Navigator
	LoginURL   string
	Logger     *zap.Logger
}

// GatewayClient is the one place outgoing API calls go through.
type GatewayClient struct {
	baseURL   string
	client    *http.Client
	tokens    TokenSource
	navigator Navigator
	loginURL  string
	log       *zap.Logger
}

func NewGatewayClient(baseURL string, opts GatewayOptions) *GatewayClient {
	g := &GatewayClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    opts.HTTPClient,
		tokens:    opts.Tokens,
		navigator: opts.Navigator,
		loginURL:  opts.LoginURL,
		log:       logger.OrNop(opts.Logger),
	}
	if g.client == nil {
		g.client = &http.Client{}
	}
	if g.navigator == nil {
		g.navigator = LogNavigator{Log: g.log}
	}
	if g.loginURL == "" {
		g.loginURL = "index.html#login"
	}
	return g
}

// BaseURL returns the configured API root.
func (g *GatewayClient) BaseURL() string {
	return g.baseURL
}

// Do performs exactly one round trip. Non-2xx replies come back as errors:
// Unauthorized for 401 (after the session is cleared), RequestFailed
// otherwise. Failures to reach the server are RequestFailed with status 0.
func (g *GatewayClient) Do(ctx context.Context, path string, opts RequestOptions) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	u := BuildURL(g.baseURL, path, opts.Query)

	body, contentType, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, apperrors.RequestFailed(0, "failed to create request", err)
	}

	for k, v := range opts.Headers {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !opts.Anonymous && g.tokens != nil {
		if token := g.tokens.Token(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := req.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = logger.RequestID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		req.Header.Set("X-Request-ID", requestID)
	}

	log := g.log.With(zap.String("method", method), zap.String("url", u), zap.String("request_id", requestID))
	log.Debug("dispatching request")

	resp, err := g.client.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, apperrors.RequestFailed(0, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.RequestFailed(resp.StatusCode, "failed to read response", err)
	}
	data := parseBody(raw)

	if resp.StatusCode == http.StatusUnauthorized {
		if g.tokens != nil {
			if err := g.tokens.ClearSession(ctx); err != nil {
				log.Error("failed to clear session", zap.Error(err))
			}
		}
		if !opts.NoRedirect {
			g.navigator.Navigate(ctx, g.loginURL)
		}
		log.Info("unauthorized response, session cleared")
		return nil, apperrors.Unauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ExtractError(data, resp.StatusCode)
		log.Warn("upstream error", zap.Int("status", resp.StatusCode), zap.String("message", msg))
		return nil, apperrors.RequestFailed(resp.StatusCode, msg, nil)
	}

	log.Debug("request completed", zap.Int("status", resp.StatusCode))
	return &Response{Status: resp.StatusCode, Header: resp.Header, Raw: raw, Data: data}, nil
}

// DoJSON is Do followed by Decode into out.
func (g *GatewayClient) DoJSON(ctx context.Context, path string, opts RequestOptions, out any) error {
	resp, err := g.Do(ctx, path, opts)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}

func encodeBody(body any) (io.Reader, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *Multipart:
		if b == nil {
			return nil, "", nil
		}
		r, ct, err := b.encode()
		if err != nil {
			return nil, "", apperrors.RequestFailed(0, "failed to encode form", err)
		}
		return r, ct, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", apperrors.RequestFailed(0, "failed to encode body", err)
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

// parseBody returns the JSON value in raw, raw as text when it is not JSON,
// or nil when it is empty.
func parseBody(raw []byte) any {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}

// ExtractError derives a human-readable message from an error body: a plain
// string body, then every message of an "errors" map joined by spaces, then
// "message" or "title", then a generic "Request failed (<status>)".
func ExtractError(data any, status int) string {
	fallback := fmt.Sprintf("Request failed (%d)", status)
	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case map[string]any:
		if combined := flattenErrors(v["errors"]); combined != "" {
			return combined
		}
		for _, key := range []string{"message", "title"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return fallback
}

func flattenErrors(errs any) string {
	var msgs []string
	switch v := errs.(type) {
	case map[string]any:
		fields := make([]string, 0, len(v))
		for field := range v {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			msgs = append(msgs, messages(v[field])...)
		}
	case []any:
		msgs = messages(v)
	}
	return strings.Join(msgs, " ")
}

func messages(v any) []string {
	switch m := v.(type) {
	case string:
		if m != "" {
			return []string{m}
		}
	case []any:
		var out []string
		for _, item := range m {
			out = append(out, messages(item)...)
		}
		return out
	}
	return nil
}
