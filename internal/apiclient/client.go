package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/logger"
	"github.com/osse101/BurgerClient_Go/internal/metrics"
)

// CredentialStore is the part of the session credential context the client
// reads and writes
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SavePair(ctx context.Context, access, refresh string) error
}

// Client sends requests to the burger backend, attaching the access token
// to authenticated calls and renewing it once when the backend reports it
// expired. It holds no mutable state of its own and is safe for concurrent
// use; concurrent calls that hit an expired token each refresh independently.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      CredentialStore
	bus        event.Bus
}

// NewClient creates a client for baseURL. bus may be nil.
func NewClient(baseURL string, creds CredentialStore, bus event.Bus, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: metrics.NewTransport(nil),
		},
		creds: creds,
		bus:   bus,
	}
}

// Request describes one backend call
type Request struct {
	Method string
	Path   string
	Body   interface{}
	Auth   bool
}

type attempt int

const (
	attemptFirst attempt = iota
	attemptRetried
)

func (a attempt) String() string {
	if a == attemptFirst {
		return "first"
	}
	return "retried"
}

type outcome int

const (
	outcomeSuccess outcome = iota
	outcomeRetryAfterRefresh
	outcomeFail
)

// response is a fully read backend reply
type response struct {
	status   int
	body     []byte
	envelope envelope
}

// envelope is the {success, message} part every backend body shares
type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

func (r *response) declaredFailure() bool {
	return !r.ok() || (r.envelope.Success != nil && !*r.envelope.Success)
}

// classify decides what happens after an attempt. Only the first attempt can
// lead to a refresh, so a request is retried at most once.
func classify(res *response, at attempt) outcome {
	if res.declaredFailure() && res.envelope.Message == domain.TokenExpiredMessage && at == attemptFirst {
		return outcomeRetryAfterRefresh
	}
	if !res.ok() {
		return outcomeFail
	}
	return outcomeSuccess
}

// Do performs req and decodes a successful body into out (which may be nil).
// An expired access token is renewed through Refresh and the original request
// is reissued once with the new token; the retried result is final.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	ctx, _ = logger.EnsureRequestID(ctx)

	payload, err := jsonBody(req.Body)
	if err != nil {
		return err
	}

	var token string
	if req.Auth {
		if token, err = c.creds.AccessToken(ctx); err != nil {
			return fmt.Errorf("read access token: %w", err)
		}
	}

	at := attemptFirst
	for {
		res, err := c.send(ctx, req.Method, req.Path, payload, req.Auth, token, at)
		if err != nil {
			return err
		}

		switch classify(res, at) {
		case outcomeSuccess:
			return decodeBody(res.body, out)

		case outcomeRetryAfterRefresh:
			logger.FromContext(ctx).Info(LogMsgTokenExpired, "path", req.Path)
			if token, err = c.Refresh(ctx); err != nil {
				return err
			}
			at = attemptRetried
			logger.FromContext(ctx).Debug(LogMsgRetryingRequest, "path", req.Path)

		default:
			return NewAPIError(res.status, res.envelope.Message)
		}
	}
}

// send performs a single HTTP exchange and reads the whole body
func (c *Client) send(ctx context.Context, method, path string, payload []byte, auth bool, token string, at attempt) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		httpReq.Header.Set(HeaderContentType, ContentTypeJSON)
	}
	if auth {
		httpReq.Header.Set(HeaderAuthorization, token)
	}
	httpReq.Header.Set(logger.HeaderRequestID, logger.GetRequestID(ctx))

	log := logger.FromContext(ctx)
	log.Debug(LogMsgRequestSent, "method", method, "path", path, "attempt", at.String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Warn(LogMsgRequestFailed, "method", method, "path", path, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	res := &response{status: resp.StatusCode, body: raw}
	// bodies that are not JSON objects simply carry no envelope
	_ = json.Unmarshal(raw, &res.envelope)
	return res, nil
}

func jsonBody(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal body: %w", err)
	}
	return b, nil
}

func decodeBody(raw []byte, out interface{}) error {
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}
	return nil
}
