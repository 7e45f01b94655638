package signupapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vncsmyrnk/signup/internal/core/domain"
	"github.com/vncsmyrnk/signup/internal/core/ports"
)

const (
	DefaultEndpoint = "http://lsp-signup.anandology.com/signup_api"
	DefaultTimeout  = 30 * time.Second

	maxResponseBytes = 1 << 20
)

type Client struct {
	httpClient *http.Client
	endpoint   string
}

func NewClient(endpoint string, timeout time.Duration) ports.SignupAPI {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

// NewClientWithHTTP lets tests and callers supply their own transport.
func NewClientWithHTTP(endpoint string, httpClient *http.Client) ports.SignupAPI {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
	}
}

type signupReply struct {
	Status string          `json:"status"`
	Errors json.RawMessage `json:"errors"`
}

// Signup posts the fields form-encoded. Every failure wraps domain.ErrTransport.
func (c *Client) Signup(ctx context.Context, req ports.SignupRequest) (*ports.SignupResponse, error) {
	body := EncodeFields(req.Fields)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, c.transportError(err, "failed to build signup request", req)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", req.ID.String())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, c.transportError(err, "signup request failed", req)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.transportError(err, "failed to read signup response", req, goerr.V("status", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.transportError(domain.ErrUnexpectedStatus, "signup api rejected the request", req,
			goerr.V("status", resp.StatusCode))
	}

	var reply *signupReply
	err = json.Unmarshal(content, &reply)
	if err == nil && reply == nil {
		err = errors.New("null reply")
	}
	if err != nil {
		return nil, c.transportError(fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err),
			"failed to decode signup response", req, goerr.V("status", resp.StatusCode))
	}

	return &ports.SignupResponse{
		Status: reply.Status,
		Errors: decodeErrors(reply.Errors),
	}, nil
}

func (c *Client) transportError(cause error, msg string, req ports.SignupRequest, opts ...goerr.Option) error {
	opts = append(opts, goerr.V("url", c.endpoint), goerr.V("request_id", req.ID.String()))
	return goerr.Wrap(fmt.Errorf("%w: %w", domain.ErrTransport, cause), msg, opts...)
}

// EncodeFields serializes fields as application/x-www-form-urlencoded with keys
// sorted and no trailing separator.
func EncodeFields(fields domain.SubmittedFields) string {
	values := make(url.Values, len(fields))
	for k, v := range fields {
		values.Set(k, v)
	}
	return values.Encode()
}

// decodeErrors accepts the "errors" member as an object of messages. Anything
// else (absent, null, an empty JSON array) yields no field errors.
func decodeErrors(raw json.RawMessage) domain.ErrorMap {
	if len(raw) == 0 {
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return nil
	}

	errs := make(domain.ErrorMap, len(obj))
	for k, v := range obj {
		errs[k] = messageString(v)
	}
	return errs
}

func messageString(v any) string {
	switch m := v.(type) {
	case string:
		return m
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(m))
		for _, p := range m {
			parts = append(parts, messageString(p))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprint(m)
	}
}
