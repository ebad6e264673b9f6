// Package portal implements attendance.Submitter against the university
// portal's mark endpoint.
//
// The portal authenticates each user by a session cookie obtained at login,
// so one Client serves every user: the token travels per request, never on
// the client. Every call is bounded by its own timeout and the outcome is
// classified into the attendance vocabulary:
//   - JSON {"status": ...}: success statuses map to SUCCESS, anything else to
//     REJECTED with a parsed reason code
//   - 401/403 without a status body: REJECTED(SESSION_EXPIRED)
//   - 429 and 5xx: NETWORK_FAILURE, which the retry policy treats as transient
//   - deadline or net timeout: TIMEOUT; other transport errors: NETWORK_FAILURE
//
// Resty's own retry is left disabled. Retries are the job of
// attendance.RetrySubmitter so that they apply uniformly to every Submitter.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/validate"
	"github.com/go-resty/resty/v2"
)

const markPath = "/attendance/mark"

// Config configures a portal Client.
type Config struct {
	BaseURL       string        // Portal root, e.g. https://portal.example.edu/api
	SessionCookie string        // Cookie name carrying the session token
	CallTimeout   time.Duration // Per-call timeout T
	UserAgent     string        // Sent on every request
}

// markRequest is the body of a mark call.
type markRequest struct {
	UserIdentifier string `json:"userIdentifier"`
	EventID        string `json:"eventId"`
}

// markResponse is the portal's reply to a mark call.
type markResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client submits attendance to the portal.
type Client struct {
	client     *resty.Client
	baseURL    string
	cookieName string
	timeout    time.Duration
}

// NewClient creates a portal client. BaseURL must be an absolute http(s) URL.
func NewClient(cfg Config) (*Client, error) {
	if err := validate.ValidateEndpointURL(cfg.BaseURL, "upstream"); err != nil {
		return nil, err
	}
	if cfg.SessionCookie == "" {
		cfg.SessionCookie = config.DefaultSessionCookie
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = config.DefaultCallTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "rollcall"
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(logging.RestyLogger{})

	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", cfg.UserAgent).
		SetRetryCount(0).
		SetJSONUnmarshaler(decodeMarkResponse)

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Portal request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("Portal response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("Portal request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Client{
		client:     client,
		baseURL:    baseURL,
		cookieName: cfg.SessionCookie,
		timeout:    cfg.CallTimeout,
	}, nil
}

// Submit implements attendance.Submitter. It never returns an error: every
// failure is reported as an Outcome on the result.
func (c *Client) Submit(ctx context.Context, task attendance.SubmissionTask) attendance.SubmissionResult {
	if !task.HasToken() {
		return attendance.Failure(task, attendance.OutcomeMissingToken, "no session token")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// The portal does not always label its JSON, so every reply is decoded as
	// JSON; see decodeMarkResponse for bodies that are not.
	var parsed markResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: c.cookieName, Value: task.SessionToken}).
		SetBody(markRequest{UserIdentifier: task.UserIdentifier, EventID: task.EventID}).
		ForceContentType("application/json").
		SetResult(&parsed).
		SetError(&parsed).
		Post(markPath)
	if err != nil {
		return classifyError(ctx, task, err)
	}

	result := classifyResponse(task, resp.StatusCode(), parsed, string(resp.Body()))
	logging.Debug("Portal: %s (session %s)", result, logging.RedactToken(task.SessionToken))
	return result
}

// classifyError maps a transport error to TIMEOUT or NETWORK_FAILURE.
func classifyError(ctx context.Context, task attendance.SubmissionTask, err error) attendance.SubmissionResult {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), ctx.Err() == context.DeadlineExceeded:
		return attendance.Failure(task, attendance.OutcomeTimeout, "portal call timed out")
	case errors.As(err, &netErr) && netErr.Timeout():
		return attendance.Failure(task, attendance.OutcomeTimeout, netErr.Error())
	default:
		return attendance.Failure(task, attendance.OutcomeNetworkFailure, err.Error())
	}
}

// decodeMarkResponse is the client's JSON unmarshaler. Login pages, plain
// "ok" bodies and other non-status replies leave the target empty instead of
// failing the call, so they are classified by status code alone.
func decodeMarkResponse(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		logging.Debug("Portal: reply is not a status object: %v", err)
	}
	return nil
}

// classifyResponse maps an HTTP reply to a result. parsed is the decoded
// body, empty when the body was not JSON; raw is kept for the report.
func classifyResponse(task attendance.SubmissionTask, status int, parsed markResponse, raw string) attendance.SubmissionResult {
	if status == http.StatusTooManyRequests || status >= 500 {
		return attendance.Failure(task, attendance.OutcomeNetworkFailure,
			fmt.Sprintf("portal returned HTTP %d", status))
	}

	if parsed.Status != "" {
		if attendance.IsSuccessStatus(parsed.Status) {
			return attendance.Success(task, raw)
		}
		return attendance.Rejected(task, attendance.ParseReasonCode(parsed.Status), parsed.Message, raw)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return attendance.Rejected(task, attendance.ReasonSessionExpired,
			fmt.Sprintf("portal returned HTTP %d", status), raw)
	case status >= 400:
		return attendance.Rejected(task, attendance.ReasonUnknown,
			fmt.Sprintf("portal returned HTTP %d", status), raw)
	default:
		return attendance.Rejected(task, attendance.ReasonUnknown, "unrecognized portal response", raw)
	}
}

// BaseURL returns the portal root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}
