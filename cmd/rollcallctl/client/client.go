// Package client provides the rollcalld API client used by rollcallctl.
//
// RollcallAPIClient wraps a Resty client configured against the daemon's
// /api/v1 base URL. It serves two purposes:
//
//   - health: GET /health for the health command and for availability probes
//   - batch: POST /attendance/batch, the remote half of the strategy selector
//
// SubmitBatch reports every whole-call failure, including a daemon that
// rejects the request with 400 or 413, as *attendance.TransportFailure so the
// selector can fall back to the local queue. The daemon's limits are its
// own configuration; the local queue has none.
//
// Health reads use the global --timeout. A batch call instead gets a deadline
// scaled to its user count and the daemon's pacing (see BatchDeadline), since
// the daemon answers only after every user has a terminal result.
package client

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/concave-dev/rollcall/cmd/rollcallctl/config"
	"github.com/concave-dev/rollcall/internal/attendance"
	configDefaults "github.com/concave-dev/rollcall/internal/config"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/go-resty/resty/v2"
)

// HealthResponse mirrors the daemon health payload.
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Uptime    string           `json:"uptime"`
	Batching  map[string]int64 `json:"batching,omitempty"`
}

// BatchUser is one user in a batch request.
type BatchUser struct {
	Identifier   string `json:"identifier"`
	SessionToken string `json:"sessionToken"`
}

// BatchRequest is the payload of POST /attendance/batch.
type BatchRequest struct {
	EventID string      `json:"eventId"`
	Users   []BatchUser `json:"users"`
}

// BatchResponse mirrors the daemon's aggregate batch result.
type BatchResponse struct {
	RunID      string                        `json:"runId"`
	Total      int                           `json:"total"`
	Successful int                           `json:"successful"`
	Failed     int                           `json:"failed"`
	Results    []attendance.SubmissionResult `json:"results"`
}

// errorResponse is the daemon's error body.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// RollcallAPIClient talks to a rollcalld instance.
type RollcallAPIClient struct {
	client  *resty.Client // health reads, bounded by timeout
	batch   *resty.Client // batch POSTs, bounded per call by BatchDeadline
	baseURL string
	timeout time.Duration

	// lastHealth carries the daemon's pacing from the most recent health
	// read into BatchDeadline.
	lastHealth atomic.Pointer[HealthResponse]
}

// NewRollcallAPIClient creates a client for the daemon at apiAddr (host:port).
// timeout is the health request timeout in seconds and the floor of every
// batch deadline.
func NewRollcallAPIClient(apiAddr string, timeout int) *RollcallAPIClient {
	baseURL := fmt.Sprintf("http://%s/api/v1", apiAddr)

	client := newRestyClient(baseURL)
	client.SetTimeout(time.Duration(timeout) * time.Second)

	// Only idempotent reads are retried; a batch POST that reached the daemon
	// may already have marked users.
	client.
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err == nil || r == nil || r.Request == nil {
				return false
			}
			return r.Request.Method == http.MethodGet
		})

	return &RollcallAPIClient{
		client:  client,
		batch:   newRestyClient(baseURL),
		baseURL: baseURL,
		timeout: time.Duration(timeout) * time.Second,
	}
}

// newRestyClient builds a client with the shared headers and debug hooks and
// no timeout of its own.
func newRestyClient(baseURL string) *resty.Client {
	client := resty.New()

	client.SetLogger(logging.RestyLogger{})

	client.
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("rollcallctl/%s", config.Version))

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return client
}

// CreateAPIClient creates a client from the global CLI configuration.
func CreateAPIClient() *RollcallAPIClient {
	return NewRollcallAPIClient(config.Global.APIAddr, config.Global.Timeout)
}

// BaseURL returns the daemon API base URL.
func (api *RollcallAPIClient) BaseURL() string {
	return api.baseURL
}

// GetHealth fetches the daemon health status.
func (api *RollcallAPIClient) GetHealth(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse

	resp, err := api.client.R().
		SetContext(ctx).
		SetResult(&health).
		Get("/health")

	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	api.lastHealth.Store(&health)
	return &health, nil
}

// Available reports whether the daemon answers its health check as healthy.
func (api *RollcallAPIClient) Available(ctx context.Context) bool {
	health, err := api.GetHealth(ctx)
	if err != nil {
		logging.Debug("Batch endpoint probe failed: %v", err)
		return false
	}
	return health.Status == "healthy"
}

// BatchDeadline bounds one batch call for n users. The daemon releases users
// in waves of its concurrency, and each user may spend the full retry budget
// (every attempt timing out plus the backoff between attempts) before its
// worker takes the next one. Concurrency and wave delay come from the last
// health read when the daemon reported them, otherwise from the daemon
// defaults; the retry budget always assumes the daemon defaults. The global
// timeout is added on top as slack for the request itself.
func (api *RollcallAPIClient) BatchDeadline(n int) time.Duration {
	concurrency := int64(configDefaults.DefaultServerConcurrency)
	waveDelay := configDefaults.DefaultServerWaveDelay
	if health := api.lastHealth.Load(); health != nil {
		if c := health.Batching["concurrency"]; c > 0 {
			concurrency = c
		}
		if d, ok := health.Batching["wave_delay_ms"]; ok && d >= 0 {
			waveDelay = time.Duration(d) * time.Millisecond
		}
	}

	attempts := configDefaults.DefaultMaxAttempts
	perUser := time.Duration(attempts)*configDefaults.DefaultCallTimeout +
		configDefaults.DefaultRetryBaseDelay*time.Duration((1<<(attempts-1))-1)

	waves := (int64(n) + concurrency - 1) / concurrency
	return api.timeout + time.Duration(waves)*(waveDelay+perUser)
}

// SubmitBatch sends every task to the daemon in one request and returns the
// daemon's per-user results.
func (api *RollcallAPIClient) SubmitBatch(ctx context.Context, eventID string, tasks []attendance.SubmissionTask) (*attendance.BatchReport, error) {
	req := BatchRequest{
		EventID: eventID,
		Users:   make([]BatchUser, len(tasks)),
	}
	for i, task := range tasks {
		req.Users[i] = BatchUser{Identifier: task.UserIdentifier, SessionToken: task.SessionToken}
	}

	var result BatchResponse
	var apiErr errorResponse

	deadline := api.BatchDeadline(len(tasks))
	callCtx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	resp, err := api.batch.R().
		SetContext(callCtx).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post("/attendance/batch")

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if callCtx.Err() != nil {
			err = fmt.Errorf("no reply within %v for %d users: %w", deadline, len(tasks), err)
		}
		return nil, &attendance.TransportFailure{Endpoint: api.baseURL, Err: err}
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge:
		return nil, &attendance.TransportFailure{
			Endpoint: api.baseURL,
			Err: fmt.Errorf("batch request rejected (HTTP %d): %s: %s",
				resp.StatusCode(), apiErr.Error, apiErr.Details),
		}
	default:
		return nil, &attendance.TransportFailure{
			Endpoint: api.baseURL,
			Err:      fmt.Errorf("HTTP %d: %s", resp.StatusCode(), resp.String()),
		}
	}

	logging.Debug("Batch run %s on daemon: %d/%d successful",
		logging.FormatRunID(result.RunID), result.Successful, result.Total)

	return attendance.NewBatchReport(result.Results), nil
}
