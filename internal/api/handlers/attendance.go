// Package handlers provides HTTP request handlers for the rollcalld API server.
//
// This file implements the batch attendance endpoint. rollcallctl sends one
// request carrying every user and their session token; the server runs them
// through its own bounded Batcher against the portal and answers with one
// result per user in request order.
//
//   - POST /api/v1/attendance/batch
//
// Per-user failures (rejections, timeouts, missing tokens) are part of a 200
// response. Non-2xx answers mean the request as a whole was not processed.
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/concave-dev/rollcall/internal/attendance"
	"github.com/concave-dev/rollcall/internal/logging"
	"github.com/concave-dev/rollcall/internal/validate"
	"github.com/gin-gonic/gin"
)

// BatchRunner runs a set of tasks with bounded concurrency.
// batching.Batcher implements it.
type BatchRunner interface {
	Run(ctx context.Context, tasks []attendance.SubmissionTask, sink attendance.ProgressSink) (*attendance.BatchReport, error)
}

// BatchUser is one user in a batch request. An empty session token is
// allowed and yields MISSING_TOKEN for that user.
type BatchUser struct {
	Identifier   string `json:"identifier" binding:"required"`
	SessionToken string `json:"sessionToken"`
}

// BatchRequest represents the HTTP request payload for a batch submission.
type BatchRequest struct {
	EventID string      `json:"eventId" binding:"required"`
	Users   []BatchUser `json:"users" binding:"required,min=1,dive"`
}

// BatchResponse is the aggregate result of a batch submission. Results are
// in request order.
type BatchResponse struct {
	RunID      string                        `json:"runId"`
	Total      int                           `json:"total"`
	Successful int                           `json:"successful"`
	Failed     int                           `json:"failed"`
	Results    []attendance.SubmissionResult `json:"results"`
}

// HandleBatchSubmit handles batch attendance submissions.
//
// POST /api/v1/attendance/batch
func HandleBatchSubmit(runner BatchRunner, maxUsers int) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			logging.Warn("Batch submit: Invalid request body: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request body",
				"details": err.Error(),
			})
			return
		}

		if err := validateBatchRequest(&req, maxUsers); err != nil {
			logging.Warn("Batch submit: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid batch request",
				"details": err.Error(),
			})
			return
		}

		users := make([]string, len(req.Users))
		tokens := make([]string, len(req.Users))
		for i, u := range req.Users {
			users[i] = u.Identifier
			tokens[i] = u.SessionToken
		}
		tasks := attendance.NewTasks(users, req.EventID, tokens)

		logging.Info("Batch submit: %d users for event %s", len(tasks), req.EventID)

		sink := attendance.ProgressFunc(func(s attendance.ProgressSnapshot) {
			logging.Debug("Batch submit: %d/%d %s", s.Completed, s.Total, s.LastResult)
		})

		report, err := runner.Run(c.Request.Context(), tasks, sink)
		if err != nil {
			// The caller went away; the partial report has nowhere to go.
			logging.Warn("Batch submit: run interrupted for event %s: %v", req.EventID, err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error":   "Batch run interrupted",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, BatchResponse{
			RunID:      report.RunID,
			Total:      report.Total,
			Successful: report.Successful,
			Failed:     report.Failed,
			Results:    report.Results,
		})
	}
}

// validateBatchRequest applies the identifier rules gin binding cannot express.
func validateBatchRequest(req *BatchRequest, maxUsers int) error {
	if len(req.Users) > maxUsers {
		return fmt.Errorf("too many users: %d (max %d)", len(req.Users), maxUsers)
	}
	if err := validate.EventIDFormat(req.EventID); err != nil {
		return err
	}
	for i, u := range req.Users {
		if err := validate.UserIdentifierFormat(u.Identifier); err != nil {
			return fmt.Errorf("users[%d]: %w", i, err)
		}
	}
	return nil
}
