// Package mock provides mock implementations of trigger interfaces for testing.
package mock

import (
	"context"
	"fmt"

	"github.com/Backland-Labs/runsnap/internal/trigger"
)

// Client is a mock implementation of trigger.Client.
type Client struct {
	// ListRunsFunc is called when ListRuns is invoked
	ListRunsFunc func(ctx context.Context, limit int) ([]trigger.RunSummary, error)

	// RetrieveRunFunc is called when RetrieveRun is invoked
	RetrieveRunFunc func(ctx context.Context, runID string) (*trigger.RunDetail, error)

	// ListRunsCalls records the limit of each ListRuns call
	ListRunsCalls []int

	// RetrieveRunCalls records the run ID of each RetrieveRun call
	RetrieveRunCalls []string
}

// ListRuns implements trigger.Client.
func (m *Client) ListRuns(ctx context.Context, limit int) ([]trigger.RunSummary, error) {
	m.ListRunsCalls = append(m.ListRunsCalls, limit)

	if m.ListRunsFunc != nil {
		return m.ListRunsFunc(ctx, limit)
	}
	return nil, nil
}

// RetrieveRun implements trigger.Client.
func (m *Client) RetrieveRun(ctx context.Context, runID string) (*trigger.RunDetail, error) {
	m.RetrieveRunCalls = append(m.RetrieveRunCalls, runID)

	if m.RetrieveRunFunc != nil {
		return m.RetrieveRunFunc(ctx, runID)
	}
	return nil, fmt.Errorf("run not found: %s", runID)
}
