package trigger

import (
	"bytes"
	"encoding/json"
	"time"
)

// RunSummary is the lightweight run reference returned by the list call
type RunSummary struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// RunDetail is the full record of one run
type RunDetail struct {
	ID             string     `json:"id"`
	Status         string     `json:"status"`
	TaskIdentifier string     `json:"taskIdentifier"`
	CreatedAt      time.Time  `json:"createdAt"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`

	// Payload, Output and Error are kept as raw JSON so they can be
	// re-rendered without losing numbers or key order
	Payload json.RawMessage `json:"payload,omitempty"`
	Output  json.RawMessage `json:"output,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`

	// Large payloads and outputs are offloaded to object storage
	PayloadPresignedURL string `json:"payloadPresignedUrl,omitempty"`
	OutputPresignedURL  string `json:"outputPresignedUrl,omitempty"`
}

// HasError returns true if the run carries a truthy error payload.
// null, false, 0 and "" all count as no error.
func (r *RunDetail) HasError() bool {
	if IsAbsent(r.Error) {
		return false
	}
	var v interface{}
	if err := json.Unmarshal(r.Error, &v); err != nil {
		// not JSON; let rendering report it
		return true
	}
	switch e := v.(type) {
	case bool:
		return e
	case string:
		return e != ""
	case float64:
		return e != 0
	}
	return true
}

// IsAbsent reports whether raw holds no value or a JSON null
func IsAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// listRunsResponse is the envelope of GET /api/v1/runs
type listRunsResponse struct {
	Data       []RunSummary `json:"data"`
	Pagination struct {
		Next     string `json:"next,omitempty"`
		Previous string `json:"previous,omitempty"`
	} `json:"pagination"`
}

// errorResponse is the body Trigger.dev sends with non-2xx responses
type errorResponse struct {
	Error string `json:"error"`
}
