package snapshot

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"text/template"
	"time"

	"github.com/Backland-Labs/runsnap/internal/trigger"
)

const (
	// NotApplicable stands in for a missing finish time
	NotApplicable = "N/A"

	// NoError is the Error section body for runs without an error
	NoError = "No error"

	// isoMillis matches JavaScript's Date.toISOString for UTC times
	isoMillis = "2006-01-02T15:04:05.000Z07:00"
)

//go:embed report.md.tmpl
var reportTemplate string

var reportTmpl = template.Must(template.New("report").Parse(reportTemplate))

type reportView struct {
	ID          string
	Environment string
	Status      string
	Task        string
	CreatedAt   string
	FinishedAt  string
	Input       string
	Output      string
	Error       string
}

// RenderReport renders the Markdown snapshot of run for env
func RenderReport(env string, run *trigger.RunDetail) ([]byte, error) {
	view := reportView{
		ID:          run.ID,
		Environment: env,
		Status:      run.Status,
		Task:        run.TaskIdentifier,
		CreatedAt:   FormatISO(run.CreatedAt),
		FinishedAt:  NotApplicable,
	}
	if run.FinishedAt != nil {
		view.FinishedAt = FormatISO(*run.FinishedAt)
	}

	var err error
	if view.Input, err = prettyJSON(run.Payload); err != nil {
		return nil, fmt.Errorf("failed to format input: %w", err)
	}
	if view.Output, err = prettyJSON(run.Output); err != nil {
		return nil, fmt.Errorf("failed to format output: %w", err)
	}
	if run.HasError() {
		if view.Error, err = prettyJSON(run.Error); err != nil {
			return nil, fmt.Errorf("failed to format error: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to execute report template: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatISO renders t in UTC with millisecond precision
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// prettyJSON re-indents raw with two spaces; absent values render as null
func prettyJSON(raw json.RawMessage) (string, error) {
	if trigger.IsAbsent(raw) {
		return "null", nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
