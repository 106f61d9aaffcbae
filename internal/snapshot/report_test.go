package snapshot

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Backland-Labs/runsnap/internal/trigger"
)

func completedRun() *trigger.RunDetail {
	finished := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
	return &trigger.RunDetail{
		ID:             "run_1",
		Status:         "COMPLETED",
		TaskIdentifier: "my-task",
		CreatedAt:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FinishedAt:     &finished,
		Payload:        json.RawMessage(`{"a":1}`),
		Output:         json.RawMessage(`{"b":2}`),
		Error:          json.RawMessage(`null`),
	}
}

var jsonBlock = regexp.MustCompile("(?s)## (Input|Output|Error)\n```json\n(.*?)\n```")

// sections returns the fenced JSON body of each report section by name
func sections(t *testing.T, report string) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, m := range jsonBlock.FindAllStringSubmatch(report, -1) {
		out[m[1]] = m[2]
	}
	return out
}

func TestRenderReportCompletedRun(t *testing.T) {
	content, err := RenderReport("dev", completedRun())
	require.NoError(t, err)
	report := string(content)

	assert.True(t, strings.HasPrefix(report, "# Trigger.dev Run Snapshot: run_1\n"))
	for _, want := range []string{
		"**Environment**: dev\n",
		"**Status**: COMPLETED\n",
		"**Task**: my-task\n",
		"**Created At**: 2024-01-01T00:00:00.000Z\n",
		"**Finished At**: 2024-01-01T00:01:00.000Z\n",
		"## Input\n```json\n{\n  \"a\": 1\n}\n```\n",
		"## Output\n```json\n{\n  \"b\": 2\n}\n```\n",
		"## Error\nNo error\n",
		"## Logs (Snippet)\n",
	} {
		assert.Contains(t, report, want)
	}
}

func TestRenderReportMissingFinishTime(t *testing.T) {
	run := completedRun()
	run.Status = "EXECUTING"
	run.FinishedAt = nil

	content, err := RenderReport("prod", run)
	require.NoError(t, err)

	assert.Contains(t, string(content), "**Finished At**: N/A\n")
	assert.Contains(t, string(content), "**Environment**: prod\n")
}

func TestRenderReportAbsentPayloads(t *testing.T) {
	run := completedRun()
	run.Payload = nil
	run.Output = json.RawMessage(`null`)
	run.Error = nil

	content, err := RenderReport("dev", run)
	require.NoError(t, err)

	got := sections(t, string(content))
	assert.Equal(t, "null", got["Input"])
	assert.Equal(t, "null", got["Output"])
	assert.Contains(t, string(content), "## Error\nNo error\n")
}

func TestRenderReportRoundTrip(t *testing.T) {
	run := completedRun()
	run.Status = "FAILED"
	run.Payload = json.RawMessage(`{"nested":{"list":[1,2.5,"x",null,true]},"big":12345678901234567890,"emoji":"✓","html":"<b>&</b>"}`)
	run.Output = json.RawMessage(`[{"k":"v"}]`)
	run.Error = json.RawMessage(`{"message":"boom","name":"Error","stackTrace":"Error: boom\n    at run (task.ts:1:1)"}`)

	content, err := RenderReport("dev", run)
	require.NoError(t, err)

	got := sections(t, string(content))
	require.Len(t, got, 3)
	assert.JSONEq(t, string(run.Payload), got["Input"])
	assert.JSONEq(t, string(run.Output), got["Output"])
	assert.JSONEq(t, string(run.Error), got["Error"])
	assert.NotContains(t, string(content), NoError)

	// two-space indentation
	assert.Contains(t, got["Error"], "\n  \"message\": \"boom\"")
}

func TestRenderReportInvalidPayload(t *testing.T) {
	run := completedRun()
	run.Output = json.RawMessage(`{"b":`)

	_, err := RenderReport("dev", run)
	assert.ErrorContains(t, err, "failed to format output")
}

func TestFormatISO(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 3, 5, 14, 7, 9, 123456789, loc)
	assert.Equal(t, "2024-03-05T12:07:09.123Z", FormatISO(ts))
}

func TestRenderReportFalsyErrorIsNoError(t *testing.T) {
	for _, raw := range []string{`""`, `false`, `0`} {
		t.Run(raw, func(t *testing.T) {
			run := completedRun()
			run.Error = json.RawMessage(raw)

			content, err := RenderReport("dev", run)
			require.NoError(t, err)

			assert.Contains(t, string(content), "## Error\nNo error\n")
			_, fenced := sections(t, string(content))["Error"]
			assert.False(t, fenced)
		})
	}
}
