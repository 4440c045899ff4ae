package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestResult(t *testing.T) {
	result := NewTestResult("test-uuid", "Test Name")

	assert.Equal(t, "test-uuid", result.UUID)
	assert.Equal(t, "Test Name", result.Name)
	assert.Equal(t, StatusUnknown, result.Status)
	assert.Equal(t, StageRunning, result.Stage)
	assert.Equal(t, result.Start, result.Stop)
}

func TestApplyStatus(t *testing.T) {
	tests := []struct {
		name          string
		status        Status
		message       string
		trace         string
		expectDetails bool
	}{
		{
			name:          "passed clears nothing and records nothing",
			status:        StatusPassed,
			message:       "ignored",
			trace:         "ignored",
			expectDetails: false,
		},
		{
			name:          "failed records message and trace",
			status:        StatusFailed,
			message:       "assertion failed",
			trace:         "stack",
			expectDetails: true,
		},
		{
			name:          "broken records message and trace",
			status:        StatusBroken,
			message:       "unexpected error",
			trace:         "stack",
			expectDetails: true,
		},
		{
			name:          "skipped with reason records details",
			status:        StatusSkipped,
			message:       "not supported here",
			expectDetails: true,
		},
		{
			name:          "skipped without reason records nothing",
			status:        StatusSkipped,
			expectDetails: false,
		},
		{
			name:          "unknown records nothing even with a message",
			status:        StatusUnknown,
			message:       "ignored",
			trace:         "ignored",
			expectDetails: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewTestResult("uuid", "name")
			result.ApplyStatus(tt.status, tt.message, tt.trace)

			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, StageFinished, result.Stage)
			if tt.expectDetails {
				require.NotNil(t, result.StatusDetails)
				assert.Equal(t, tt.message, result.StatusDetails.Message)
				assert.Equal(t, tt.trace, result.StatusDetails.Trace)
			} else {
				assert.Nil(t, result.StatusDetails)
			}
		})
	}
}

func TestApplyStatusKeepsExistingFlags(t *testing.T) {
	result := NewTestResult("uuid", "name")
	result.Details().Flaky = true

	result.ApplyStatus(StatusFailed, "boom", "stack")

	require.NotNil(t, result.StatusDetails)
	assert.True(t, result.StatusDetails.Flaky)
	assert.Equal(t, "boom", result.StatusDetails.Message)
}

func TestStepFinish(t *testing.T) {
	step := NewStepResult("Step 1")
	assert.Equal(t, StatusUnknown, step.Status)
	assert.Equal(t, StageRunning, step.Stage)

	step.AddParameter("input", "value")
	step.Finish(StatusPassed, "ignored", "ignored")

	assert.Equal(t, StatusPassed, step.Status)
	assert.Equal(t, StageFinished, step.Stage)
	assert.Nil(t, step.StatusDetails)
	assert.Len(t, step.Parameters, 1)
}

func TestStepFinishFailedRecordsDetails(t *testing.T) {
	step := NewStepResult("failing")
	step.Finish(StatusFailed, "boom", "trace")

	require.NotNil(t, step.StatusDetails)
	assert.Equal(t, "boom", step.StatusDetails.Message)
	assert.Equal(t, "trace", step.StatusDetails.Trace)
}

func TestResultSerialization(t *testing.T) {
	result := NewTestResult("uuid-123", "My Test")
	result.FullName = "pkg/example.TestMyTest"
	result.AddLabel(LabelEpic, "Identity")
	result.AddLabel(LabelSeverity, string(SeverityCritical))
	result.AddLink("https://issues.example.com/1", "ISSUE-1", LinkTypeIssue)
	result.ApplyStatus(StatusPassed, "", "")

	data, err := json.Marshal(result)
	require.NoError(t, err)

	payload := string(data)
	assert.Contains(t, payload, `"uuid":"uuid-123"`)
	assert.Contains(t, payload, `"fullName":"pkg/example.TestMyTest"`)
	assert.Contains(t, payload, `"status":"passed"`)
	assert.Contains(t, payload, `"stage":"finished"`)
	assert.Contains(t, payload, `"epic"`)
	assert.NotContains(t, payload, "historyId", "empty optionals must be omitted")
	assert.NotContains(t, payload, "statusDetails")
}

func TestResultRoundTrip(t *testing.T) {
	result := NewTestResult("uuid-rt", "Round Trip")
	result.FullName = "pkg/example.TestRoundTrip"
	result.HistoryID = "abcdef0123456789abcdef0123456789"
	result.AddLabel(LabelFeature, "serialization")
	result.AddParameter("count", "3")
	result.Parameters = append(result.Parameters, ExcludedParameter("attempt", "2"))
	step := NewStepResult("only step")
	step.Finish(StatusFailed, "boom", "trace")
	result.AddStep(step)
	result.ApplyStatus(StatusFailed, "boom", "trace")

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded TestResult
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, *result.StatusDetails, *decoded.StatusDetails)
	assert.Equal(t, result.Labels, decoded.Labels)
	assert.Equal(t, result.Parameters, decoded.Parameters)
	require.Len(t, decoded.Steps, 1)
	assert.Equal(t, *result.Steps[0], *decoded.Steps[0])
	assert.Equal(t, result.Start, decoded.Start)
	assert.Equal(t, result.Stop, decoded.Stop)
}

func TestParameterConstructors(t *testing.T) {
	assert.Equal(t, ParameterModeHidden, HiddenParameter("token", "x").Mode)
	assert.Equal(t, ParameterModeMasked, MaskedParameter("password", "x").Mode)
	assert.True(t, ExcludedParameter("timestamp", "x").Excluded)
}
