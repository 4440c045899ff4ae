package types

import "time"

// TestResult is the root record of one test's outcome, serialized to
// {uuid}-result.json in camelCase.
type TestResult struct {
	UUID            string         `json:"uuid"`
	HistoryID       string         `json:"historyId,omitempty"`
	TestCaseID      string         `json:"testCaseId,omitempty"`
	Name            string         `json:"name"`
	FullName        string         `json:"fullName,omitempty"`
	Description     string         `json:"description,omitempty"`
	DescriptionHTML string         `json:"descriptionHtml,omitempty"`
	Status          Status         `json:"status"`
	StatusDetails   *StatusDetails `json:"statusDetails,omitempty"`
	Stage           Stage          `json:"stage"`
	Steps           []*StepResult  `json:"steps,omitempty"`
	Attachments     []Attachment   `json:"attachments,omitempty"`
	Parameters      []Parameter    `json:"parameters,omitempty"`
	Labels          []Label        `json:"labels,omitempty"`
	Links           []Link         `json:"links,omitempty"`
	Start           int64          `json:"start"`
	Stop            int64          `json:"stop"`
}

// NewTestResult creates a result in the running stage with both timestamps
// set to now.
func NewTestResult(uuid, name string) *TestResult {
	now := CurrentTimeMs()
	return &TestResult{
		UUID:   uuid,
		Name:   name,
		Status: StatusUnknown,
		Stage:  StageRunning,
		Start:  now,
		Stop:   now,
	}
}

// AddLabel appends a label to the result.
func (r *TestResult) AddLabel(name LabelName, value string) {
	r.Labels = append(r.Labels, Label{Name: string(name), Value: value})
}

// AddLink appends a typed link to the result.
func (r *TestResult) AddLink(url, name string, linkType LinkType) {
	r.Links = append(r.Links, Link{Name: name, URL: url, Type: linkType})
}

// AddParameter appends a plain parameter to the result.
func (r *TestResult) AddParameter(name, value string) {
	r.Parameters = append(r.Parameters, Parameter{Name: name, Value: value})
}

// AddStep appends a finished step as a direct child of the result.
func (r *TestResult) AddStep(step *StepResult) {
	r.Steps = append(r.Steps, step)
}

// Details returns the status details, allocating them on first use.
func (r *TestResult) Details() *StatusDetails {
	if r.StatusDetails == nil {
		r.StatusDetails = &StatusDetails{}
	}
	return r.StatusDetails
}

// Finish stamps the stop time and moves the result to the finished stage.
func (r *TestResult) Finish() {
	r.Stop = CurrentTimeMs()
	r.Stage = StageFinished
}

// ApplyStatus applies a terminal status with optional message and trace.
// Failed, Broken, and Skipped record the message and trace when present;
// Passed and Unknown leave existing details untouched.
func (r *TestResult) ApplyStatus(status Status, message, trace string) {
	r.Status = status
	switch status {
	case StatusFailed, StatusBroken, StatusSkipped:
		if message != "" || trace != "" {
			d := r.Details()
			d.Message = message
			d.Trace = trace
		}
	}
	r.Finish()
}

// StepResult is a named, timed sub-unit of a test. It has the same shape as
// the root record minus identity and links, and nests to arbitrary depth.
type StepResult struct {
	Name          string         `json:"name"`
	Status        Status         `json:"status"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Stage         Stage          `json:"stage"`
	Steps         []*StepResult  `json:"steps,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	Parameters    []Parameter    `json:"parameters,omitempty"`
	Labels        []Label        `json:"labels,omitempty"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
}

// NewStepResult creates an open step with status unknown.
func NewStepResult(name string) *StepResult {
	now := CurrentTimeMs()
	return &StepResult{
		Name:   name,
		Status: StatusUnknown,
		Stage:  StageRunning,
		Start:  now,
		Stop:   now,
	}
}

// AddStep appends a finished child step.
func (s *StepResult) AddStep(step *StepResult) {
	s.Steps = append(s.Steps, step)
}

// AddLabel appends a label to the step.
func (s *StepResult) AddLabel(name LabelName, value string) {
	s.Labels = append(s.Labels, Label{Name: string(name), Value: value})
}

// AddParameter appends a plain parameter to the step.
func (s *StepResult) AddParameter(name, value string) {
	s.Parameters = append(s.Parameters, Parameter{Name: name, Value: value})
}

// Finish closes the step with a terminal status. Failed and Broken record
// the message and trace; Passed and the remaining statuses do not.
func (s *StepResult) Finish(status Status, message, trace string) {
	s.Status = status
	s.Stage = StageFinished
	s.Stop = CurrentTimeMs()
	if (status == StatusFailed || status == StatusBroken) && (message != "" || trace != "") {
		s.StatusDetails = &StatusDetails{Message: message, Trace: trace}
	}
}

// StatusDetails carries the failure message, stack trace, and the
// known/muted/flaky flags for a result or step.
type StatusDetails struct {
	Known   bool   `json:"known,omitempty"`
	Muted   bool   `json:"muted,omitempty"`
	Flaky   bool   `json:"flaky,omitempty"`
	Message string `json:"message,omitempty"`
	Trace   string `json:"trace,omitempty"`
}

// Label is a key-value pair used for categorizing and filtering tests.
type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Link is an external reference attached to a result.
type Link struct {
	Name string   `json:"name,omitempty"`
	URL  string   `json:"url"`
	Type LinkType `json:"type,omitempty"`
}

// Parameter is a named input recorded on a result or step. Excluded
// parameters do not contribute to the history id.
type Parameter struct {
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Excluded bool          `json:"excluded,omitempty"`
	Mode     ParameterMode `json:"mode,omitempty"`
}

// HiddenParameter creates a parameter whose value is not displayed.
func HiddenParameter(name, value string) Parameter {
	return Parameter{Name: name, Value: value, Mode: ParameterModeHidden}
}

// MaskedParameter creates a parameter whose value is masked in the report.
func MaskedParameter(name, value string) Parameter {
	return Parameter{Name: name, Value: value, Mode: ParameterModeMasked}
}

// ExcludedParameter creates a parameter excluded from the history id.
func ExcludedParameter(name, value string) Parameter {
	return Parameter{Name: name, Value: value, Excluded: true}
}

// Attachment references a persisted side-file by its stored filename.
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type,omitempty"`
}

// CurrentTimeMs returns the current time in milliseconds since the Unix
// epoch, the timestamp unit used throughout the artifact layout.
func CurrentTimeMs() int64 {
	return time.Now().UnixMilli()
}
