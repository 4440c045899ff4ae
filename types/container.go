package types

// Container links one or more results (and optionally fixtures) so the
// report generator can reach every result. Serialized to
// {uuid}-container.json.
type Container struct {
	UUID     string          `json:"uuid"`
	Name     string          `json:"name,omitempty"`
	Children []string        `json:"children,omitempty"`
	Befores  []FixtureResult `json:"befores,omitempty"`
	Afters   []FixtureResult `json:"afters,omitempty"`
	Start    int64           `json:"start,omitempty"`
	Stop     int64           `json:"stop,omitempty"`
}

// NewContainer creates an empty container with the given uuid.
func NewContainer(uuid string) *Container {
	return &Container{UUID: uuid}
}

// AddChild records a result uuid as reachable through this container.
func (c *Container) AddChild(resultUUID string) {
	c.Children = append(c.Children, resultUUID)
}

// AddBefore appends a setup fixture.
func (c *Container) AddBefore(fixture FixtureResult) {
	c.Befores = append(c.Befores, fixture)
}

// AddAfter appends a teardown fixture.
func (c *Container) AddAfter(fixture FixtureResult) {
	c.Afters = append(c.Afters, fixture)
}

// FixtureResult records a setup or teardown run inside a container.
type FixtureResult struct {
	Name          string         `json:"name"`
	Status        Status         `json:"status"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Stage         Stage          `json:"stage"`
	Steps         []*StepResult  `json:"steps,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
	Parameters    []Parameter    `json:"parameters,omitempty"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
}

// NewFixtureResult creates a running fixture with both timestamps set to now.
func NewFixtureResult(name string) FixtureResult {
	now := CurrentTimeMs()
	return FixtureResult{
		Name:   name,
		Status: StatusUnknown,
		Stage:  StageRunning,
		Start:  now,
		Stop:   now,
	}
}

// Finish closes the fixture with a terminal status.
func (f *FixtureResult) Finish(status Status, message, trace string) {
	f.Status = status
	f.Stage = StageFinished
	f.Stop = CurrentTimeMs()
	if (status == StatusFailed || status == StatusBroken) && (message != "" || trace != "") {
		f.StatusDetails = &StatusDetails{Message: message, Trace: trace}
	}
}

// Category is a passthrough defect-classification rule written to
// categories.json. Matching is performed by the report generator.
type Category struct {
	Name            string   `json:"name" yaml:"name"`
	MatchedStatuses []Status `json:"matchedStatuses,omitempty" yaml:"matched_statuses,omitempty"`
	MessageRegex    string   `json:"messageRegex,omitempty" yaml:"message_regex,omitempty"`
	TraceRegex      string   `json:"traceRegex,omitempty" yaml:"trace_regex,omitempty"`
	Flaky           bool     `json:"flaky,omitempty" yaml:"flaky,omitempty"`
}

// NewCategory creates a category with the given display name.
func NewCategory(name string) Category {
	return Category{Name: name}
}

// WithStatus adds a status the category matches against.
func (c Category) WithStatus(status Status) Category {
	c.MatchedStatuses = append(c.MatchedStatuses, status)
	return c
}

// WithMessageRegex sets the pattern matched against the failure message.
func (c Category) WithMessageRegex(pattern string) Category {
	c.MessageRegex = pattern
	return c
}

// WithTraceRegex sets the pattern matched against the stack trace.
func (c Category) WithTraceRegex(pattern string) Category {
	c.TraceRegex = pattern
	return c
}

// AsFlaky marks tests matching the category as flaky.
func (c Category) AsFlaky() Category {
	c.Flaky = true
	return c
}
