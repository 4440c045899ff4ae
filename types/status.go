package types

// Status represents the terminal outcome of a test or step.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusBroken  Status = "broken"
	StatusSkipped Status = "skipped"
	StatusUnknown Status = "unknown"
)

// String returns the lowercase wire representation of the status.
func (s Status) String() string {
	return string(s)
}

// Valid reports whether the status belongs to the fixed vocabulary.
func (s Status) Valid() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusBroken, StatusSkipped, StatusUnknown:
		return true
	}
	return false
}

// Stage represents the execution stage of a test or step.
type Stage string

const (
	StageScheduled   Stage = "scheduled"
	StageRunning     Stage = "running"
	StageFinished    Stage = "finished"
	StagePending     Stage = "pending"
	StageInterrupted Stage = "interrupted"
)

// Severity is the priority classification attached via the severity label.
type Severity string

const (
	SeverityBlocker  Severity = "blocker"
	SeverityCritical Severity = "critical"
	SeverityNormal   Severity = "normal"
	SeverityMinor    Severity = "minor"
	SeverityTrivial  Severity = "trivial"
)

func (s Severity) String() string {
	return string(s)
}

// LinkType classifies external links on a result.
type LinkType string

const (
	LinkTypeDefault LinkType = "link"
	LinkTypeIssue   LinkType = "issue"
	LinkTypeTms     LinkType = "tms"
)

// ParameterMode controls how a parameter value is displayed in the report.
type ParameterMode string

const (
	ParameterModeHidden ParameterMode = "hidden"
	ParameterModeMasked ParameterMode = "masked"
)

// LabelName is a reserved label key understood by the report generator.
type LabelName string

const (
	LabelAllureID    LabelName = "AS_ID"
	LabelSuite       LabelName = "suite"
	LabelParentSuite LabelName = "parentSuite"
	LabelSubSuite    LabelName = "subSuite"
	LabelEpic        LabelName = "epic"
	LabelFeature     LabelName = "feature"
	LabelStory       LabelName = "story"
	LabelSeverity    LabelName = "severity"
	LabelTag         LabelName = "tag"
	LabelOwner       LabelName = "owner"
	LabelHost        LabelName = "host"
	LabelThread      LabelName = "thread"
	LabelTestMethod  LabelName = "testMethod"
	LabelTestClass   LabelName = "testClass"
	LabelPackage     LabelName = "package"
	LabelFramework   LabelName = "framework"
	LabelLanguage    LabelName = "language"
)

func (l LabelName) String() string {
	return string(l)
}
