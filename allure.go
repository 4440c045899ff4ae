// Package allure is a runtime for assembling Allure-compatible test
// reports. During one test's execution it accumulates a tree of step,
// attachment, and label outcomes against the currently executing test's
// context, and at completion serializes the tree into the results
// directory consumed by the report generator.
//
// The ambient helpers below resolve the current context through the
// default registry and are silent no-ops when no test is being tracked.
package allure

import (
	"runtime/debug"

	"github.com/andreivcodes/allure-go/types"
)

// Label attaches a custom label to the current scope.
func Label(name, value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelName(name), value) })
}

// Epic attaches an epic label, the top of the BDD hierarchy.
func Epic(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelEpic, value) })
}

// Feature attaches a feature label.
func Feature(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelFeature, value) })
}

// Story attaches a story label.
func Story(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelStory, value) })
}

// Suite attaches a suite label.
func Suite(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelSuite, value) })
}

// ParentSuite attaches a parent suite label.
func ParentSuite(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelParentSuite, value) })
}

// SubSuite attaches a sub-suite label.
func SubSuite(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelSubSuite, value) })
}

// Severity attaches a severity label.
func Severity(severity types.Severity) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelSeverity, severity.String()) })
}

// Owner attaches an owner label.
func Owner(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelOwner, value) })
}

// Tag attaches a tag label.
func Tag(value string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelTag, value) })
}

// Tags attaches one tag label per value.
func Tags(values ...string) {
	mutate(func(c *TestContext) {
		for _, v := range values {
			c.AddLabel(types.LabelTag, v)
		}
	})
}

// AllureID attaches the AS_ID label used by TestOps integrations.
func AllureID(id string) {
	mutate(func(c *TestContext) { c.AddLabel(types.LabelAllureID, id) })
}

// Title overrides the display name of the current test.
func Title(name string) {
	mutate(func(c *TestContext) { c.Result.Name = name })
}

// Description sets the markdown description of the current test.
func Description(text string) {
	mutate(func(c *TestContext) { c.Result.Description = text })
}

// DescriptionHTML sets the HTML description of the current test.
func DescriptionHTML(html string) {
	mutate(func(c *TestContext) { c.Result.DescriptionHTML = html })
}

// TestCaseID links the current test to a test management system case.
func TestCaseID(id string) {
	mutate(func(c *TestContext) { c.Result.TestCaseID = id })
}

// Issue attaches an issue link to the current test.
func Issue(url, name string) {
	mutate(func(c *TestContext) { c.AddLink(url, name, types.LinkTypeIssue) })
}

// TMS attaches a test management system link to the current test.
func TMS(url, name string) {
	mutate(func(c *TestContext) { c.AddLink(url, name, types.LinkTypeTms) })
}

// Link attaches a generic link to the current test.
func Link(url, name string) {
	mutate(func(c *TestContext) { c.AddLink(url, name, types.LinkTypeDefault) })
}

// Parameter records a plain parameter on the current scope.
func Parameter(name, value string) {
	mutate(func(c *TestContext) { c.AddParameter(name, value) })
}

// ParameterHidden records a parameter whose value is not displayed.
func ParameterHidden(name, value string) {
	mutate(func(c *TestContext) { c.AddParameterOpt(types.HiddenParameter(name, value)) })
}

// ParameterMasked records a parameter with a masked value.
func ParameterMasked(name, value string) {
	mutate(func(c *TestContext) { c.AddParameterOpt(types.MaskedParameter(name, value)) })
}

// ParameterExcluded records a parameter excluded from the history id.
func ParameterExcluded(name, value string) {
	mutate(func(c *TestContext) { c.AddParameterOpt(types.ExcludedParameter(name, value)) })
}

// Step executes body as a named step of the current test. Steps nest to
// arbitrary depth following the call structure. A panic in body closes the
// step as Failed with the panic message and stack, then re-propagates.
func Step(name string, body func()) {
	mutate(func(c *TestContext) { c.StartStep(name) })
	defer func() {
		if r := recover(); r != nil {
			msg, trace := panicMessage(r), string(debug.Stack())
			mutate(func(c *TestContext) { c.FinishStep(types.StatusFailed, msg, trace) })
			panic(r)
		}
		mutate(func(c *TestContext) { c.FinishStep(types.StatusPassed, "", "") })
	}()
	body()
}

// LogStep records a bodiless step with the given status, for noting events
// or state transitions.
func LogStep(name string, status types.Status) {
	mutate(func(c *TestContext) {
		c.StartStep(name)
		c.FinishStep(status, "", "")
	})
}

// AttachText attaches text content to the current scope.
func AttachText(name, content string) {
	mutate(func(c *TestContext) { c.AttachText(name, content) })
}

// AttachJSON serializes v and attaches it to the current scope.
func AttachJSON(name string, v any) {
	mutate(func(c *TestContext) { c.AttachJSON(name, v) })
}

// AttachBytes attaches raw bytes with the given content type to the
// current scope.
func AttachBytes(name string, content []byte, contentType types.ContentType) {
	mutate(func(c *TestContext) { c.AttachBytes(name, content, contentType) })
}

// AttachFile copies a file into the results directory and attaches it to
// the current scope. Pass an empty content type to guess from the file
// extension.
func AttachFile(name, path string, contentType types.ContentType) {
	mutate(func(c *TestContext) { c.AttachFile(name, path, contentType) })
}

// Flaky marks the current test as flaky.
func Flaky() {
	mutate(func(c *TestContext) { c.Result.Details().Flaky = true })
}

// Muted marks the current test as muted, excluding it from report
// statistics.
func Muted() {
	mutate(func(c *TestContext) { c.Result.Details().Muted = true })
}

// KnownIssue marks the current test as a known issue and records the
// issue link.
func KnownIssue(url string) {
	mutate(func(c *TestContext) {
		c.Result.Details().Known = true
		c.AddLink(url, url, types.LinkTypeIssue)
	})
}

// Skip finalizes the current test as Skipped with the given reason. The
// context is consumed; nothing recorded afterwards is tracked.
func Skip(reason string) {
	if tc := DefaultRegistry().Retrieve(nil); tc != nil {
		tc.Finish(types.StatusSkipped, reason, "")
	}
}
