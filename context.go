package allure

import (
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/andreivcodes/allure-go/metrics"
	"github.com/andreivcodes/allure-go/types"
	"github.com/andreivcodes/allure-go/writer"
)

const stepNotCompletedMessage = "Step not completed"

// TestContext owns one in-progress result tree: the root result plus a
// LIFO stack of open steps, and the sink the finished tree is persisted
// through. A context is created once per test invocation, mutated
// throughout execution, and consumed exactly once by Finish.
type TestContext struct {
	Result *types.TestResult

	steps []*types.StepResult
	out   *writer.Writer
	log   *zap.Logger
}

// NewTestContext creates a fresh context for one test invocation with a
// new uuid, a start timestamp, and the default host/thread/framework/
// language labels.
func NewTestContext(name, fullName string) *TestContext {
	cfg := CurrentConfig()
	result := types.NewTestResult(writer.GenerateUUID(), name)
	result.FullName = fullName

	result.AddLabel(types.LabelLanguage, "go")
	result.AddLabel(types.LabelFramework, "allure-go")
	if host := hostname(); host != "" {
		result.AddLabel(types.LabelHost, host)
	}
	result.AddLabel(types.LabelThread, goroutineLabel())

	return &TestContext{
		Result: result,
		out:    writer.New(cfg.ResultsDir),
		log:    cfg.logger(),
	}
}

func hostname() string {
	if host := os.Getenv("HOSTNAME"); host != "" {
		return host
	}
	host, err := os.Hostname()
	if err != nil {
		return ""
	}
	return host
}

// goroutineLabel derives a thread-style label from the current goroutine's
// id.
func goroutineLabel() string {
	return "goroutine-" + strconv.FormatUint(goroutineID(), 10)
}

// currentStep returns the most recently opened step, or nil when the stack
// is empty.
func (c *TestContext) currentStep() *types.StepResult {
	if len(c.steps) == 0 {
		return nil
	}
	return c.steps[len(c.steps)-1]
}

// AddLabel attaches a label to the current scope: the top-of-stack step if
// one is open, else the root result.
func (c *TestContext) AddLabel(name types.LabelName, value string) {
	if step := c.currentStep(); step != nil {
		step.AddLabel(name, value)
		return
	}
	c.Result.AddLabel(name, value)
}

// AddLink attaches a link to the root result. Links exist only at the root.
func (c *TestContext) AddLink(url, name string, linkType types.LinkType) {
	c.Result.AddLink(url, name, linkType)
}

// AddParameter attaches a plain parameter to the current scope.
func (c *TestContext) AddParameter(name, value string) {
	if step := c.currentStep(); step != nil {
		step.AddParameter(name, value)
		return
	}
	c.Result.AddParameter(name, value)
}

// AddParameterOpt attaches a parameter with display or exclusion options
// to the current scope.
func (c *TestContext) AddParameterOpt(p types.Parameter) {
	if step := c.currentStep(); step != nil {
		step.Parameters = append(step.Parameters, p)
		return
	}
	c.Result.Parameters = append(c.Result.Parameters, p)
}

// AddAttachment records an already-persisted attachment on the current
// scope.
func (c *TestContext) AddAttachment(att types.Attachment) {
	if step := c.currentStep(); step != nil {
		step.Attachments = append(step.Attachments, att)
		return
	}
	c.Result.Attachments = append(c.Result.Attachments, att)
}

// StartStep pushes a new open step onto the stack.
func (c *TestContext) StartStep(name string) {
	c.steps = append(c.steps, types.NewStepResult(name))
}

// FinishStep pops the most recently opened step, applies the terminal
// status, and moves it into the new top-of-stack step, or into the root
// when the stack is empty. Callers must close steps in LIFO order; the
// discipline is not validated. With no open step this is a no-op.
func (c *TestContext) FinishStep(status types.Status, message, trace string) {
	step := c.currentStep()
	if step == nil {
		return
	}
	c.steps = c.steps[:len(c.steps)-1]
	step.Finish(status, message, trace)

	if parent := c.currentStep(); parent != nil {
		parent.AddStep(step)
		return
	}
	c.Result.AddStep(step)
}

// computeHistoryID derives and sets the stable cross-run identity from the
// full name and the non-excluded parameters.
func (c *TestContext) computeHistoryID() {
	if c.Result.FullName == "" {
		return
	}
	c.Result.HistoryID = writer.ComputeHistoryID(c.Result.FullName, c.Result.Parameters)
}

// Finish consumes the context: it force-closes any dangling steps as
// Broken, computes the history id, applies the terminal status, and
// persists the result plus a container linking it. Persistence failures
// are logged and swallowed; reporting must never fail the test.
func (c *TestContext) Finish(status types.Status, message, trace string) {
	forced := 0
	for len(c.steps) > 0 {
		c.FinishStep(types.StatusBroken, stepNotCompletedMessage, "")
		forced++
	}
	if forced > 0 {
		metrics.RecordForceClosedSteps(forced)
	}

	c.computeHistoryID()
	c.Result.ApplyStatus(status, message, trace)

	if _, err := c.out.WriteResult(c.Result); err != nil {
		c.log.Warn("failed to write test result",
			zap.String("uuid", c.Result.UUID), zap.Error(err))
		metrics.RecordWriteError("result")
	} else {
		metrics.RecordResult(string(c.Result.Status))
	}

	container := types.NewContainer(writer.GenerateUUID())
	container.AddChild(c.Result.UUID)
	container.Start = c.Result.Start
	container.Stop = c.Result.Stop
	if _, err := c.out.WriteContainer(container); err != nil {
		c.log.Warn("failed to write container",
			zap.String("uuid", container.UUID), zap.Error(err))
		metrics.RecordWriteError("container")
	} else {
		metrics.RecordContainer()
	}
}

// AttachText persists content as a text attachment and records it on the
// current scope. Failures are logged and swallowed.
func (c *TestContext) AttachText(name, content string) {
	c.recordAttachment(c.out.WriteTextAttachment(name, content))
}

// AttachJSON serializes v as a JSON attachment on the current scope.
func (c *TestContext) AttachJSON(name string, v any) {
	c.recordAttachment(c.out.WriteJSONAttachment(name, v))
}

// AttachBytes persists raw bytes with the given content type on the
// current scope.
func (c *TestContext) AttachBytes(name string, content []byte, contentType types.ContentType) {
	c.recordAttachment(c.out.WriteBytesAttachment(name, content, contentType))
}

// AttachFile copies a file into the results directory and records it on
// the current scope. An empty content type is guessed from the extension.
func (c *TestContext) AttachFile(name, path string, contentType types.ContentType) {
	c.recordAttachment(c.out.CopyFileAttachment(name, path, contentType))
}

func (c *TestContext) recordAttachment(att types.Attachment, err error) {
	if err != nil {
		c.log.Warn("failed to write attachment", zap.Error(err))
		metrics.RecordWriteError("attachment")
		return
	}
	c.AddAttachment(att)
	metrics.RecordAttachment()
}
