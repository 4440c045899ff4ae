package allure

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreivcodes/allure-go/types"
)

// configureResultsDir points the runtime at a fresh temporary results
// directory for the duration of one test.
func configureResultsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, Configure(Config{ResultsDir: dir}))
	return dir
}

// readResults decodes every result file in dir, ordered by filename.
func readResults(t *testing.T, dir string) []types.TestResult {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*-result.json"))
	require.NoError(t, err)

	results := make([]types.TestResult, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var result types.TestResult
		require.NoError(t, json.Unmarshal(data, &result))
		results = append(results, result)
	}
	return results
}

// readContainers decodes every container file in dir.
func readContainers(t *testing.T, dir string) []types.Container {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join(dir, "*-container.json"))
	require.NoError(t, err)

	containers := make([]types.Container, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		var container types.Container
		require.NoError(t, json.Unmarshal(data, &container))
		containers = append(containers, container)
	}
	return containers
}

func TestNewTestContextDefaults(t *testing.T) {
	configureResultsDir(t)

	tc := NewTestContext("My Test", "pkg.TestMyTest")

	assert.NotEmpty(t, tc.Result.UUID)
	assert.Equal(t, "My Test", tc.Result.Name)
	assert.Equal(t, "pkg.TestMyTest", tc.Result.FullName)
	assert.Equal(t, types.StatusUnknown, tc.Result.Status)

	labels := map[types.LabelName]string{}
	for _, l := range tc.Result.Labels {
		labels[types.LabelName(l.Name)] = l.Value
	}
	assert.Equal(t, "go", labels[types.LabelLanguage])
	assert.Equal(t, "allure-go", labels[types.LabelFramework])
	assert.True(t, strings.HasPrefix(labels[types.LabelThread], "goroutine"))
}

func TestStepNesting(t *testing.T) {
	configureResultsDir(t)
	tc := NewTestContext("nesting", "pkg.TestNesting")

	tc.StartStep("outer")
	tc.StartStep("inner")
	tc.FinishStep(types.StatusPassed, "", "")
	tc.FinishStep(types.StatusPassed, "", "")

	require.Len(t, tc.Result.Steps, 1)
	outer := tc.Result.Steps[0]
	assert.Equal(t, "outer", outer.Name)
	assert.Equal(t, types.StatusPassed, outer.Status)
	require.Len(t, outer.Steps, 1)
	assert.Equal(t, "inner", outer.Steps[0].Name)
	assert.Empty(t, outer.Steps[0].Steps)
}

func TestFinishStepWithoutOpenStepIsNoOp(t *testing.T) {
	configureResultsDir(t)
	tc := NewTestContext("empty", "pkg.TestEmpty")

	tc.FinishStep(types.StatusPassed, "", "")

	assert.Empty(t, tc.Result.Steps)
}

func TestCurrentScopeRouting(t *testing.T) {
	configureResultsDir(t)
	tc := NewTestContext("routing", "pkg.TestRouting")

	tc.AddParameter("root-param", "1")
	tc.AddLabel(types.LabelTag, "root-tag")

	tc.StartStep("step")
	tc.AddParameter("step-param", "2")
	tc.AddLabel(types.LabelTag, "step-tag")
	tc.AddAttachment(types.Attachment{Name: "step-att", Source: "x.txt", Type: "text/plain"})
	tc.FinishStep(types.StatusPassed, "", "")

	tc.AddParameter("root-param-after", "3")

	require.Len(t, tc.Result.Steps, 1)
	step := tc.Result.Steps[0]

	assert.Equal(t, []types.Parameter{{Name: "step-param", Value: "2"}}, step.Parameters)
	require.Len(t, step.Labels, 1)
	assert.Equal(t, "step-tag", step.Labels[0].Value)
	require.Len(t, step.Attachments, 1)

	names := make([]string, 0, len(tc.Result.Parameters))
	for _, p := range tc.Result.Parameters {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"root-param", "root-param-after"}, names)
	assert.Empty(t, tc.Result.Attachments)
}

func TestLinksAlwaysAttachToRoot(t *testing.T) {
	configureResultsDir(t)
	tc := NewTestContext("links", "pkg.TestLinks")

	tc.StartStep("step")
	tc.AddLink("https://issues.example.com/42", "JIRA-42", types.LinkTypeIssue)
	tc.FinishStep(types.StatusPassed, "", "")

	require.Len(t, tc.Result.Links, 1)
	assert.Equal(t, "https://issues.example.com/42", tc.Result.Links[0].URL)
}

func TestFinishWritesResultAndContainer(t *testing.T) {
	dir := configureResultsDir(t)
	tc := NewTestContext("persisted", "pkg.TestPersisted")

	tc.Finish(types.StatusPassed, "", "")

	results := readResults(t, dir)
	require.Len(t, results, 1)
	assert.Equal(t, types.StatusPassed, results[0].Status)
	assert.Equal(t, types.StageFinished, results[0].Stage)
	assert.GreaterOrEqual(t, results[0].Stop, results[0].Start)

	containers := readContainers(t, dir)
	require.Len(t, containers, 1)
	assert.Equal(t, []string{results[0].UUID}, containers[0].Children)
	assert.NotEqual(t, results[0].UUID, containers[0].UUID)
	assert.Equal(t, results[0].Start, containers[0].Start)
	assert.Equal(t, results[0].Stop, containers[0].Stop)
}

func TestFinishForceClosesDanglingSteps(t *testing.T) {
	dir := configureResultsDir(t)
	tc := NewTestContext("dangling", "pkg.TestDangling")

	tc.StartStep("outer")
	tc.StartStep("inner")

	tc.Finish(types.StatusPassed, "", "")

	results := readResults(t, dir)
	require.Len(t, results, 1)
	assert.Equal(t, types.StatusPassed, results[0].Status, "forced steps must not change the test status")

	require.Len(t, results[0].Steps, 1)
	outer := results[0].Steps[0]
	assert.Equal(t, types.StatusBroken, outer.Status)
	require.NotNil(t, outer.StatusDetails)
	assert.Equal(t, "Step not completed", outer.StatusDetails.Message)

	require.Len(t, outer.Steps, 1)
	assert.Equal(t, types.StatusBroken, outer.Steps[0].Status)
}

func TestFinishComputesHistoryID(t *testing.T) {
	dir := configureResultsDir(t)
	tc := NewTestContext("identity", "pkg.TestIdentity")
	tc.AddParameter("browser", "firefox")
	tc.AddParameterOpt(types.ExcludedParameter("timestamp", "123"))

	tc.Finish(types.StatusPassed, "", "")

	results := readResults(t, dir)
	require.Len(t, results, 1)
	assert.Regexp(t, `^[0-9a-f]{32}$`, results[0].HistoryID)

	other := NewTestContext("identity", "pkg.TestIdentity")
	other.AddParameter("browser", "firefox")
	other.AddParameterOpt(types.ExcludedParameter("timestamp", "456"))
	other.computeHistoryID()
	assert.Equal(t, results[0].HistoryID, other.Result.HistoryID,
		"excluded parameters must not change the history id")
}

func TestFinishSkipsHistoryIDWithoutFullName(t *testing.T) {
	dir := configureResultsDir(t)
	tc := NewTestContext("anonymous", "")

	tc.Finish(types.StatusPassed, "", "")

	results := readResults(t, dir)
	require.Len(t, results, 1)
	assert.Empty(t, results[0].HistoryID)
}

func TestAttachTextRecordsOnCurrentScope(t *testing.T) {
	dir := configureResultsDir(t)
	tc := NewTestContext("attachments", "pkg.TestAttachments")

	tc.AttachText("root log", "at root")
	tc.StartStep("step")
	tc.AttachText("step log", "inside step")
	tc.FinishStep(types.StatusPassed, "", "")

	require.Len(t, tc.Result.Attachments, 1)
	assert.Equal(t, "root log", tc.Result.Attachments[0].Name)

	require.Len(t, tc.Result.Steps, 1)
	step := tc.Result.Steps[0]
	require.Len(t, step.Attachments, 1)

	data, err := os.ReadFile(filepath.Join(dir, step.Attachments[0].Source))
	require.NoError(t, err)
	assert.Equal(t, "inside step", string(data))
}
