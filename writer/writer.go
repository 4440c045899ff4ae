// Package writer persists the result artifact layout: result and container
// JSON files, raw attachment payloads, environment.properties, and
// categories.json. Filenames are derived deterministically from uuids, so
// concurrently running tests write disjoint files without locking.
package writer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andreivcodes/allure-go/types"
)

// DefaultResultsDir is used when no results directory is configured.
const DefaultResultsDir = "allure-results"

// Writer owns one results directory and performs whole-file writes into it.
type Writer struct {
	resultsDir string
}

// New creates a writer rooted at dir, falling back to DefaultResultsDir
// when dir is empty.
func New(dir string) *Writer {
	if dir == "" {
		dir = DefaultResultsDir
	}
	return &Writer{resultsDir: dir}
}

// ResultsDir returns the directory the writer persists into.
func (w *Writer) ResultsDir() string {
	return w.resultsDir
}

// Init bootstraps the results directory. When clean is set the directory is
// removed and recreated empty; otherwise creation is idempotent.
func (w *Writer) Init(clean bool) error {
	if clean {
		if err := os.RemoveAll(w.resultsDir); err != nil {
			return fmt.Errorf("failed to clean results directory %q: %w", w.resultsDir, err)
		}
	}
	if err := os.MkdirAll(w.resultsDir, 0o755); err != nil {
		return fmt.Errorf("failed to create results directory %q: %w", w.resultsDir, err)
	}
	return nil
}

func (w *Writer) ensureDir() error {
	return os.MkdirAll(w.resultsDir, 0o755)
}

func (w *Writer) writeJSON(filename string, v any) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize %s: %w", filename, err)
	}
	path := filepath.Join(w.resultsDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return path, nil
}

// WriteResult persists a test result to {uuid}-result.json and returns the
// written path.
func (w *Writer) WriteResult(result *types.TestResult) (string, error) {
	return w.writeJSON(fmt.Sprintf("%s-result.json", result.UUID), result)
}

// WriteContainer persists a container to {uuid}-container.json.
func (w *Writer) WriteContainer(container *types.Container) (string, error) {
	return w.writeJSON(fmt.Sprintf("%s-container.json", container.UUID), container)
}

// WriteTextAttachment stores content as a text attachment and returns the
// reference to record on the owning result or step.
func (w *Writer) WriteTextAttachment(name, content string) (types.Attachment, error) {
	return w.WriteBytesAttachment(name, []byte(content), types.ContentTypeText)
}

// WriteJSONAttachment serializes v and stores it as a JSON attachment.
func (w *Writer) WriteJSONAttachment(name string, v any) (types.Attachment, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return types.Attachment{}, fmt.Errorf("failed to serialize attachment %q: %w", name, err)
	}
	return w.WriteBytesAttachment(name, data, types.ContentTypeJSON)
}

// WriteBytesAttachment stores raw bytes under {uuid}-attachment.{ext} with
// the extension derived from the content type.
func (w *Writer) WriteBytesAttachment(name string, content []byte, contentType types.ContentType) (types.Attachment, error) {
	return w.writeAttachment(name, content, string(contentType), contentType.Extension())
}

// WriteBytesAttachmentMime stores raw bytes with an explicit MIME type and
// file extension, for payloads outside the known content types.
func (w *Writer) WriteBytesAttachmentMime(name string, content []byte, mime, ext string) (types.Attachment, error) {
	return w.writeAttachment(name, content, mime, ext)
}

func (w *Writer) writeAttachment(name string, content []byte, mime, ext string) (types.Attachment, error) {
	if err := w.ensureDir(); err != nil {
		return types.Attachment{}, fmt.Errorf("failed to create results directory: %w", err)
	}
	if ext == "" {
		ext = "bin"
	}
	filename := fmt.Sprintf("%s-attachment.%s", GenerateUUID(), ext)
	path := filepath.Join(w.resultsDir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return types.Attachment{}, fmt.Errorf("failed to write attachment %q: %w", name, err)
	}
	return types.Attachment{Name: name, Source: filename, Type: mime}, nil
}

// CopyFileAttachment copies an existing file into the results directory as
// an attachment. When contentType is empty the MIME type is guessed from
// the source file extension.
func (w *Writer) CopyFileAttachment(name, sourcePath string, contentType types.ContentType) (types.Attachment, error) {
	if err := w.ensureDir(); err != nil {
		return types.Attachment{}, fmt.Errorf("failed to create results directory: %w", err)
	}
	ext := strings.TrimPrefix(filepath.Ext(sourcePath), ".")
	if ext == "" {
		ext = "bin"
	}
	mime := string(contentType)
	if mime == "" {
		mime = string(types.ContentTypeForExtension(ext))
	}

	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return types.Attachment{}, fmt.Errorf("failed to read attachment source %q: %w", sourcePath, err)
	}
	return w.writeAttachment(name, content, mime, ext)
}

// Property is one environment.properties entry. Entries are written in
// slice order.
type Property struct {
	Key   string
	Value string
}

// WriteEnvironment writes environment.properties. Keys and values are
// escaped for the Java properties format.
func (w *Writer) WriteEnvironment(properties []Property) (string, error) {
	if err := w.ensureDir(); err != nil {
		return "", fmt.Errorf("failed to create results directory: %w", err)
	}
	var b strings.Builder
	for _, p := range properties {
		b.WriteString(escapeProperty(p.Key))
		b.WriteByte('=')
		b.WriteString(escapeProperty(p.Value))
		b.WriteByte('\n')
	}
	path := filepath.Join(w.resultsDir, "environment.properties")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write environment.properties: %w", err)
	}
	return path, nil
}

// WriteCategories writes the passthrough matching rules to categories.json.
func (w *Writer) WriteCategories(categories []types.Category) (string, error) {
	return w.writeJSON("categories.json", categories)
}

// escapeProperty escapes a properties-file token. Backslashes must be
// escaped before the newline, carriage return, and equals substitutions;
// reordering double-escapes.
func escapeProperty(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "=", `\=`)
	return s
}
