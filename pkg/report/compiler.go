package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ai-analytics-be/pkg/chart"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/store"
)

// Document is the passive report payload: everything a rendering
// collaborator needs to lay out the final artifact. The compiler never calls
// into a rendering library.
type Document struct {
	Title       string               `json:"title"`
	GeneratedAt time.Time            `json:"generated_at"`
	Summary     store.Summary        `json:"summary"`
	FileInfo    *store.FileInfo      `json:"file_info,omitempty"`
	CleaningLog []cleaning.Operation `json:"cleaning_log"`
	Queries     []store.QueryRecord  `json:"queries"`
	Charts      []chart.Spec         `json:"charts"`
}

// Compiler writes report documents under a fixed directory.
type Compiler struct {
	dir   string
	title string
}

func NewCompiler(dir, title string) *Compiler {
	return &Compiler{dir: dir, title: title}
}

// Compile assembles the document from the session's logs and writes it as
// JSON. Returns the document and its filename.
func (c *Compiler) Compile(s *store.Session) (*Document, string, error) {
	doc := &Document{
		Title:       c.title,
		GeneratedAt: time.Now().UTC(),
		Summary:     s.Summarize(),
		FileInfo:    s.FileInfo,
		CleaningLog: s.CleaningLog,
		Queries:     s.QueryHistory,
		Charts:      s.Charts,
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, "", fmt.Errorf("create reports dir: %w", err)
	}
	filename := fmt.Sprintf("report_%s_%s.json", s.ID, doc.GeneratedAt.Format("20060102T150405"))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, "", fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, filename), data, 0o644); err != nil {
		return nil, "", fmt.Errorf("write report: %w", err)
	}
	return doc, filename, nil
}

// Path resolves a stored report filename, refusing escapes outside dir.
func (c *Compiler) Path(filename string) (string, error) {
	clean := filepath.Base(filename)
	if clean != filename {
		return "", fmt.Errorf("invalid report filename %q", filename)
	}
	full := filepath.Join(c.dir, clean)
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("report not found: %w", err)
	}
	return full, nil
}
