package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/store"
)

func TestCompileWritesDocument(t *testing.T) {
	dir := t.TempDir()
	c := NewCompiler(dir, "Business Data Analysis Report")

	s := store.NewSession()
	f := dataset.New([]string{"a"}, [][]string{{"1"}})
	s.Raw = f
	s.SetCurrent(f)

	doc, filename, err := c.Compile(s)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if doc.Title != "Business Data Analysis Report" {
		t.Errorf("title = %q", doc.Title)
	}

	data, err := os.ReadFile(filepath.Join(dir, filename))
	if err != nil {
		t.Fatalf("report file missing: %v", err)
	}
	var onDisk Document
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if onDisk.Summary.SessionID != s.ID {
		t.Errorf("session id = %q, want %q", onDisk.Summary.SessionID, s.ID)
	}
}

func TestPathRejectsEscapes(t *testing.T) {
	c := NewCompiler(t.TempDir(), "t")
	for _, bad := range []string{"../secret.json", "a/b.json", "..\\win.json"} {
		if _, err := c.Path(bad); err == nil {
			t.Errorf("Path(%q) accepted an escaping filename", bad)
		}
	}
}

func TestPathMissingFile(t *testing.T) {
	c := NewCompiler(t.TempDir(), "t")
	if _, err := c.Path("report_x.json"); err == nil {
		t.Error("Path accepted a missing file")
	}
}
