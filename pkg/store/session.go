package store

import (
	"time"

	"ai-analytics-be/pkg/chart"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/nlq"
	"ai-analytics-be/pkg/stage"

	"github.com/google/uuid"
)

// Dataset generation names.
const (
	GenerationRaw     = "raw"
	GenerationCleaned = "cleaned"
	GenerationCurrent = "current"
)

// FileInfo describes the uploaded source file.
type FileInfo struct {
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"size_bytes"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// QueryRecord is one append-only query history entry. Failures are recorded
// too; history is read in insertion order.
type QueryRecord struct {
	Timestamp   time.Time   `json:"timestamp"`
	Query       string      `json:"query"`
	Tier        string      `json:"tier,omitempty"`
	Resolved    bool        `json:"resolved"`
	Explanation string      `json:"explanation"`
	Result      *nlq.Result `json:"result,omitempty"`
}

// ReportStatus points at the last compiled report document.
type ReportStatus struct {
	Filename    string    `json:"filename"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Session is the complete per-session state. Each session owns its state
// exclusively; the repositories move it in and out of the chosen store as an
// opaque JSON document.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Dataset generations. Raw is immutable once set; Cleaned is replaced by
	// each cleaning pass; Current points at whichever generation is active.
	Raw     *dataset.Frame `json:"raw,omitempty"`
	Cleaned *dataset.Frame `json:"cleaned,omitempty"`
	Current *dataset.Frame `json:"current,omitempty"`

	FileInfo *FileInfo               `json:"file_info,omitempty"`
	Profile  []dataset.ColumnProfile `json:"profile,omitempty"`

	Gate         *stage.Gate          `json:"gate"`
	CleaningLog  []cleaning.Operation `json:"cleaning_log"`
	QueryHistory []QueryRecord        `json:"query_history"`
	Charts       []chart.Spec         `json:"charts"`
	Report       *ReportStatus        `json:"report,omitempty"`
}

func NewSession() *Session {
	return &Session{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		Gate:         stage.NewGate(),
		CleaningLog:  make([]cleaning.Operation, 0),
		QueryHistory: make([]QueryRecord, 0),
		Charts:       make([]chart.Spec, 0),
	}
}

// SetCurrent switches the active generation and recomputes the column
// profile, which must follow every generation change.
func (s *Session) SetCurrent(f *dataset.Frame) {
	s.Current = f
	s.Profile = f.Profile()
}

// Reset clears every derived collection and all stage flags but keeps the
// session identifier and creation time.
func (s *Session) Reset() {
	s.Raw = nil
	s.Cleaned = nil
	s.Current = nil
	s.FileInfo = nil
	s.Profile = nil
	s.Gate.Reset()
	s.CleaningLog = s.CleaningLog[:0]
	s.QueryHistory = s.QueryHistory[:0]
	s.Charts = s.Charts[:0]
	s.Report = nil
}

// Summary is the compact session overview returned by get-summary.
type Summary struct {
	SessionID   string    `json:"session_id"`
	HasData     bool      `json:"has_data"`
	Rows        int       `json:"rows"`
	Columns     int       `json:"columns"`
	CleaningOps int       `json:"cleaning_operations"`
	Queries     int       `json:"queries_executed"`
	Charts      int       `json:"charts_generated"`
	Stages      StageView `json:"stages"`
}

// StageView mirrors the gate in a JSON-friendly shape.
type StageView map[string]bool

func (s *Session) Summarize() Summary {
	rows, cols := 0, 0
	if s.Current != nil {
		rows = s.Current.RowCount()
		cols = s.Current.ColumnCount()
	}
	stages := make(StageView, len(stage.Order))
	for st, done := range s.Gate.Snapshot() {
		stages[string(st)] = done
	}
	return Summary{
		SessionID:   s.ID,
		HasData:     s.Current != nil,
		Rows:        rows,
		Columns:     cols,
		CleaningOps: len(s.CleaningLog),
		Queries:     len(s.QueryHistory),
		Charts:      len(s.Charts),
		Stages:      stages,
	}
}
