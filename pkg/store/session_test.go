package store

import (
	"encoding/json"
	"testing"

	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/stage"
)

func populatedSession() *Session {
	s := NewSession()
	f := dataset.New(
		[]string{"Region", "Sales"},
		[][]string{{"A", "10"}, {"B", ""}},
	)
	s.Raw = f
	s.SetCurrent(f)
	s.Gate.MarkComplete(stage.Upload)
	s.QueryHistory = append(s.QueryHistory, QueryRecord{Query: "total sales", Resolved: true})
	return s
}

// Redis and postgres move sessions as JSON documents, so the whole state
// must survive a round trip.
func TestSessionJSONRoundTrip(t *testing.T) {
	s := populatedSession()

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Session
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.ID != s.ID {
		t.Errorf("id = %q, want %q", back.ID, s.ID)
	}
	if back.Current == nil || back.Current.RowCount() != 2 {
		t.Fatal("current generation lost in round trip")
	}
	if !back.Current.Rows[1][1].Null {
		t.Error("null cell lost in round trip")
	}
	if !back.Gate.IsComplete(stage.Upload) {
		t.Error("gate state lost in round trip")
	}
	if len(back.QueryHistory) != 1 || back.QueryHistory[0].Query != "total sales" {
		t.Error("query history lost in round trip")
	}
	if len(back.Profile) != 2 {
		t.Error("profile lost in round trip")
	}
}

func TestSessionResetKeepsIdentity(t *testing.T) {
	s := populatedSession()
	id, created := s.ID, s.CreatedAt

	s.Reset()

	if s.ID != id || !s.CreatedAt.Equal(created) {
		t.Error("reset changed session identity")
	}
	if s.Current != nil || s.Raw != nil || s.Profile != nil {
		t.Error("reset left dataset state behind")
	}
	if len(s.QueryHistory) != 0 || len(s.CleaningLog) != 0 || len(s.Charts) != 0 {
		t.Error("reset left derived collections behind")
	}
	if s.Gate.IsComplete(stage.Upload) {
		t.Error("reset left stage flags behind")
	}
}

func TestSummarize(t *testing.T) {
	s := populatedSession()
	sum := s.Summarize()

	if sum.SessionID != s.ID || !sum.HasData {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Rows != 2 || sum.Columns != 2 || sum.Queries != 1 {
		t.Errorf("summary counts = %+v", sum)
	}
	if !sum.Stages["upload"] || sum.Stages["clean"] {
		t.Errorf("stages = %+v", sum.Stages)
	}
}
