package dataset

import "testing"

func sampleFrame() *Frame {
	return New(
		[]string{"Region", "Sales"},
		[][]string{
			{"A", "10"},
			{"B", "20"},
			{"A", "10"},
			{"C", ""},
		},
	)
}

func TestColumnIndexCaseInsensitive(t *testing.T) {
	f := sampleFrame()
	if got := f.ColumnIndex("region"); got != 0 {
		t.Errorf("ColumnIndex(region) = %d, want 0", got)
	}
	if got := f.ColumnIndex("SALES"); got != 1 {
		t.Errorf("ColumnIndex(SALES) = %d, want 1", got)
	}
	if got := f.ColumnIndex("missing"); got != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", got)
	}
}

func TestNullCount(t *testing.T) {
	f := sampleFrame()
	if got := f.NullCount(1); got != 1 {
		t.Errorf("NullCount = %d, want 1", got)
	}
	if got := f.NullCount(0); got != 0 {
		t.Errorf("NullCount = %d, want 0", got)
	}
}

func TestDuplicateCount(t *testing.T) {
	f := sampleFrame()
	if got := f.DuplicateCount(); got != 1 {
		t.Errorf("DuplicateCount = %d, want 1", got)
	}
}

func TestHeadBounded(t *testing.T) {
	f := sampleFrame()
	if got := len(f.Head(2)); got != 2 {
		t.Errorf("Head(2) rows = %d, want 2", got)
	}
	if got := len(f.Head(100)); got != 4 {
		t.Errorf("Head(100) rows = %d, want 4", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	f := sampleFrame()
	c := f.Clone()
	c.Rows[0][0] = Value{Raw: "Z"}
	if f.Rows[0][0].Raw != "A" {
		t.Error("mutating clone changed original")
	}
}

func TestProfile(t *testing.T) {
	f := sampleFrame()
	profile := f.Profile()
	if len(profile) != 2 {
		t.Fatalf("profile length = %d, want 2", len(profile))
	}
	if profile[0].Name != "Region" || profile[0].DType != Categorical {
		t.Errorf("unexpected Region profile: %+v", profile[0])
	}
	if profile[1].NullCount != 1 {
		t.Errorf("Sales null count = %d, want 1", profile[1].NullCount)
	}
	if profile[0].Unique != 3 {
		t.Errorf("Region unique = %d, want 3", profile[0].Unique)
	}
}
