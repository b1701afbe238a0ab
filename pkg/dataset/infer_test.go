package dataset

import (
	"fmt"
	"testing"
)

func TestNewValue(t *testing.T) {
	tests := []struct {
		raw      string
		wantNull bool
		wantNum  bool
		num      float64
	}{
		{"42", false, true, 42},
		{"3.14", false, true, 3.14},
		{"1,200", false, true, 1200},
		{" 7 ", false, true, 7},
		{"hello", false, false, 0},
		{"", true, false, 0},
		{"NA", true, false, 0},
		{"n/a", true, false, 0},
		{"NULL", true, false, 0},
		{"NaN", true, false, 0},
		{"none", true, false, 0},
		{"-", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := NewValue(tt.raw)
			if v.Null != tt.wantNull {
				t.Errorf("Null = %v, want %v", v.Null, tt.wantNull)
			}
			if v.HasNum != tt.wantNum {
				t.Errorf("HasNum = %v, want %v", v.HasNum, tt.wantNum)
			}
			if v.HasNum && v.Num != tt.num {
				t.Errorf("Num = %v, want %v", v.Num, tt.num)
			}
		})
	}
}

func TestInferDType(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   DType
	}{
		{"all numeric", []string{"1", "2", "3.5"}, Numeric},
		{"numeric with nulls", []string{"1", "", "3"}, Numeric},
		{"dates", []string{"2024-01-01", "2024-02-15"}, Temporal},
		{"slash dates", []string{"01/02/2024", "03/04/2024"}, Temporal},
		{"low cardinality strings", []string{"a", "b", "a", "b"}, Categorical},
		{"mixed numeric and text", []string{"1", "x", "2"}, Categorical},
		{"all null", []string{"", "NA", "null"}, Text},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := make([][]string, len(tt.values))
			for i, v := range tt.values {
				cells[i] = []string{v}
			}
			f := New([]string{"col"}, cells)
			if got := f.Cols[0].DType; got != tt.want {
				t.Errorf("DType = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestInferDTypeHighCardinalityText(t *testing.T) {
	cells := make([][]string, 60)
	for i := range cells {
		cells[i] = []string{fmt.Sprintf("comment number %d", i)}
	}
	f := New([]string{"notes"}, cells)
	if got := f.Cols[0].DType; got != Text {
		t.Errorf("DType = %s, want %s", got, Text)
	}
}

func TestNewPadsShortRows(t *testing.T) {
	f := New([]string{"a", "b"}, [][]string{{"1"}})
	if !f.Rows[0][1].Null {
		t.Error("missing trailing cell should be null")
	}
}
