package chart

import (
	"errors"
	"testing"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"
)

func profileOf(cols ...[2]string) []dataset.ColumnProfile {
	out := make([]dataset.ColumnProfile, len(cols))
	for i, c := range cols {
		out[i] = dataset.ColumnProfile{Name: c[0], DType: dataset.DType(c[1])}
	}
	return out
}

func TestForPair(t *testing.T) {
	tests := []struct {
		name  string
		x, y  dataset.DType
		hasY  bool
		want  Kind
		isErr bool
	}{
		{"num num", dataset.Numeric, dataset.Numeric, true, Scatter, false},
		{"cat num", dataset.Categorical, dataset.Numeric, true, Bar, false},
		{"temporal num", dataset.Temporal, dataset.Numeric, true, Line, false},
		{"num only", dataset.Numeric, "", false, Histogram, false},
		{"cat only", dataset.Categorical, "", false, Bar, false},
		{"text only", dataset.Text, "", false, "", true},
		{"num cat", dataset.Numeric, dataset.Categorical, true, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForPair(tt.x, tt.y, tt.hasY)
			if tt.isErr {
				var verr *apperror.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPair: %v", err)
			}
			if got != tt.want {
				t.Errorf("kind = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRecommendCapAndDedup(t *testing.T) {
	profile := profileOf(
		[2]string{"a", "numeric"},
		[2]string{"b", "numeric"},
		[2]string{"c", "numeric"},
		[2]string{"cat", "categorical"},
		[2]string{"when", "temporal"},
	)
	specs := Recommend(profile)

	if len(specs) > AutoCap {
		t.Fatalf("specs = %d, want <= %d", len(specs), AutoCap)
	}
	if specs[0].Kind != Heatmap {
		t.Errorf("first spec = %s, want heatmap with >=2 numerics", specs[0].Kind)
	}

	seen := make(map[string]struct{})
	for _, s := range specs {
		key := string(s.Kind) + "|" + s.X + "|" + s.Y
		if _, dup := seen[key]; dup {
			t.Errorf("duplicate spec %s", key)
		}
		seen[key] = struct{}{}
	}
}

func TestRecommendSingleNumeric(t *testing.T) {
	specs := Recommend(profileOf([2]string{"a", "numeric"}))
	if len(specs) != 1 || specs[0].Kind != Histogram {
		t.Errorf("specs = %+v, want one histogram", specs)
	}
}

func TestRecommendEmptyProfile(t *testing.T) {
	if specs := Recommend(nil); len(specs) != 0 {
		t.Errorf("specs = %d, want 0", len(specs))
	}
}

func TestCustomValidation(t *testing.T) {
	profile := profileOf(
		[2]string{"region", "categorical"},
		[2]string{"sales", "numeric"},
		[2]string{"notes", "text"},
	)

	spec, err := Custom(profile, Bar, "region", "sales")
	if err != nil {
		t.Fatalf("Custom: %v", err)
	}
	if spec.Kind != Bar || spec.X != "region" || spec.Y != "sales" {
		t.Errorf("spec = %+v", spec)
	}
	if spec.PayloadRef == "" {
		t.Error("spec missing payload reference")
	}

	if _, err := Custom(profile, Bar, "missing", "sales"); err == nil {
		t.Error("unknown x column accepted")
	}
	if _, err := Custom(profile, Scatter, "notes", "sales"); err == nil {
		t.Error("text x column accepted for scatter")
	}

	// pie and box bypass the pair table
	if _, err := Custom(profile, Pie, "region", ""); err != nil {
		t.Errorf("pie rejected: %v", err)
	}
	if _, err := Custom(profile, Box, "notes", ""); err != nil {
		t.Errorf("box rejected: %v", err)
	}
}
