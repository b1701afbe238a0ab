package nlq

import (
	"errors"
	"testing"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"
)

func salesFrame() *dataset.Frame {
	return dataset.New(
		[]string{"Region", "Total_Sales", "Units"},
		[][]string{
			{"A", "10", "1"},
			{"A", "30", "3"},
			{"B", "20", "2"},
			{"B", "", "2"},
			{"C", "290", "9"},
		},
	)
}

func TestParseLexicalPlans(t *testing.T) {
	f := salesFrame()

	tests := []struct {
		name     string
		query    string
		wantKind PlanKind
		wantFunc AggFunc
		wantCol  string
		wantBy   string
		wantN    int
	}{
		{"sum", "total sales", KindAggregate, FuncSum, "Total_Sales", "", 0},
		{"grouped sum", "total sales by region", KindGroupAggregate, FuncSum, "Total_Sales", "Region", 0},
		{"mean", "average units", KindAggregate, FuncMean, "Units", "", 0},
		{"row count", "how many rows are there", KindAggregate, FuncCount, "", "", 0},
		{"count cue", "count of records", KindAggregate, FuncCount, "", "", 0},
		{"distinct", "distinct region values", KindAggregate, FuncDistinct, "Region", "", 0},
		{"min", "lowest units", KindAggregate, FuncMin, "Units", "", 0},
		{"max without count", "highest units", KindAggregate, FuncMax, "Units", "", 0},
		{"group count", "count by region", KindGroupAggregate, FuncCount, "", "Region", 0},
		{"grouped mean", "average units by region", KindGroupAggregate, FuncMean, "Units", "Region", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parseLexical(tt.query, f)
			if err != nil {
				t.Fatalf("parseLexical(%q): %v", tt.query, err)
			}
			if plan.Kind != tt.wantKind {
				t.Errorf("Kind = %s, want %s", plan.Kind, tt.wantKind)
			}
			if plan.Func != tt.wantFunc && tt.wantKind != KindTopN {
				t.Errorf("Func = %s, want %s", plan.Func, tt.wantFunc)
			}
			if plan.Column != tt.wantCol {
				t.Errorf("Column = %q, want %q", plan.Column, tt.wantCol)
			}
			if plan.GroupBy != tt.wantBy {
				t.Errorf("GroupBy = %q, want %q", plan.GroupBy, tt.wantBy)
			}
		})
	}
}

func TestParseLexicalTopN(t *testing.T) {
	f := salesFrame()
	plan, err := parseLexical("top 2 units", f)
	if err != nil {
		t.Fatalf("parseLexical: %v", err)
	}
	if plan.Kind != KindTopN || plan.N != 2 || plan.Column != "Units" {
		t.Errorf("plan = %+v, want top-2 on Units", plan)
	}
}

func TestParseLexicalAmbiguous(t *testing.T) {
	f := salesFrame()
	_, err := parseLexical("average", f)
	var ambiguous *apperror.AmbiguousQueryError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected AmbiguousQueryError, got %v", err)
	}
}

func TestParseLexicalUnresolved(t *testing.T) {
	f := salesFrame()
	_, err := parseLexical("tell me something interesting", f)
	var unresolved *apperror.UnresolvedQueryError
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedQueryError, got %v", err)
	}
}

func TestParseLexicalDeterministic(t *testing.T) {
	f := salesFrame()
	first, err := parseLexical("total sales by region", f)
	if err != nil {
		t.Fatalf("parseLexical: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := parseLexical("total sales by region", f)
		if err != nil {
			t.Fatalf("parseLexical: %v", err)
		}
		if *again != *first {
			t.Fatalf("run %d produced a different plan: %+v vs %+v", i, again, first)
		}
	}
}

func TestResolveTokenPrefersLongestColumn(t *testing.T) {
	f := dataset.New(
		[]string{"Sale", "Sales_Total"},
		[][]string{{"1", "2"}},
	)
	if got := resolveToken("sale", f); got != "Sales_Total" {
		t.Errorf("resolveToken = %q, want Sales_Total", got)
	}
}
