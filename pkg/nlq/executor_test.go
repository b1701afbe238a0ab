package nlq

import (
	"testing"

	"ai-analytics-be/pkg/dataset"
)

func TestExecuteAggregateSumSkipsNulls(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindAggregate, Func: FuncSum, Column: "Total_Sales"}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Kind != KindScalar {
		t.Fatalf("kind = %s, want scalar", res.Kind)
	}
	if *res.Scalar != 350 {
		t.Errorf("sum = %g, want 350", *res.Scalar)
	}
}

func TestExecuteAggregateMeanSkipsNulls(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindAggregate, Func: FuncMean, Column: "Total_Sales"}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// 350 over 4 non-null values, not 5 rows
	if *res.Scalar != 87.5 {
		t.Errorf("mean = %g, want 87.5", *res.Scalar)
	}
}

func TestExecuteRowCount(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindAggregate, Func: FuncCount}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if *res.Scalar != 5 {
		t.Errorf("count = %g, want 5", *res.Scalar)
	}
}

func TestExecuteMinMax(t *testing.T) {
	f := salesFrame()

	res, _ := execute(&Plan{Kind: KindAggregate, Func: FuncMin, Column: "Total_Sales"}, f)
	if *res.Scalar != 10 {
		t.Errorf("min = %g, want 10", *res.Scalar)
	}
	res, _ = execute(&Plan{Kind: KindAggregate, Func: FuncMax, Column: "Total_Sales"}, f)
	if *res.Scalar != 290 {
		t.Errorf("max = %g, want 290", *res.Scalar)
	}
}

func TestExecuteDistinct(t *testing.T) {
	f := salesFrame()
	res, _ := execute(&Plan{Kind: KindAggregate, Func: FuncDistinct, Column: "Region"}, f)
	if *res.Scalar != 3 {
		t.Errorf("distinct = %g, want 3", *res.Scalar)
	}
}

func TestExecuteGroupAggregateFirstOccurrenceOrder(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindGroupAggregate, Func: FuncSum, Column: "Total_Sales", GroupBy: "Region"}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []SeriesEntry{
		{Key: "A", Value: 40},
		{Key: "B", Value: 20},
		{Key: "C", Value: 290},
	}
	if len(res.Series) != len(want) {
		t.Fatalf("series length = %d, want %d", len(res.Series), len(want))
	}
	for i, e := range want {
		if res.Series[i] != e {
			t.Errorf("series[%d] = %+v, want %+v", i, res.Series[i], e)
		}
	}
}

func TestExecuteGroupCountWithoutColumn(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindGroupAggregate, Func: FuncCount, GroupBy: "Region"}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Series[1].Key != "B" || res.Series[1].Value != 2 {
		t.Errorf("series[1] = %+v, want B=2", res.Series[1])
	}
}

func TestExecuteGroupNullKeys(t *testing.T) {
	f := dataset.New(
		[]string{"Region", "Units"},
		[][]string{
			{"A", "1"},
			{"", "2"},
			{"A", "3"},
		},
	)
	res, err := execute(&Plan{Kind: KindGroupAggregate, Func: FuncCount, GroupBy: "Region"}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	found := false
	for _, e := range res.Series {
		if e.Key == "(null)" {
			found = true
		}
	}
	if !found {
		t.Error("null group key not bucketed as (null)")
	}
}

func TestExecuteTopN(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindTopN, Column: "Total_Sales", N: 2}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if res.Kind != KindTable {
		t.Fatalf("kind = %s, want table", res.Kind)
	}
	if len(res.Table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(res.Table.Rows))
	}
	if res.Table.Rows[0][1] != "290" || res.Table.Rows[1][1] != "30" {
		t.Errorf("top rows = %v, want 290 then 30", res.Table.Rows)
	}
}

func TestExecuteFilterCompare(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{
		Kind:   KindFilterCompare,
		Filter: &FilterClause{Column: "Total_Sales", Op: "gt", Value: "15"},
	}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	// 30, 20, 290; the null row is excluded
	if len(res.Table.Rows) != 3 {
		t.Errorf("rows = %d, want 3", len(res.Table.Rows))
	}
}

func TestExecuteFilterCompareString(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{
		Kind:   KindFilterCompare,
		Filter: &FilterClause{Column: "Region", Op: "eq", Value: "b"},
	}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(res.Table.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(res.Table.Rows))
	}
}

func TestExecuteDescribe(t *testing.T) {
	f := salesFrame()
	res, err := execute(&Plan{Kind: KindDescribe}, f)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(res.Table.Rows) != f.ColumnCount() {
		t.Fatalf("describe rows = %d, want %d", len(res.Table.Rows), f.ColumnCount())
	}
	// Total_Sales row: 4 non-null, 1 null, mean 87.5
	row := res.Table.Rows[1]
	if row[2] != "4" || row[3] != "1" || row[4] != "87.5" {
		t.Errorf("describe row = %v", row)
	}
}

