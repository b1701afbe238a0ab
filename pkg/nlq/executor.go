package nlq

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"ai-analytics-be/pkg/dataset"
)

// execute runs a validated plan against the frame. Nulls are skipped in all
// aggregates. Group keys appear in first-occurrence order; this is the
// documented ordering for every grouped result.
func execute(p *Plan, f *dataset.Frame) (*Result, error) {
	switch p.Kind {
	case KindAggregate:
		return execAggregate(p, f)
	case KindGroupAggregate:
		return execGroupAggregate(p, f)
	case KindTopN:
		return execTopN(p, f)
	case KindFilterCompare:
		return execFilterCompare(p, f)
	case KindDescribe:
		return execDescribe(f), nil
	}
	return nil, fmt.Errorf("unsupported plan kind %q", p.Kind)
}

// aggState folds one column's non-null values.
type aggState struct {
	count    int
	nonNull  int
	numCount int
	sum      float64
	min      float64
	max      float64
	distinct map[string]struct{}
}

func newAggState() *aggState {
	return &aggState{distinct: make(map[string]struct{})}
}

func (a *aggState) add(v dataset.Value) {
	a.count++
	if v.Null {
		return
	}
	a.nonNull++
	a.distinct[v.Raw] = struct{}{}
	if v.HasNum {
		a.numCount++
		if a.numCount == 1 || v.Num < a.min {
			a.min = v.Num
		}
		if a.numCount == 1 || v.Num > a.max {
			a.max = v.Num
		}
		a.sum += v.Num
	}
}

func (a *aggState) value(fn AggFunc) float64 {
	switch fn {
	case FuncSum:
		return a.sum
	case FuncMean:
		if a.numCount == 0 {
			return 0
		}
		return a.sum / float64(a.numCount)
	case FuncCount:
		return float64(a.count)
	case FuncDistinct:
		return float64(len(a.distinct))
	case FuncMin:
		return a.min
	case FuncMax:
		return a.max
	}
	return 0
}

func execAggregate(p *Plan, f *dataset.Frame) (*Result, error) {
	if p.Func == FuncCount && p.Column == "" {
		return scalarResult(float64(f.RowCount())), nil
	}
	col := f.ColumnIndex(p.Column)
	agg := newAggState()
	for _, row := range f.Rows {
		agg.add(row[col])
	}
	return scalarResult(agg.value(p.Func)), nil
}

func execGroupAggregate(p *Plan, f *dataset.Frame) (*Result, error) {
	groupCol := f.ColumnIndex(p.GroupBy)
	valueCol := -1
	if p.Column != "" {
		valueCol = f.ColumnIndex(p.Column)
	}

	groups := make(map[string]*aggState)
	var order []string
	for _, row := range f.Rows {
		key := row[groupCol].Raw
		if row[groupCol].Null {
			key = "(null)"
		}
		agg, ok := groups[key]
		if !ok {
			agg = newAggState()
			groups[key] = agg
			order = append(order, key)
		}
		if valueCol >= 0 {
			agg.add(row[valueCol])
		} else {
			agg.count++
		}
	}

	entries := make([]SeriesEntry, len(order))
	for i, key := range order {
		entries[i] = SeriesEntry{Key: key, Value: groups[key].value(p.Func)}
	}
	return seriesResult(entries), nil
}

func execTopN(p *Plan, f *dataset.Frame) (*Result, error) {
	col := f.ColumnIndex(p.Column)
	var idx []int
	for i, row := range f.Rows {
		if !row[col].Null && row[col].HasNum {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return f.Rows[idx[a]][col].Num > f.Rows[idx[b]][col].Num
	})
	if p.N < len(idx) {
		idx = idx[:p.N]
	}
	top := f.SelectRows(idx)
	return tableResult(top.ColumnNames(), top.Head(top.RowCount())), nil
}

func execFilterCompare(p *Plan, f *dataset.Frame) (*Result, error) {
	col := f.ColumnIndex(p.Filter.Column)
	numericCompare := f.Cols[col].DType == dataset.Numeric
	threshold, err := strconv.ParseFloat(p.Filter.Value, 64)
	if numericCompare && err != nil {
		return nil, fmt.Errorf("filter value %q is not numeric", p.Filter.Value)
	}

	var idx []int
	for i, row := range f.Rows {
		v := row[col]
		if v.Null {
			continue
		}
		var keep bool
		if numericCompare {
			keep = compareNum(v.Num, p.Filter.Op, threshold)
		} else {
			keep = compareStr(v.Raw, p.Filter.Op, p.Filter.Value)
		}
		if keep {
			idx = append(idx, i)
		}
	}
	filtered := f.SelectRows(idx)
	return tableResult(filtered.ColumnNames(), filtered.Head(filtered.RowCount())), nil
}

func compareNum(v float64, op string, threshold float64) bool {
	switch op {
	case "gt":
		return v > threshold
	case "gte":
		return v >= threshold
	case "lt":
		return v < threshold
	case "lte":
		return v <= threshold
	case "eq":
		return v == threshold
	case "neq":
		return v != threshold
	}
	return false
}

func compareStr(v, op, target string) bool {
	switch op {
	case "eq":
		return strings.EqualFold(v, target)
	case "neq":
		return !strings.EqualFold(v, target)
	}
	return false
}

// execDescribe summarizes every column: counts for all, numeric stats where
// they apply.
func execDescribe(f *dataset.Frame) *Result {
	columns := []string{"column", "dtype", "non_null", "nulls", "mean", "min", "max"}
	rows := make([][]string, 0, len(f.Cols))
	for j, c := range f.Cols {
		agg := newAggState()
		for _, row := range f.Rows {
			agg.add(row[j])
		}
		mean, minV, maxV := "", "", ""
		if c.DType == dataset.Numeric && agg.nonNull > 0 {
			mean = formatNum(agg.value(FuncMean))
			minV = formatNum(agg.min)
			maxV = formatNum(agg.max)
		}
		rows = append(rows, []string{
			c.Name,
			string(c.DType),
			strconv.Itoa(agg.nonNull),
			strconv.Itoa(agg.count - agg.nonNull),
			mean, minV, maxV,
		})
	}
	return tableResult(columns, rows)
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
