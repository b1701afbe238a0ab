package cleaning

import (
	"time"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"
)

// MissingStrategy selects how null cells are repaired.
type MissingStrategy string

const (
	Mean         MissingStrategy = "mean"
	Median       MissingStrategy = "median"
	Mode         MissingStrategy = "mode"
	ForwardFill  MissingStrategy = "ffill"
	BackwardFill MissingStrategy = "bfill"
	DropRows     MissingStrategy = "drop"
)

// DuplicateStrategy selects how exact duplicate rows are handled.
type DuplicateStrategy string

const (
	KeepFirst      DuplicateStrategy = "first"
	KeepLast       DuplicateStrategy = "last"
	DropAllExact   DuplicateStrategy = "drop"
	KeepDuplicates DuplicateStrategy = "keep"
)

// Request describes one cleaning invocation. An empty Columns list targets
// all numeric columns.
type Request struct {
	MissingStrategy   MissingStrategy
	Columns           []string
	DuplicateStrategy DuplicateStrategy
	CleanMissing      bool
	CleanDuplicates   bool
}

// Operation is one append-only cleaning log entry.
type Operation struct {
	Kind          string    `json:"kind"`
	Columns       []string  `json:"columns"`
	MissingBefore int       `json:"missing_before"`
	MissingAfter  int       `json:"missing_after"`
	RowsBefore    int       `json:"rows_before"`
	RowsAfter     int       `json:"rows_after"`
	Timestamp     time.Time `json:"timestamp"`
}

// fillFunc repairs nulls in one column of the frame, in place on the new
// generation only.
type fillFunc func(f *dataset.Frame, col int)

// strategyTable dispatches the non-dropping strategies. Mean and median are
// numeric-only and validated before dispatch.
var strategyTable = map[MissingStrategy]fillFunc{
	Mean:         fillMean,
	Median:       fillMedian,
	Mode:         fillMode,
	ForwardFill:  fillForward,
	BackwardFill: fillBackward,
}

// Engine detects and repairs missing values and duplicate rows.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Apply produces a new cleaned generation plus its log entry. The input frame
// is never modified.
func (e *Engine) Apply(f *dataset.Frame, req Request) (*dataset.Frame, *Operation, error) {
	targets, err := resolveTargets(f, req)
	if err != nil {
		return nil, nil, err
	}

	op := &Operation{
		Kind:       describeKind(req),
		Columns:    targetNames(f, targets),
		RowsBefore: f.RowCount(),
		Timestamp:  time.Now(),
	}
	for _, col := range targets {
		op.MissingBefore += f.NullCount(col)
	}

	out := f.Clone()

	if req.CleanMissing {
		if req.MissingStrategy == DropRows {
			out = dropNullRows(out, targets)
		} else {
			fill, ok := strategyTable[req.MissingStrategy]
			if !ok {
				return nil, nil, apperror.NewValidation("missing_strategy", "unknown strategy "+string(req.MissingStrategy))
			}
			for _, col := range targets {
				fill(out, col)
			}
		}
	}

	if req.CleanDuplicates && req.DuplicateStrategy != KeepDuplicates && req.DuplicateStrategy != "" {
		out, err = dropDuplicates(out, req.DuplicateStrategy)
		if err != nil {
			return nil, nil, err
		}
	}

	op.RowsAfter = out.RowCount()
	for _, name := range op.Columns {
		if idx := out.ColumnIndex(name); idx >= 0 {
			op.MissingAfter += out.NullCount(idx)
		}
	}
	return out, op, nil
}

// resolveTargets validates the requested column subset. Mean and median
// demand numeric dtypes; mode, ffill and bfill accept any.
func resolveTargets(f *dataset.Frame, req Request) ([]int, error) {
	if !req.CleanMissing {
		return nil, nil
	}
	var targets []int
	if len(req.Columns) == 0 {
		for i, c := range f.Cols {
			if c.DType == dataset.Numeric {
				targets = append(targets, i)
			}
		}
		return targets, nil
	}
	for _, name := range req.Columns {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			return nil, apperror.NewValidation("missing_columns", "column "+name+" does not exist")
		}
		if (req.MissingStrategy == Mean || req.MissingStrategy == Median) && f.Cols[idx].DType != dataset.Numeric {
			return nil, apperror.NewValidation("missing_strategy", string(req.MissingStrategy)+" requires a numeric column, "+name+" is "+string(f.Cols[idx].DType))
		}
		targets = append(targets, idx)
	}
	return targets, nil
}

func targetNames(f *dataset.Frame, targets []int) []string {
	names := make([]string, len(targets))
	for i, idx := range targets {
		names[i] = f.Cols[idx].Name
	}
	return names
}

func describeKind(req Request) string {
	switch {
	case req.CleanMissing && req.CleanDuplicates:
		return "missing+" + string(req.MissingStrategy) + "/duplicates+" + string(req.DuplicateStrategy)
	case req.CleanMissing:
		return "missing+" + string(req.MissingStrategy)
	case req.CleanDuplicates:
		return "duplicates+" + string(req.DuplicateStrategy)
	}
	return "noop"
}

// dropNullRows removes every row holding a null in any targeted column.
func dropNullRows(f *dataset.Frame, targets []int) *dataset.Frame {
	var keep []int
	for i, row := range f.Rows {
		hasNull := false
		for _, col := range targets {
			if row[col].Null {
				hasNull = true
				break
			}
		}
		if !hasNull {
			keep = append(keep, i)
		}
	}
	return f.SelectRows(keep)
}

// dropDuplicates removes exact duplicate rows per the chosen policy.
// Detection compares full-row equality.
func dropDuplicates(f *dataset.Frame, strategy DuplicateStrategy) (*dataset.Frame, error) {
	keys := f.DuplicateKeys()
	counts := make(map[string]int, len(keys))
	for _, k := range keys {
		counts[k]++
	}

	var keep []int
	switch strategy {
	case KeepFirst:
		seen := make(map[string]struct{}, len(keys))
		for i, k := range keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keep = append(keep, i)
		}
	case KeepLast:
		remaining := make(map[string]int, len(counts))
		for k, c := range counts {
			remaining[k] = c
		}
		for i, k := range keys {
			remaining[k]--
			if remaining[k] == 0 {
				keep = append(keep, i)
			}
		}
	case DropAllExact:
		for i, k := range keys {
			if counts[k] == 1 {
				keep = append(keep, i)
			}
		}
	default:
		return nil, apperror.NewValidation("duplicate_strategy", "unknown strategy "+string(strategy))
	}
	return f.SelectRows(keep), nil
}
