package nlq

import (
	"fmt"

	"ai-analytics-be/pkg/dataset"
)

// PlanKind is one of the supported primitive operations.
type PlanKind string

const (
	KindAggregate      PlanKind = "aggregate"
	KindGroupAggregate PlanKind = "group-aggregate"
	KindFilterCompare  PlanKind = "filter-compare"
	KindTopN           PlanKind = "top-n"
	KindDescribe       PlanKind = "describe"
)

// AggFunc is the aggregate applied by aggregate/group-aggregate/top-n plans.
type AggFunc string

const (
	FuncSum      AggFunc = "sum"
	FuncMean     AggFunc = "mean"
	FuncCount    AggFunc = "count"
	FuncDistinct AggFunc = "distinct"
	FuncMin      AggFunc = "min"
	FuncMax      AggFunc = "max"
)

// FilterClause restricts rows before a filter-compare plan returns them.
type FilterClause struct {
	Column string `json:"column"`
	Op     string `json:"op"` // gt, gte, lt, lte, eq, neq
	Value  string `json:"value"`
}

// Plan is the structured description of a tabular operation. Both resolution
// tiers produce this shape; execution is tier-agnostic.
type Plan struct {
	Kind    PlanKind      `json:"kind"`
	Func    AggFunc       `json:"func,omitempty"`
	Column  string        `json:"column,omitempty"`
	GroupBy string        `json:"group_by,omitempty"`
	N       int           `json:"n,omitempty"`
	Filter  *FilterClause `json:"filter,omitempty"`
}

var supportedKinds = map[PlanKind]struct{}{
	KindAggregate:      {},
	KindGroupAggregate: {},
	KindFilterCompare:  {},
	KindTopN:           {},
	KindDescribe:       {},
}

var supportedFuncs = map[AggFunc]struct{}{
	FuncSum: {}, FuncMean: {}, FuncCount: {}, FuncDistinct: {}, FuncMin: {}, FuncMax: {},
}

var filterOps = map[string]struct{}{
	"gt": {}, "gte": {}, "lt": {}, "lte": {}, "eq": {}, "neq": {},
}

// numericFuncs require a numeric value column.
func (f AggFunc) numeric() bool {
	switch f {
	case FuncSum, FuncMean, FuncMin, FuncMax:
		return true
	}
	return false
}

// validate checks a plan against the frame schema. Every column reference
// must exist and the operation shape must be coherent; anything else is
// rejected so an assisted plan falls through to the deterministic tier.
func (p *Plan) validate(f *dataset.Frame) error {
	if _, ok := supportedKinds[p.Kind]; !ok {
		return fmt.Errorf("unsupported plan kind %q", p.Kind)
	}

	checkColumn := func(name string, needNumeric bool) error {
		idx := f.ColumnIndex(name)
		if idx < 0 {
			return fmt.Errorf("plan references unknown column %q", name)
		}
		if needNumeric && f.Cols[idx].DType != dataset.Numeric {
			return fmt.Errorf("plan needs a numeric column, %q is %s", name, f.Cols[idx].DType)
		}
		return nil
	}

	switch p.Kind {
	case KindAggregate, KindGroupAggregate:
		if _, ok := supportedFuncs[p.Func]; !ok {
			return fmt.Errorf("unsupported aggregate func %q", p.Func)
		}
		if p.Func == FuncCount && p.Column == "" {
			// row count needs no column
		} else if err := checkColumn(p.Column, p.Func.numeric()); err != nil {
			return err
		}
		if p.Kind == KindGroupAggregate {
			if err := checkColumn(p.GroupBy, false); err != nil {
				return err
			}
		}
	case KindTopN:
		if p.N < 1 {
			return fmt.Errorf("top-n plan needs n >= 1, got %d", p.N)
		}
		if err := checkColumn(p.Column, true); err != nil {
			return err
		}
	case KindFilterCompare:
		if p.Filter == nil {
			return fmt.Errorf("filter-compare plan is missing its filter clause")
		}
		if _, ok := filterOps[p.Filter.Op]; !ok {
			return fmt.Errorf("unsupported filter op %q", p.Filter.Op)
		}
		if err := checkColumn(p.Filter.Column, false); err != nil {
			return err
		}
	case KindDescribe:
		// whole-frame summary, nothing to resolve
	}
	return nil
}
