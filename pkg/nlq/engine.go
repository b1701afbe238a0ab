package nlq

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-analytics-be/internal/pkg/logger"
	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/llm"
)

// Resolution tiers, recorded on every query history entry.
const (
	TierAssisted = "assisted"
	TierLexical  = "lexical"
)

// Resolution is what a successful Resolve returns.
type Resolution struct {
	Result      *Result
	Explanation string
	Tier        string
	Plan        *Plan
}

// Engine is the two-tier natural-language query resolver. Tier 1 delegates
// to the configured LLM provider; every Tier-1 failure mode is absorbed and
// demoted to the deterministic lexical tier. Correctness of Tier 2 never
// assumes Tier 1 ran.
type Engine struct {
	planner *Planner
	log     logger.ILogger
}

// NewEngine builds the resolver. A nil provider disables the assisted tier.
func NewEngine(provider llm.Provider, delegateTimeout time.Duration, log logger.ILogger) *Engine {
	e := &Engine{log: log}
	if provider != nil {
		e.planner = NewPlanner(provider, delegateTimeout)
	}
	return e
}

// Resolve turns query text into a Result plus a human-readable explanation.
// Errors are only AmbiguousQueryError or UnresolvedQueryError; delegate
// failures are contained here.
func (e *Engine) Resolve(ctx context.Context, query string, f *dataset.Frame) (*Resolution, error) {
	if e.planner != nil {
		plan, err := e.planner.Plan(ctx, query, f)
		if err == nil {
			result, execErr := execute(plan, f)
			if execErr == nil {
				return &Resolution{
					Result:      result,
					Explanation: explain(plan, TierAssisted),
					Tier:        TierAssisted,
					Plan:        plan,
				}, nil
			}
			err = &delegateFailure{reason: "plan execution", err: execErr}
		}
		if e.log != nil {
			e.log.Debug("NLQ", "assisted tier demoted to lexical fallback", map[string]interface{}{
				"query": query,
				"error": err.Error(),
			})
		}
	}

	plan, err := parseLexical(query, f)
	if err != nil {
		return nil, err
	}
	result, err := execute(plan, f)
	if err != nil {
		// A lexical plan only executes local arithmetic; any failure here
		// means the query cannot be served.
		return nil, err
	}
	return &Resolution{
		Result:      result,
		Explanation: explain(plan, TierLexical),
		Tier:        TierLexical,
		Plan:        plan,
	}, nil
}

// explain renders a deterministic, plan-derived explanation. For a fixed
// plan and tier the text is always identical.
func explain(p *Plan, tier string) string {
	var action string
	switch p.Kind {
	case KindAggregate:
		if p.Func == FuncCount && p.Column == "" {
			action = "Counted all rows"
		} else if p.Func == FuncDistinct {
			action = fmt.Sprintf("Counted distinct values of %s", p.Column)
		} else {
			action = fmt.Sprintf("Computed the %s of %s, skipping nulls", funcWord(p.Func), p.Column)
		}
	case KindGroupAggregate:
		target := "rows"
		if p.Column != "" {
			target = p.Column
		}
		action = fmt.Sprintf("Grouped by %s (first-occurrence order) and computed the %s of %s, skipping nulls",
			p.GroupBy, funcWord(p.Func), target)
	case KindTopN:
		action = fmt.Sprintf("Selected the top %d rows by %s", p.N, p.Column)
	case KindFilterCompare:
		action = fmt.Sprintf("Filtered rows where %s %s %s", p.Filter.Column, opWord(p.Filter.Op), p.Filter.Value)
	case KindDescribe:
		action = "Described every column of the dataset"
	}
	if tier == TierAssisted {
		return action + " (assisted interpretation)."
	}
	return action + " (rule-based interpretation)."
}

func funcWord(f AggFunc) string {
	switch f {
	case FuncSum:
		return "sum"
	case FuncMean:
		return "average"
	case FuncCount:
		return "count"
	case FuncDistinct:
		return "distinct count"
	case FuncMin:
		return "minimum"
	case FuncMax:
		return "maximum"
	}
	return string(f)
}

func opWord(op string) string {
	replacer := strings.NewReplacer("gte", ">=", "lte", "<=", "gt", ">", "lt", "<", "neq", "!=", "eq", "==")
	return replacer.Replace(op)
}
