package nlq

import (
	"strconv"
	"strings"
	"unicode"

	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/pkg/dataset"
)

// parseLexical is the deterministic fallback tier: a fixed cue table over
// the lower-cased, tokenized query. It never performs I/O, so for a fixed
// frame the same query always yields the same plan.
func parseLexical(query string, f *dataset.Frame) (*Plan, error) {
	lower := strings.ToLower(query)
	tokens := tokenize(lower)

	fn, hasFunc := detectFunc(lower, tokens)
	groupBy := detectGroup(lower, tokens, f)
	matched := matchColumns(tokens, f)

	// The group column should not double as the value column.
	var values []string
	for _, m := range matched {
		if !strings.EqualFold(m, groupBy) {
			values = append(values, m)
		}
	}

	if groupBy != "" {
		plan := &Plan{Kind: KindGroupAggregate, GroupBy: groupBy, Func: FuncCount}
		if hasFunc {
			plan.Func = fn
		}
		switch {
		case plan.Func == FuncCount:
			// row count per group, no value column
		case plan.Func == FuncDistinct:
			if len(values) == 0 {
				return nil, &apperror.AmbiguousQueryError{Query: query, Reason: "no column matched for a distinct-value count"}
			}
			plan.Column = longestName(values)
		default:
			col, err := pickValueColumn(query, values, f, plan.Func)
			if err != nil {
				return nil, err
			}
			plan.Column = col
		}
		return plan, nil
	}

	if !hasFunc {
		return nil, &apperror.UnresolvedQueryError{Query: query}
	}

	if fn == FuncCount {
		return &Plan{Kind: KindAggregate, Func: FuncCount}, nil
	}

	if fn == FuncDistinct {
		if len(values) == 0 {
			return nil, &apperror.AmbiguousQueryError{Query: query, Reason: "no column matched for a distinct-value count"}
		}
		return &Plan{Kind: KindAggregate, Func: FuncDistinct, Column: longestName(values)}, nil
	}

	col, err := pickValueColumn(query, values, f, fn)
	if err != nil {
		return nil, err
	}

	if fn == FuncMax {
		if n, ok := integerToken(tokens); ok {
			return &Plan{Kind: KindTopN, Column: col, N: n}, nil
		}
	}
	return &Plan{Kind: KindAggregate, Func: fn, Column: col}, nil
}

// tokenize splits on anything that is not a letter or digit.
func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// detectFunc maps lexical cues to an aggregate func, in the fixed table
// order: sum, mean, count, distinct, max, min.
func detectFunc(lower string, tokens []string) (AggFunc, bool) {
	has := func(words ...string) bool {
		for _, w := range words {
			for _, t := range tokens {
				if t == w {
					return true
				}
			}
		}
		return false
	}
	switch {
	case has("total", "sum"):
		return FuncSum, true
	case has("average", "mean"):
		return FuncMean, true
	case has("count") || strings.Contains(lower, "how many"):
		return FuncCount, true
	case has("unique", "distinct"):
		return FuncDistinct, true
	case has("max", "highest", "top"):
		return FuncMax, true
	case has("min", "lowest"):
		return FuncMin, true
	}
	return "", false
}

// detectGroup looks for "by <noun>" where the noun resolves to a column, or
// a bare "group" cue, in which case the first categorical or temporal match
// becomes the group key.
func detectGroup(lower string, tokens []string, f *dataset.Frame) string {
	for i, t := range tokens {
		if t == "by" && i+1 < len(tokens) {
			if col := resolveToken(tokens[i+1], f); col != "" {
				return col
			}
		}
	}
	if strings.Contains(lower, "group") {
		for _, m := range matchColumns(tokens, f) {
			idx := f.ColumnIndex(m)
			if dt := f.Cols[idx].DType; dt == dataset.Categorical || dt == dataset.Temporal {
				return m
			}
		}
	}
	return ""
}

// resolveToken matches a single token against declared column names,
// case-insensitive substring, longest column name winning.
func resolveToken(token string, f *dataset.Frame) string {
	if len(token) < 2 {
		return ""
	}
	best := ""
	for _, c := range f.Cols {
		if strings.Contains(strings.ToLower(c.Name), token) && len(c.Name) > len(best) {
			best = c.Name
		}
	}
	return best
}

// matchColumns resolves every token, preserving first-match order and
// dropping duplicates.
func matchColumns(tokens []string, f *dataset.Frame) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, t := range tokens {
		col := resolveToken(t, f)
		if col == "" {
			continue
		}
		if _, ok := seen[col]; ok {
			continue
		}
		seen[col] = struct{}{}
		out = append(out, col)
	}
	return out
}

func longestName(names []string) string {
	best := names[0]
	for _, n := range names[1:] {
		if len(n) > len(best) {
			best = n
		}
	}
	return best
}

// pickValueColumn chooses the numeric column a non-count aggregate targets.
// On multiple matches the longest column name wins; no numeric match at all
// is an ambiguous query.
func pickValueColumn(query string, candidates []string, f *dataset.Frame, fn AggFunc) (string, error) {
	var numeric []string
	for _, name := range candidates {
		if f.Cols[f.ColumnIndex(name)].DType == dataset.Numeric {
			numeric = append(numeric, name)
		}
	}
	if len(numeric) == 0 {
		return "", &apperror.AmbiguousQueryError{
			Query:  query,
			Reason: "no numeric column matched for " + string(fn) + "; name the column explicitly",
		}
	}
	return longestName(numeric), nil
}

// integerToken finds the first integer token, used as N for top-N queries.
func integerToken(tokens []string) (int, bool) {
	for _, t := range tokens {
		if n, err := strconv.Atoi(t); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}
