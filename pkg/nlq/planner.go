package nlq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/llm"
)

// sampleRows is how many rows the delegate sees as schema context.
const sampleRows = 3

// delegateFailure marks any Tier-1 problem: timeout, provider error,
// malformed response, unknown column or unsupported kind. It never escapes
// the engine; its only effect is the demotion to the deterministic tier.
type delegateFailure struct {
	reason string
	err    error
}

func (d *delegateFailure) Error() string {
	if d.err != nil {
		return fmt.Sprintf("delegate failure (%s): %v", d.reason, d.err)
	}
	return "delegate failure: " + d.reason
}

func (d *delegateFailure) Unwrap() error { return d.err }

// Planner asks the external language-understanding delegate for a structured
// operation plan.
type Planner struct {
	provider llm.Provider
	timeout  time.Duration
}

func NewPlanner(provider llm.Provider, timeout time.Duration) *Planner {
	return &Planner{provider: provider, timeout: timeout}
}

// Plan requests and strictly validates an operation plan. Any error return
// is a *delegateFailure.
func (p *Planner) Plan(ctx context.Context, query string, f *dataset.Frame) (*Plan, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	prompt := buildPlanPrompt(query, f)
	response, err := p.provider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		return nil, &delegateFailure{reason: "provider call", err: err}
	}

	plan, err := extractPlan(response)
	if err != nil {
		return nil, &delegateFailure{reason: "plan extraction", err: err}
	}
	if err := plan.validate(f); err != nil {
		return nil, &delegateFailure{reason: "plan validation", err: err}
	}
	return plan, nil
}

// buildPlanPrompt renders the schema context (names, dtypes, a small row
// sample) plus the contract the response must follow.
func buildPlanPrompt(query string, f *dataset.Frame) string {
	var sb strings.Builder

	sb.WriteString("<system>\n")
	sb.WriteString("You translate one natural-language question about a table into ONE JSON operation plan.\n")
	sb.WriteString("You never answer the question yourself and you output nothing but the JSON object.\n")
	sb.WriteString("</system>\n\n")

	sb.WriteString("<schema>\n")
	for _, c := range f.Cols {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", c.Name, c.DType))
	}
	sb.WriteString("</schema>\n\n")

	sb.WriteString("<sample_rows>\n")
	for _, row := range f.Head(sampleRows) {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	sb.WriteString("</sample_rows>\n\n")

	sb.WriteString("<question>\n")
	sb.WriteString(query)
	sb.WriteString("\n</question>\n\n")

	sb.WriteString("<contract>\n")
	sb.WriteString(`Respond with one JSON object:
{"kind": "aggregate|group-aggregate|filter-compare|top-n|describe",
 "func": "sum|mean|count|distinct|min|max",
 "column": "<value column or empty>",
 "group_by": "<group column, group-aggregate only>",
 "n": <integer, top-n only>,
 "filter": {"column": "...", "op": "gt|gte|lt|lte|eq|neq", "value": "..."}}
Only reference columns declared in <schema>. Omit fields that do not apply.
`)
	sb.WriteString("</contract>\n")
	return sb.String()
}

// extractPlan pulls the first JSON object out of the raw model response.
// Models tend to wrap JSON in prose or code fences.
func extractPlan(response string) (*Plan, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}
	var plan Plan
	if err := json.Unmarshal([]byte(response[start:end+1]), &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &plan, nil
}
