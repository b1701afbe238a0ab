package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-analytics-be/internal/pkg/logger"
	"ai-analytics-be/pkg/chart"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/dataset"
	"ai-analytics-be/pkg/nlq"
	"ai-analytics-be/pkg/report"
	"ai-analytics-be/pkg/stage"
	"ai-analytics-be/pkg/store"

	"github.com/fatih/color"
)

// Offline walkthrough of the full pipeline: upload, clean, query, charts,
// report. No server, no LLM; the lexical tier answers everything.
func main() {
	header := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	header.Println("=== Analytics Pipeline Simulation ===")

	session := store.NewSession()
	ok.Printf("Session: %s\n", session.ID)

	// Upload
	frame := dataset.New(
		[]string{"Region", "Total_Sales", "Units", "Date"},
		[][]string{
			{"A", "10", "1", "2024-01-01"},
			{"A", "30", "3", "2024-01-02"},
			{"B", "20", "2", "2024-01-03"},
			{"B", "", "2", "2024-01-03"},
			{"B", "20", "2", "2024-01-03"},
			{"C", "290", "9", "2024-01-04"},
		},
	)
	session.Raw = frame
	session.SetCurrent(frame)
	session.Gate.MarkComplete(stage.Upload)
	header.Println("\n[1] Upload")
	ok.Printf("Loaded %d rows x %d columns\n", frame.RowCount(), frame.ColumnCount())
	for _, p := range session.Profile {
		fmt.Printf("  %-12s %-12s nulls=%d unique=%d\n", p.Name, p.DType, p.NullCount, p.Unique)
	}

	// Clean
	header.Println("\n[2] Clean")
	cleaner := cleaning.NewEngine()
	cleaned, op, err := cleaner.Apply(session.Current, cleaning.Request{
		CleanMissing:      true,
		MissingStrategy:   cleaning.Mean,
		CleanDuplicates:   true,
		DuplicateStrategy: cleaning.KeepFirst,
	})
	if err != nil {
		log.Fatalf("cleaning failed: %v", err)
	}
	session.Cleaned = cleaned
	session.SetCurrent(cleaned)
	session.CleaningLog = append(session.CleaningLog, *op)
	session.Gate.MarkComplete(stage.Clean)
	ok.Printf("%s: rows %d -> %d, missing %d -> %d\n", op.Kind, op.RowsBefore, op.RowsAfter, op.MissingBefore, op.MissingAfter)

	// Query
	header.Println("\n[3] Query")
	engine := nlq.NewEngine(nil, 0, logger.NewZapLogger("logs/simulate.log", false))
	queries := []string{
		"total sales",
		"total sales by region",
		"top 2 units",
		"average",
	}
	for _, q := range queries {
		fmt.Printf("  Q: %s\n", q)
		res, err := engine.Resolve(context.Background(), q, session.Current)
		if err != nil {
			warn.Printf("     %v\n", err)
			session.QueryHistory = append(session.QueryHistory, store.QueryRecord{
				Timestamp: time.Now(), Query: q, Explanation: err.Error(),
			})
			continue
		}
		ok.Printf("     [%s] %s\n", res.Tier, res.Explanation)
		printResult(res.Result)
		session.QueryHistory = append(session.QueryHistory, store.QueryRecord{
			Timestamp: time.Now(), Query: q, Tier: res.Tier, Resolved: true,
			Explanation: res.Explanation, Result: res.Result,
		})
		session.Gate.MarkComplete(stage.Query)
	}

	// Charts
	header.Println("\n[4] Charts")
	specs := chart.Recommend(session.Profile)
	session.Charts = append(session.Charts, specs...)
	session.Gate.MarkComplete(stage.Visualize)
	for _, s := range specs {
		fmt.Printf("  %-10s %s\n", s.Kind, s.Title)
	}

	// Report
	header.Println("\n[5] Report")
	compiler := report.NewCompiler("outputs/reports", "Simulation Report")
	_, filename, err := compiler.Compile(session)
	if err != nil {
		log.Fatalf("report failed: %v", err)
	}
	session.Gate.MarkComplete(stage.Report)
	ok.Printf("Wrote %s\n", filename)

	header.Println("\n=== Done ===")
	summary := session.Summarize()
	fmt.Printf("queries=%d charts=%d cleaning_ops=%d\n", summary.Queries, summary.Charts, summary.CleaningOps)
}

func printResult(r *nlq.Result) {
	switch r.Kind {
	case nlq.KindScalar:
		fmt.Printf("     = %g\n", *r.Scalar)
	case nlq.KindSeries:
		parts := make([]string, 0, len(r.Series))
		for _, e := range r.Series {
			parts = append(parts, fmt.Sprintf("%s=%g", e.Key, e.Value))
		}
		fmt.Printf("     = {%s}\n", strings.Join(parts, ", "))
	case nlq.KindTable:
		fmt.Printf("     = table %dx%d\n", len(r.Table.Rows), len(r.Table.Columns))
	}
}
