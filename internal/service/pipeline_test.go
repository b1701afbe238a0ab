package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ai-analytics-be/internal/dto"
	"ai-analytics-be/internal/ingest"
	"ai-analytics-be/internal/pkg/apperror"
	"ai-analytics-be/internal/repository/memory"
	"ai-analytics-be/pkg/cleaning"
	"ai-analytics-be/pkg/nlq"
	"ai-analytics-be/pkg/report"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Region,Total_Sales,Units
A,10,1
A,30,3
B,20,2
B,,2
B,20,2
C,290,9
`

type noopLogger struct{}

func (noopLogger) Debug(string, string, map[string]interface{}) {}
func (noopLogger) Info(string, string, map[string]interface{})  {}
func (noopLogger) Warn(string, string, map[string]interface{})  {}
func (noopLogger) Error(string, string, map[string]interface{}) {}
func (noopLogger) Sync() error                                  { return nil }

type testEnv struct {
	sessions ISessionService
	datasets IDatasetService
	queries  IQueryService
	charts   IChartService
	reports  IReportService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewSessionRepository(time.Hour)
	locks := NewSessionLocks()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	activity := NewActivityService(NewPublisherService("activity", pubSub), nil, noopLogger{})

	return &testEnv{
		sessions: NewSessionService(repo, locks, activity),
		datasets: NewDatasetService(repo, ingest.NewLoader(10), cleaning.NewEngine(), locks, activity),
		queries:  NewQueryService(repo, nlq.NewEngine(nil, 0, noopLogger{}), locks, activity),
		charts:   NewChartService(repo, locks, activity),
		reports:  NewReportService(repo, report.NewCompiler(t.TempDir(), "Test Report"), locks, activity),
	}
}

func (e *testEnv) createSession(t *testing.T) string {
	t.Helper()
	res, err := e.sessions.Create(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.SessionID)
	return res.SessionID
}

func TestUnknownSession(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.sessions.Summary(context.Background(), "nope")

	var notFound *apperror.SessionNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nope", notFound.SessionID)
}

func TestStageGatingBeforeUpload(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	var locked *apperror.StageLockedError

	_, err := env.datasets.CleaningNeeds(ctx, id)
	require.ErrorAs(t, err, &locked)

	_, err = env.queries.Run(ctx, id, &dto.RunQueryRequest{Query: "total sales"})
	require.ErrorAs(t, err, &locked)

	_, err = env.charts.Auto(ctx, id)
	require.ErrorAs(t, err, &locked)

	_, err = env.reports.Generate(ctx, id)
	require.ErrorAs(t, err, &locked)
}

func TestFullPipeline(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	// Upload
	up, err := env.datasets.Upload(ctx, id, "sales.csv", []byte(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 6, up.FileInfo.Rows)
	assert.Equal(t, 3, up.FileInfo.Columns)
	assert.Len(t, up.Profile, 3)
	require.NotNil(t, up.Preview)
	assert.Equal(t, []string{"Region", "Total_Sales", "Units"}, up.Preview.Columns)

	// Cleaning needs
	needs, err := env.datasets.CleaningNeeds(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, needs.MissingValues["Total_Sales"])
	assert.Equal(t, 1, needs.Duplicates)

	// Clean
	cleaned, err := env.datasets.ApplyCleaning(ctx, id, &dto.CleanRequest{
		CleanMissing:      true,
		MissingStrategy:   "mean",
		CleanDuplicates:   true,
		DuplicateStrategy: "first",
	})
	require.NoError(t, err)
	assert.Equal(t, 6, cleaned.Operation.RowsBefore)
	assert.Equal(t, 5, cleaned.Operation.RowsAfter)
	assert.Equal(t, 0, cleaned.Operation.MissingAfter)

	// Query (lexical tier; no provider configured)
	q, err := env.queries.Run(ctx, id, &dto.RunQueryRequest{Query: "total sales by region"})
	require.NoError(t, err)
	assert.Equal(t, nlq.TierLexical, q.Tier)
	require.Equal(t, nlq.KindSeries, q.Result.Kind)
	assert.Equal(t, "A", q.Result.Series[0].Key)

	// Charts
	charts, err := env.charts.Auto(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, charts.Charts)

	custom, err := env.charts.Custom(ctx, id, &dto.CustomChartRequest{
		ChartType: "bar", XCol: "Region", YCol: "Units",
	})
	require.NoError(t, err)
	assert.Len(t, custom.Charts, 1)

	// Report
	rep, err := env.reports.Generate(ctx, id)
	require.NoError(t, err)
	assert.NotEmpty(t, rep.Filename)
	assert.NotEmpty(t, rep.Document.Queries)

	path, err := env.reports.Download(ctx, id, rep.Filename)
	require.NoError(t, err)
	assert.NotEmpty(t, path)

	// Summary reflects everything
	sum, err := env.sessions.Summary(ctx, id)
	require.NoError(t, err)
	assert.True(t, sum.HasData)
	assert.Equal(t, 5, sum.Rows)
	assert.Equal(t, 1, sum.CleaningOps)
	assert.Equal(t, 1, sum.Queries)
	assert.True(t, sum.Stages["report"])
}

func TestQueryFailureIsRecorded(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	_, err := env.datasets.Upload(ctx, id, "sales.csv", []byte(sampleCSV))
	require.NoError(t, err)
	_, err = env.datasets.ApplyCleaning(ctx, id, &dto.CleanRequest{
		CleanDuplicates: true, DuplicateStrategy: "first",
	})
	require.NoError(t, err)

	_, err = env.queries.Run(ctx, id, &dto.RunQueryRequest{Query: "average"})
	var ambiguous *apperror.AmbiguousQueryError
	require.ErrorAs(t, err, &ambiguous)

	history, err := env.queries.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Resolved)
	assert.Nil(t, history[0].Summary)

	// A failed query does not complete the stage.
	_, err = env.charts.Auto(ctx, id)
	var locked *apperror.StageLockedError
	require.ErrorAs(t, err, &locked)
}

func TestResetKeepsIdentity(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	_, err := env.datasets.Upload(ctx, id, "sales.csv", []byte(sampleCSV))
	require.NoError(t, err)

	sum, err := env.sessions.Reset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, sum.SessionID)
	assert.False(t, sum.HasData)
	assert.Zero(t, sum.Rows)
	assert.False(t, sum.Stages["upload"])

	// The pipeline starts over cleanly after a reset.
	_, err = env.datasets.CleaningNeeds(ctx, id)
	var locked *apperror.StageLockedError
	require.ErrorAs(t, err, &locked)
}

func TestReuploadResetsDerivedState(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	_, err := env.datasets.Upload(ctx, id, "sales.csv", []byte(sampleCSV))
	require.NoError(t, err)
	_, err = env.datasets.ApplyCleaning(ctx, id, &dto.CleanRequest{
		CleanDuplicates: true, DuplicateStrategy: "first",
	})
	require.NoError(t, err)

	_, err = env.datasets.Upload(ctx, id, "other.csv", []byte("X,Y\n1,2\n"))
	require.NoError(t, err)

	sum, err := env.sessions.Summary(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Rows)
	assert.Zero(t, sum.CleaningOps)
	assert.True(t, sum.Stages["upload"])
	assert.False(t, sum.Stages["clean"])
}

func TestUploadRejectsBadFile(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)

	_, err := env.datasets.Upload(context.Background(), id, "notes.txt", []byte("hello"))
	var verr *apperror.ValidationError
	require.True(t, errors.As(err, &verr))
}

// Queries mutate the session while summary, history and chart listings read
// it, and the memory store hands every caller the same pointer. All of those
// paths must serialize on the per-session lock (run with -race).
func TestConcurrentReadsWhileQuerying(t *testing.T) {
	env := newTestEnv(t)
	id := env.createSession(t)
	ctx := context.Background()

	_, err := env.datasets.Upload(ctx, id, "sales.csv", []byte(sampleCSV))
	require.NoError(t, err)
	_, err = env.datasets.ApplyCleaning(ctx, id, &dto.CleanRequest{
		CleanMissing: true, MissingStrategy: "mean",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 200)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.queries.Run(ctx, id, &dto.RunQueryRequest{Query: "total sales"}); err != nil {
				errs <- fmt.Errorf("run: %w", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.sessions.Summary(ctx, id); err != nil {
				errs <- fmt.Errorf("summary: %w", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.queries.History(ctx, id); err != nil {
				errs <- fmt.Errorf("history: %w", err)
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := env.charts.List(ctx, id); err != nil {
				errs <- fmt.Errorf("charts: %w", err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	hist, err := env.queries.History(ctx, id)
	require.NoError(t, err)
	assert.Len(t, hist, 50)
}
