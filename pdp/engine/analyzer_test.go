// pdp/engine/analyzer_test.go
package engine_test

import (
	"context"
	"fmt"
	"testing"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/stretchr/testify/assert"
)

func TestCorpusAnalyzer(t *testing.T) {
	logger.InitLogger("")
	defer logger.Sync()

	analyzer := engine.NewCorpusAnalyzer()
	ctx := context.Background()

	t.Run("EmptyCorpus_Rejected", func(t *testing.T) {
		report, metrics, err := analyzer.Analyze(ctx, nil, model.DefaultAnalysisOptions())

		assert.Nil(t, report)
		assert.Nil(t, metrics)
		assert.ErrorIs(t, err, hodei_errors.ErrAtLeastOnePolicy)
	})

	t.Run("OversizedCorpus_Rejected", func(t *testing.T) {
		corpus := make([]model.PolicyForAnalysis, 1001)
		for i := range corpus {
			corpus[i] = model.PolicyForAnalysis{
				ID:      fmt.Sprintf("p%d", i),
				Content: `permit (principal, action, resource);`,
			}
		}

		_, _, err := analyzer.Analyze(ctx, corpus, model.DefaultAnalysisOptions())

		assert.ErrorIs(t, err, hodei_errors.ErrTooManyPolicies)
	})

	t.Run("OppositeUnscopedEffects_HighSeverityConflict", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource);`},
			{ID: "p2", Content: `forbid (principal, action, resource);`},
		}

		report, metrics, err := analyzer.Analyze(ctx, corpus, model.ConflictAnalysisOptions{IncludeConflicts: true})

		assert.NoError(t, err)
		assert.Len(t, report.Conflicts, 1)
		assert.Equal(t, "p1", report.Conflicts[0].PolicyA)
		assert.Equal(t, "p2", report.Conflicts[0].PolicyB)
		assert.Equal(t, model.SeverityHigh, report.Conflicts[0].Severity)
		assert.Equal(t, int64(1), metrics.CombinationsAnalyzed)
	})

	t.Run("PartialTargetOverlap_MediumSeverityConflict", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource == Repository::"docs");`},
			{ID: "p2", Content: `forbid (principal, action == Action::"write", resource == Repository::"docs");`},
		}

		report, _, err := analyzer.Analyze(ctx, corpus, model.ConflictAnalysisOptions{IncludeConflicts: true})

		assert.NoError(t, err)
		assert.Len(t, report.Conflicts, 1)
		assert.Equal(t, model.SeverityMedium, report.Conflicts[0].Severity)
	})

	t.Run("DisjointTargets_NoConflict", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource == Repository::"alpha");`},
			{ID: "p2", Content: `forbid (principal, action, resource == Repository::"beta");`},
		}

		report, _, err := analyzer.Analyze(ctx, corpus, model.ConflictAnalysisOptions{IncludeConflicts: true})

		assert.NoError(t, err)
		assert.Empty(t, report.Conflicts)
		assert.Equal(t, 0, report.Summary.TotalConflicts)
	})

	t.Run("NearIdenticalPermits_FlaggedRedundant", func(t *testing.T) {
		text := `permit (principal in Group::"readers", action == Action::"read", resource);`
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: text},
			{ID: "p2", Content: text},
			{ID: "p3", Content: text},
		}

		report, _, err := analyzer.Analyze(ctx, corpus, model.ConflictAnalysisOptions{IncludeRedundancies: true})

		assert.NoError(t, err)
		assert.Len(t, report.Redundancies, 3)
		for _, r := range report.Redundancies {
			assert.Equal(t, 1.0, r.Confidence)
		}
	})

	t.Run("DistinctPolicies_NoRedundancy", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal == User::"alice", action == Action::"read", resource == Repository::"alpha");`},
			{ID: "p2", Content: `permit (principal == User::"bob", action == Action::"write", resource == Repository::"beta");`},
			{ID: "p3", Content: `permit (principal == User::"carol", action == Action::"delete", resource == Repository::"gamma");`},
		}

		report, _, err := analyzer.Analyze(ctx, corpus, model.ConflictAnalysisOptions{IncludeRedundancies: true})

		assert.NoError(t, err)
		assert.Empty(t, report.Redundancies)
	})

	t.Run("BroadForbidFirst_ShadowsLaterPermit", func(t *testing.T) {
		broad := model.PolicyForAnalysis{ID: "deny-all", Content: `forbid (principal, action, resource);`}
		scoped := model.PolicyForAnalysis{ID: "allow-docs", Content: `permit (principal, action, resource == Repository::"docs");`}

		report, _, err := analyzer.Analyze(ctx, []model.PolicyForAnalysis{broad, scoped},
			model.ConflictAnalysisOptions{IncludeReachability: true})

		assert.NoError(t, err)
		assert.Len(t, report.UnreachablePolicies, 1)
		assert.Equal(t, "allow-docs", report.UnreachablePolicies[0].Policy)

		// In the reverse order nothing shadows: a permit never dominates a forbid.
		report, _, err = analyzer.Analyze(ctx, []model.PolicyForAnalysis{scoped, broad},
			model.ConflictAnalysisOptions{IncludeReachability: true})

		assert.NoError(t, err)
		assert.Empty(t, report.UnreachablePolicies)
	})

	t.Run("CleanCorpus_FullScanCounts", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal == User::"alice", action == Action::"read", resource == Repository::"alpha");`},
			{ID: "p2", Content: `permit (principal == User::"bob", action == Action::"write", resource == Repository::"beta");`},
			{ID: "p3", Content: `permit (principal == User::"carol", action == Action::"delete", resource == Repository::"gamma");`},
		}

		report, metrics, err := analyzer.Analyze(ctx, corpus, model.DefaultAnalysisOptions())

		assert.NoError(t, err)
		assert.Equal(t, 3, report.Summary.TotalPolicies)
		assert.Equal(t, 0.0, report.Summary.ConflictScore)
		// 3 conflict pairs + 6 ordered redundancy pairs + 3 reachability pairs.
		assert.Equal(t, int64(12), metrics.CombinationsAnalyzed)
	})

	t.Run("CancelledContext_TruncatesScan", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		corpus := make([]model.PolicyForAnalysis, 6)
		for i := range corpus {
			corpus[i] = model.PolicyForAnalysis{
				ID:      fmt.Sprintf("p%d", i),
				Content: `permit (principal, action, resource);`,
			}
		}

		report, metrics, err := analyzer.Analyze(cancelled, corpus, model.DefaultAnalysisOptions())

		// Budget exhaustion truncates the scan instead of failing it.
		assert.NoError(t, err)
		assert.Equal(t, 6, report.Summary.TotalPolicies)
		assert.Equal(t, int64(0), metrics.CombinationsAnalyzed)
		assert.Empty(t, report.Conflicts)
	})

	t.Run("RepeatRuns_Deterministic", func(t *testing.T) {
		corpus := []model.PolicyForAnalysis{
			{ID: "p1", Content: `permit (principal, action, resource == Repository::"docs");`},
			{ID: "p2", Content: `forbid (principal, action, resource == Repository::"docs");`},
			{ID: "p3", Content: `permit (principal, action, resource == Repository::"docs");`},
		}

		first, _, err := analyzer.Analyze(ctx, corpus, model.DefaultAnalysisOptions())
		assert.NoError(t, err)
		second, _, err := analyzer.Analyze(ctx, corpus, model.DefaultAnalysisOptions())
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		// 5 findings over 3 policies caps the score at 1.0.
		assert.Equal(t, 1.0, first.Summary.ConflictScore)
	})
}
