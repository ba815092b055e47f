// pdp/engine/analyzer.go
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	hodei_errors "github.com/Rubentxu/hodei-artifacts-sub005/errors"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	"go.uber.org/zap"
)

const (
	maxPoliciesForAnalysis     = 1000
	defaultAnalysisTimeoutMs   = 30000
	defaultRedundancyThreshold = 0.8
)

// CorpusAnalyzer statically inspects a policy corpus for conflicts,
// redundancies and unreachable policies before they cause incidents. All
// three detectors are text-level heuristics over the raw policy source, not
// formal subsumption proofs; confidence scores reflect that.
//
// Analysis is budgeted: once the timeout expires the analyzer stops
// examining pairs and returns whatever it found so far. Callers can compare
// CombinationsAnalyzed against the expected pair count to detect truncation.
type CorpusAnalyzer struct{}

func NewCorpusAnalyzer() *CorpusAnalyzer {
	return &CorpusAnalyzer{}
}

// analysisRun tracks the shared budget across phases.
type analysisRun struct {
	ctx      context.Context
	deadline time.Time
}

func (r *analysisRun) expired() bool {
	if r.ctx != nil && r.ctx.Err() != nil {
		return true
	}
	return !time.Now().Before(r.deadline)
}

// Analyze runs the enabled detection phases over the corpus and reports the
// findings plus per-phase timing. Timeout never fails the call; it truncates
// the pair scan and the metrics show how much work was actually done.
func (ca *CorpusAnalyzer) Analyze(ctx context.Context, policies []model.PolicyForAnalysis, options model.ConflictAnalysisOptions) (*model.ConflictAnalysisReport, *model.AnalysisMetrics, error) {
	operationID := uuid.New().String()
	start := time.Now()

	if len(policies) == 0 {
		return nil, nil, hodei_errors.ErrAtLeastOnePolicy
	}
	if len(policies) > maxPoliciesForAnalysis {
		return nil, nil, fmt.Errorf("%w (maximum %d)", hodei_errors.ErrTooManyPolicies, maxPoliciesForAnalysis)
	}

	timeoutMs := options.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = defaultAnalysisTimeoutMs
	}
	threshold := options.RedundancyThreshold
	if threshold <= 0 {
		threshold = defaultRedundancyThreshold
	}

	run := &analysisRun{
		ctx:      ctx,
		deadline: start.Add(time.Duration(timeoutMs) * time.Millisecond),
	}

	logger.Info("Starting policy corpus analysis",
		zap.String("operationID", operationID),
		zap.Int("policyCount", len(policies)),
		zap.Int64("timeoutMs", timeoutMs))

	report := &model.ConflictAnalysisReport{
		Conflicts:           []model.Conflict{},
		Redundancies:        []model.Redundancy{},
		UnreachablePolicies: []model.UnreachablePolicy{},
	}
	metrics := &model.AnalysisMetrics{}

	if options.IncludeConflicts {
		phaseStart := time.Now()
		conflicts, examined := ca.detectConflicts(run, policies)
		report.Conflicts = conflicts
		metrics.ConflictDetectionMs = time.Since(phaseStart).Milliseconds()
		metrics.CombinationsAnalyzed += examined
	}

	if options.IncludeRedundancies {
		phaseStart := time.Now()
		redundancies, examined := ca.detectRedundancies(run, policies, threshold)
		report.Redundancies = redundancies
		metrics.RedundancyAnalysisMs = time.Since(phaseStart).Milliseconds()
		metrics.CombinationsAnalyzed += examined
	}

	if options.IncludeReachability {
		phaseStart := time.Now()
		unreachable, examined := ca.detectUnreachable(run, policies)
		report.UnreachablePolicies = unreachable
		metrics.ReachabilityAnalysisMs = time.Since(phaseStart).Milliseconds()
		metrics.CombinationsAnalyzed += examined
	}

	totalIssues := len(report.Conflicts) + len(report.Redundancies) + len(report.UnreachablePolicies)
	score := float64(totalIssues) / float64(len(policies))
	if score > 1.0 {
		score = 1.0
	}
	report.Summary = model.AnalysisSummary{
		TotalPolicies:     len(policies),
		TotalConflicts:    len(report.Conflicts),
		TotalRedundancies: len(report.Redundancies),
		TotalUnreachable:  len(report.UnreachablePolicies),
		ConflictScore:     score,
	}
	metrics.TotalDurationMs = time.Since(start).Milliseconds()

	if run.expired() {
		logger.Warn("Analysis budget exhausted, results are partial",
			zap.String("operationID", operationID),
			zap.Int64("combinationsAnalyzed", metrics.CombinationsAnalyzed))
	}

	logger.Info("Policy corpus analysis completed",
		zap.String("operationID", operationID),
		zap.Int("conflicts", report.Summary.TotalConflicts),
		zap.Int("redundancies", report.Summary.TotalRedundancies),
		zap.Int("unreachable", report.Summary.TotalUnreachable),
		zap.Int64("durationMs", metrics.TotalDurationMs))

	return report, metrics, nil
}

// detectConflicts scans every unordered pair for opposite effects over
// overlapping targets. Two policies overlap when they share a quoted target
// literal, or when neither names any target at all.
func (ca *CorpusAnalyzer) detectConflicts(run *analysisRun, policies []model.PolicyForAnalysis) ([]model.Conflict, int64) {
	conflicts := []model.Conflict{}
	var examined int64

outer:
	for i := 0; i < len(policies); i++ {
		for j := i + 1; j < len(policies); j++ {
			if run.expired() {
				break outer
			}
			examined++

			effectA := model.TextEffect(policies[i].Content)
			effectB := model.TextEffect(policies[j].Content)
			if effectA == effectB {
				continue
			}

			overlap, identical := patternsOverlap(
				quotedPatterns(policies[i].Content),
				quotedPatterns(policies[j].Content))
			if !overlap {
				continue
			}

			severity := model.SeverityMedium
			resolution := "Review policy precedence or refine the overlapping conditions"
			if identical {
				severity = model.SeverityHigh
				resolution = "Narrow the permit's scope or drop one of the pair; the forbid always wins where both apply"
			}

			conflicts = append(conflicts, model.Conflict{
				PolicyA:             policies[i].ID,
				PolicyB:             policies[j].ID,
				Severity:            severity,
				Description:         fmt.Sprintf("Policies %s and %s carry opposite effects over overlapping targets", policies[i].ID, policies[j].ID),
				SuggestedResolution: resolution,
			})
		}
	}

	return conflicts, examined
}

// detectRedundancies flags every policy whose text is near-identical to
// another policy with the same effect. Confidence is the best word-set
// similarity found, not a proof of subsumption.
func (ca *CorpusAnalyzer) detectRedundancies(run *analysisRun, policies []model.PolicyForAnalysis, threshold float64) ([]model.Redundancy, int64) {
	redundancies := []model.Redundancy{}
	var examined int64

outer:
	for i := range policies {
		superseding := 0
		best := 0.0

		for j := range policies {
			if j == i {
				continue
			}
			if run.expired() {
				break outer
			}
			examined++

			if model.TextEffect(policies[i].Content) != model.TextEffect(policies[j].Content) {
				continue
			}
			if sim := wordSimilarity(policies[i].Content, policies[j].Content); sim >= threshold {
				superseding++
				if sim > best {
					best = sim
				}
			}
		}

		if superseding > 0 {
			redundancies = append(redundancies, model.Redundancy{
				RedundantPolicy: policies[i].ID,
				Confidence:      best,
				Explanation:     fmt.Sprintf("Policy %s appears redundant: %d other policies with the same effect cover near-identical targets", policies[i].ID, superseding),
			})
		}
	}

	return redundancies, examined
}

// detectUnreachable walks the presentation order and flags every policy
// preceded by an at-least-as-broad policy whose effect is identical or
// dominates it (a forbid dominates a permit under deny-overrides).
func (ca *CorpusAnalyzer) detectUnreachable(run *analysisRun, policies []model.PolicyForAnalysis) ([]model.UnreachablePolicy, int64) {
	unreachable := []model.UnreachablePolicy{}
	var examined int64

outer:
	for i := 1; i < len(policies); i++ {
		for j := 0; j < i; j++ {
			if run.expired() {
				break outer
			}
			examined++

			if !dominates(policies[j], policies[i]) {
				continue
			}
			unreachable = append(unreachable, model.UnreachablePolicy{
				Policy:      policies[i].ID,
				Explanation: fmt.Sprintf("Policy %s is unreachable: earlier policy %s is at least as broad and already decides every request it matches", policies[i].ID, policies[j].ID),
			})
			continue outer
		}
	}

	return unreachable, examined
}

// dominates reports whether the earlier policy decides every request the
// later one could match: its effect must be identical or stronger (forbid
// over permit), it must carry no more conditions, and its target scope must
// cover the later policy's.
func dominates(earlier, later model.PolicyForAnalysis) bool {
	earlierEffect := model.TextEffect(earlier.Content)
	laterEffect := model.TextEffect(later.Content)
	if earlierEffect != laterEffect && earlierEffect != model.EffectForbid {
		return false
	}
	if conditionCount(earlier.Content) > conditionCount(later.Content) {
		return false
	}

	earlierPatterns := quotedPatterns(earlier.Content)
	if len(earlierPatterns) == 0 {
		return true
	}
	return isSubset(earlierPatterns, quotedPatterns(later.Content))
}

// quotedPatterns extracts the quoted target literals from a policy text.
func quotedPatterns(content string) map[string]struct{} {
	patterns := make(map[string]struct{})
	inQuotes := false
	var current strings.Builder

	for _, ch := range content {
		switch {
		case ch == '"':
			if inQuotes && current.Len() > 0 {
				patterns[current.String()] = struct{}{}
				current.Reset()
			}
			inQuotes = !inQuotes
		case inQuotes:
			current.WriteRune(ch)
		}
	}

	return patterns
}

// patternsOverlap reports whether two target scopes can apply to the same
// request. Two unscoped policies always overlap; scoped policies overlap
// when they share at least one target literal.
func patternsOverlap(a, b map[string]struct{}) (overlap, identical bool) {
	if len(a) == 0 && len(b) == 0 {
		return true, true
	}
	if len(a) == 0 || len(b) == 0 {
		return true, false
	}

	shared := 0
	for p := range a {
		if _, ok := b[p]; ok {
			shared++
		}
	}
	if shared == 0 {
		return false, false
	}
	return true, shared == len(a) && shared == len(b)
}

func isSubset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for p := range a {
		if _, ok := b[p]; !ok {
			return false
		}
	}
	return true
}

// wordSimilarity is the Jaccard index over the whitespace-separated tokens
// of the two policy texts.
func wordSimilarity(a, b string) float64 {
	wordsA := make(map[string]struct{})
	for _, w := range strings.Fields(a) {
		wordsA[w] = struct{}{}
	}
	wordsB := make(map[string]struct{})
	for _, w := range strings.Fields(b) {
		wordsB[w] = struct{}{}
	}

	intersection := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			intersection++
		}
	}
	union := len(wordsA) + len(wordsB) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// conditionCount approximates how constrained a policy is by counting its
// when and unless clauses.
func conditionCount(content string) int {
	return strings.Count(content, "when") + strings.Count(content, "unless")
}
