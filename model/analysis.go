// model/analysis.go
package model

// ConflictSeverity grades how damaging a detected conflict is.
type ConflictSeverity string

const (
	SeverityHigh   ConflictSeverity = "high"
	SeverityMedium ConflictSeverity = "medium"
	SeverityLow    ConflictSeverity = "low"
)

// ConflictAnalysisOptions controls which analyses run and their budget.
// Zero values fall back to the configured defaults.
type ConflictAnalysisOptions struct {
	IncludeConflicts    bool    `json:"include_conflicts"`
	IncludeRedundancies bool    `json:"include_redundancies"`
	IncludeReachability bool    `json:"include_reachability"`
	TimeoutMs           int64   `json:"timeout_ms,omitempty"`
	RedundancyThreshold float64 `json:"redundancy_threshold,omitempty"`
}

// DefaultAnalysisOptions enables every phase with zero (configured) budget
// overrides.
func DefaultAnalysisOptions() ConflictAnalysisOptions {
	return ConflictAnalysisOptions{
		IncludeConflicts:    true,
		IncludeRedundancies: true,
		IncludeReachability: true,
	}
}

// Conflict is a pair of policies with opposite effects and overlapping
// applicability.
type Conflict struct {
	PolicyA             string           `json:"policy_a"`
	PolicyB             string           `json:"policy_b"`
	Severity            ConflictSeverity `json:"severity"`
	Description         string           `json:"description"`
	SuggestedResolution string           `json:"suggested_resolution"`
}

// Redundancy marks a policy whose effect appears fully covered by another.
// Confidence is a heuristic similarity score in [0,1], not a proof of
// logical subsumption.
type Redundancy struct {
	RedundantPolicy string  `json:"redundant_policy"`
	Confidence      float64 `json:"confidence"`
	Explanation     string  `json:"explanation"`
}

// UnreachablePolicy marks a policy dominated by an earlier, broader one.
type UnreachablePolicy struct {
	Policy      string `json:"policy"`
	Explanation string `json:"explanation"`
}

// AnalysisSummary aggregates corpus-level counts. ConflictScore is the ratio
// of detected issues to policies, capped at 1.0.
type AnalysisSummary struct {
	TotalPolicies     int     `json:"total_policies"`
	TotalConflicts    int     `json:"total_conflicts"`
	TotalRedundancies int     `json:"total_redundancies"`
	TotalUnreachable  int     `json:"total_unreachable"`
	ConflictScore     float64 `json:"conflict_score"`
}

// ConflictAnalysisReport is the analyzer's full result.
type ConflictAnalysisReport struct {
	Conflicts           []Conflict          `json:"conflicts"`
	Redundancies        []Redundancy        `json:"redundancies"`
	UnreachablePolicies []UnreachablePolicy `json:"unreachable_policies"`
	Summary             AnalysisSummary     `json:"summary"`
}

// AnalysisMetrics records the wall-clock cost of each phase.
// CombinationsAnalyzed counts the pairs actually examined so callers can
// detect truncation under the timeout budget.
type AnalysisMetrics struct {
	TotalDurationMs        int64 `json:"total_duration_ms"`
	ConflictDetectionMs    int64 `json:"conflict_detection_ms"`
	RedundancyAnalysisMs   int64 `json:"redundancy_analysis_ms"`
	ReachabilityAnalysisMs int64 `json:"reachability_analysis_ms"`
	CombinationsAnalyzed   int64 `json:"combinations_analyzed"`
}
