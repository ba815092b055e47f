// util/metrics_service.go

package util

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rubentxu/hodei-artifacts-sub005/model"
)

// MetricsService is an in-process recorder for decision and analysis
// metrics. It satisfies the engine's metrics port and keeps per-operation
// analyzer metrics for inspection.
type MetricsService struct {
	mu sync.RWMutex

	decisions        map[model.Decision]int64
	decisionDuration map[model.Decision]time.Duration
	cacheHits        int64
	cacheMisses      int64
	errors           map[string]int64
	analysisRuns     map[string]model.AnalysisMetrics
}

func NewMetricsService() *MetricsService {
	return &MetricsService{
		decisions:        make(map[model.Decision]int64),
		decisionDuration: make(map[model.Decision]time.Duration),
		errors:           make(map[string]int64),
		analysisRuns:     make(map[string]model.AnalysisMetrics),
	}
}

func (m *MetricsService) RecordDecision(decision model.Decision, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.decisions[decision]++
	m.decisionDuration[decision] += duration
}

func (m *MetricsService) RecordCacheHit(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
}

func (m *MetricsService) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errors[kind]++
}

// RecordAnalysis stores the metrics of one analyzer run and returns the
// operation id it was recorded under.
func (m *MetricsService) RecordAnalysis(metrics model.AnalysisMetrics) string {
	operationID := uuid.New().String()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.analysisRuns[operationID] = metrics
	return operationID
}

// MetricsSnapshot is a point-in-time copy of every recorded counter.
type MetricsSnapshot struct {
	Decisions         map[model.Decision]int64
	AvgDecisionTimeMs map[model.Decision]float64
	CacheHits         int64
	CacheMisses       int64
	Errors            map[string]int64
	AnalysisRuns      int
}

func (m *MetricsService) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		Decisions:         make(map[model.Decision]int64, len(m.decisions)),
		AvgDecisionTimeMs: make(map[model.Decision]float64, len(m.decisions)),
		CacheHits:         m.cacheHits,
		CacheMisses:       m.cacheMisses,
		Errors:            make(map[string]int64, len(m.errors)),
		AnalysisRuns:      len(m.analysisRuns),
	}
	for decision, count := range m.decisions {
		snapshot.Decisions[decision] = count
		if count > 0 {
			total := m.decisionDuration[decision]
			snapshot.AvgDecisionTimeMs[decision] = float64(total.Milliseconds()) / float64(count)
		}
	}
	for kind, count := range m.errors {
		snapshot.Errors[kind] = count
	}
	return snapshot
}
