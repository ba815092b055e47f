// pdp/pdp.go
package pdp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Rubentxu/hodei-artifacts-sub005/audit"
	"github.com/Rubentxu/hodei-artifacts-sub005/config"
	"github.com/Rubentxu/hodei-artifacts-sub005/db"
	logger "github.com/Rubentxu/hodei-artifacts-sub005/logging"
	"github.com/Rubentxu/hodei-artifacts-sub005/model"
	pdp_dao "github.com/Rubentxu/hodei-artifacts-sub005/pdp/dao"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/engine"
	"github.com/Rubentxu/hodei-artifacts-sub005/pdp/evaluator"
	"github.com/Rubentxu/hodei-artifacts-sub005/util"
)

// PDP bundles the fully wired decision engine with its tracer and analyzer.
type PDP struct {
	Engine   *engine.AuthorizationEngine
	Tracer   *engine.DecisionTracer
	Analyzer *engine.CorpusAnalyzer
	Metrics  *util.MetricsService
}

// New wires the decision engine against the shared Neo4j driver, the Redis
// decision cache and the Elasticsearch audit trail, honoring the authz.*
// configuration keys. db.InitNeo4j must have run first; db.InitRedis and the
// audit repository are optional and degrade to an in-memory cache and
// process-log-only decisions.
func New() (*PDP, error) {
	driver := db.Neo4jDriver
	if driver == nil {
		return nil, fmt.Errorf("neo4j driver is not initialized")
	}

	primitive := evaluator.NewCedarEvaluator()
	identityPolicies := pdp_dao.NewPolicyRetrievalDAO(driver)
	organizationDAO := pdp_dao.NewOrganizationDAO(driver)
	boundaries := engine.NewScopeResolver(organizationDAO, organizationDAO)
	entities := pdp_dao.NewEntityDAO(driver)

	var cache engine.AuthorizationCache
	if db.RedisClient != nil {
		cache = util.NewCacheService()
	} else {
		logger.Info("Redis is not initialized, using in-memory decision cache")
		cache = engine.NewMemoryDecisionCache(0)
	}

	var auditService audit.Service
	if esURL := config.GetString("elasticsearch.url"); esURL != "" {
		repo, err := audit.NewElasticsearchRepository(esURL)
		if err != nil {
			logger.Warn("Audit repository unavailable, decisions will only be logged", zap.Error(err))
		} else {
			auditService = audit.NewService(repo)
		}
	}
	decisionLog := util.NewDecisionLogService(auditService)
	metrics := util.NewMetricsService()

	cfg := engine.Config{
		CacheEnabled: config.GetBool("authz.decisionCacheEnabled"),
		CacheTTL:     config.GetDuration("authz.decisionCacheTTL"),
	}

	return &PDP{
		Engine:   engine.NewAuthorizationEngine(primitive, identityPolicies, boundaries, entities, cache, decisionLog, metrics, cfg),
		Tracer:   engine.NewDecisionTracer(primitive, entities, config.GetInt("authz.tracer.maxConcurrent")),
		Analyzer: engine.NewCorpusAnalyzer(),
		Metrics:  metrics,
	}, nil
}

// AnalysisOptionsFromConfig returns analyzer options seeded from the
// authz.analysis.* configuration keys, with every phase enabled.
func AnalysisOptionsFromConfig() model.ConflictAnalysisOptions {
	options := model.DefaultAnalysisOptions()
	options.TimeoutMs = int64(config.GetInt("authz.analysis.timeoutMs"))
	options.RedundancyThreshold = config.GetFloat64("authz.analysis.redundancyThreshold")
	return options
}
