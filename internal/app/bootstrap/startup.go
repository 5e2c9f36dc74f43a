// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/danahub/internal/app/assignments"
	"github.com/dalemusser/danahub/internal/app/coordinator"
	"github.com/dalemusser/danahub/internal/app/store/audit"
	assignmentstore "github.com/dalemusser/danahub/internal/app/store/assignments"
	"github.com/dalemusser/danahub/internal/app/system/auditlog"
	"github.com/dalemusser/danahub/internal/app/system/notify"
	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"github.com/dalemusser/danahub/internal/app/system/timeouts"
	"github.com/dalemusser/danahub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Startup builds the long-lived services and stores them in deps.Services.
//
// The caches are loaded once before the server starts serving. A failing
// external API is logged and left to the refresh worker; the caches load
// lazily on first read either way.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.Services == nil {
		return fmt.Errorf("startup: DBDeps.Services was not allocated")
	}

	timeouts.Configure(timeouts.Config{
		Read:     appCfg.ReadTimeout,
		Mutation: appCfg.MutationTimeout,
	})

	loc, err := time.LoadLocation(appCfg.TimeZone)
	if err != nil {
		return fmt.Errorf("load time zone: %w", err)
	}

	client, err := apiclient.NewClient(apiclient.Config{
		BaseURL: appCfg.APIBaseURL,
		Timeout: appCfg.APITimeout,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	repo, err := newRepository(ctx, appCfg, deps, client, logger)
	if err != nil {
		return err
	}

	var auditStore *audit.Store
	if deps.MongoDatabase != nil {
		auditStore = audit.New(deps.MongoDatabase)
	}
	auditLogger := auditlog.New(auditStore, logger, auditlog.Config{
		Session:  appCfg.AuditLogAuth,
		Mutation: appCfg.AuditLogAdmin,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	co := coordinator.New(coordinator.Config{
		API:         client,
		Assignments: assignments.NewService(repo, loc),
		Notifier:    notify.Dispatcher{Log: logger},
		Auditor:     auditLogger,
		Metrics:     coordinator.NewMetrics(reg),
		Logger:      logger,
	})

	refreshCtx, cancel := context.WithTimeout(ctx, timeouts.Refresh())
	if err := co.RefreshAll(refreshCtx); err != nil {
		logger.Warn("initial cache load failed; continuing", zap.Error(err))
	}
	cancel()

	deps.Services.Coordinator = co
	deps.Services.Audit = auditLogger
	deps.Services.Registry = reg

	if appCfg.SignInRateLimit > 0 {
		deps.Services.SignIn = ratelimit.New(appCfg.SignInRateLimit, time.Minute)
	}

	if appCfg.CacheRefreshInterval > 0 {
		w := workers.NewCacheRefresh(co, logger, appCfg.CacheRefreshInterval)
		w.Start()
		deps.Services.Refresher = w
	}

	logger.Info("danahub started",
		zap.String("assignment_store", appCfg.AssignmentStore),
		zap.String("api_base_url", appCfg.APIBaseURL),
		zap.String("time_zone", loc.String()),
	)
	return nil
}

// newRepository picks the assignment backend and seeds it when asked.
func newRepository(ctx context.Context, appCfg AppConfig, deps DBDeps, client *apiclient.Client, logger *zap.Logger) (assignments.Repository, error) {
	switch appCfg.AssignmentStore {
	case StoreMemory:
		initial := assignmentstore.SampleAssignments()
		if !appCfg.SeedSampleData {
			initial = nil
		}
		return assignmentstore.NewMemory(initial)

	case StoreMongo:
		if deps.MongoDatabase == nil {
			return nil, fmt.Errorf("assignment_store %q needs a database connection", StoreMongo)
		}
		store := assignmentstore.New(deps.MongoDatabase)
		if appCfg.SeedSampleData {
			n, err := store.Seed(ctx, assignmentstore.SampleAssignments())
			if err != nil {
				return nil, fmt.Errorf("seed assignments: %w", err)
			}
			if n > 0 {
				logger.Info("seeded sample assignments", zap.Int("count", n))
			}
		}
		return store, nil

	case StoreAPI:
		return apiclient.NewAssignments(client), nil
	}
	return nil, fmt.Errorf("unknown assignment_store %q", appCfg.AssignmentStore)
}
