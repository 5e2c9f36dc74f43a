// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"

	assignmentsfeature "github.com/dalemusser/danahub/internal/app/features/assignments"
	"github.com/dalemusser/danahub/internal/app/features/danas"
	uierrors "github.com/dalemusser/danahub/internal/app/features/errors"
	"github.com/dalemusser/danahub/internal/app/features/families"
	"github.com/dalemusser/danahub/internal/app/features/health"
	"github.com/dalemusser/danahub/internal/app/features/session"
	"github.com/dalemusser/danahub/internal/app/features/temples"
	"github.com/dalemusser/danahub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler.
//
// Every feature answers JSON; form posts from a browser get a flash and a
// 303 redirect instead.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	if deps.Services == nil || deps.Services.Coordinator == nil {
		return nil, fmt.Errorf("build handler: Startup has not run")
	}
	svc := deps.Services

	sessionMgr, err := auth.NewSessionManager(
		appCfg.SessionKey,
		appCfg.SessionName,
		appCfg.SessionDomain,
		appCfg.SessionMaxAge,
		coreCfg.Env == "prod",
		logger,
	)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	errLog := uierrors.NewErrorLogger(logger)
	co := svc.Coordinator

	r := chi.NewRouter()
	r.Use(sessionMgr.LoadSessionUser)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.CurrentUser(r); ok {
			http.Redirect(w, r, "/assignments", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/session", http.StatusSeeOther)
	})

	r.Mount("/health", health.Routes(health.NewHandler(deps.MongoClient, appCfg.AssignmentStore, logger)))
	if svc.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(svc.Registry, promhttp.HandlerOpts{}))
	}

	errH := uierrors.NewHandler()
	r.Get("/forbidden", errH.Forbidden)
	r.Get("/unauthorized", errH.Unauthorized)

	sessionHandler := session.NewHandler(sessionMgr, svc.Audit, co.Today, errLog, logger)
	sessionHandler.Limiter = svc.SignIn
	r.Mount("/session", session.Routes(sessionHandler))
	r.Mount("/assignments", assignmentsfeature.Routes(assignmentsfeature.NewHandler(co, sessionMgr, errLog, logger), sessionMgr))
	r.Mount("/danas", danas.Routes(danas.NewHandler(co, sessionMgr, errLog, logger), sessionMgr))
	r.Mount("/families", families.Routes(families.NewHandler(co, sessionMgr, errLog, logger), sessionMgr))
	r.Mount("/temples", temples.Routes(temples.NewHandler(co, errLog, logger), sessionMgr))

	return r, nil
}
