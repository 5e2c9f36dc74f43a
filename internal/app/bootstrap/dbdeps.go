// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/danahub/internal/app/coordinator"
	"github.com/dalemusser/danahub/internal/app/system/auditlog"
	"github.com/dalemusser/danahub/internal/app/system/ratelimit"
	"github.com/dalemusser/danahub/internal/app/system/workers"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
//
// The Mongo fields are nil unless the mongo assignment store is selected.
// Services is allocated by ConnectDB and filled in by Startup, so the
// hooks that run later (BuildHandler, Shutdown) see what Startup built.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	Services *Services
}

// Services are the long-lived objects built once at startup.
type Services struct {
	Coordinator *coordinator.Coordinator
	Audit       *auditlog.Logger
	Registry    *prometheus.Registry
	Refresher   *workers.CacheRefresh
	SignIn      *ratelimit.Limiter // nil when sign-in limiting is off
}
