// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/danahub/internal/app/apiclient"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// Assignment store backends.
const (
	StoreMemory = "memory"
	StoreMongo  = "mongo"
	StoreAPI    = "api"
)

// appConfigKeys defines the configuration keys for danahub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: api_base_url, assignment_store, etc.
//   - Environment variables: DANAHUB_API_BASE_URL, DANAHUB_ASSIGNMENT_STORE, etc.
//   - Command-line flags: --api_base_url, --assignment_store, etc.
var appConfigKeys = []config.AppKey{
	{Name: "api_base_url", Default: "http://localhost:8080", Desc: "Base URL of the temple API"},
	{Name: "api_timeout", Default: "10s", Desc: "HTTP timeout for temple API calls"},

	{Name: "assignment_store", Default: StoreMemory, Desc: "Assignment store: 'memory', 'mongo' or 'api'"},
	{Name: "seed_sample_data", Default: true, Desc: "Load sample assignments into an empty store"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "danahub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "danahub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "sign_in_rate_limit", Default: 10, Desc: "Sign-in attempts allowed per IP per minute (0 disables)"},

	{Name: "time_zone", Default: "Asia/Colombo", Desc: "Time zone that decides today's date"},
	{Name: "cache_refresh_interval", Default: "5m", Desc: "Background cache refresh interval (0 disables)"},

	{Name: "read_timeout", Default: "5s", Desc: "Timeout for reads against the API or store"},
	{Name: "mutation_timeout", Default: "10s", Desc: "Timeout for a mutation including its refetch"},

	{Name: "audit_log_auth", Default: "all", Desc: "Sign-in event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Change event logging: 'all' (db+log), 'db', 'log', or 'off'"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, DANAHUB_* for the app) and
// command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DANAHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		APIBaseURL: appValues.String("api_base_url"),
		APITimeout: appValues.Duration("api_timeout", 10*time.Second),

		AssignmentStore: strings.ToLower(strings.TrimSpace(appValues.String("assignment_store"))),
		SeedSampleData:  appValues.Bool("seed_sample_data"),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		SignInRateLimit: appValues.Int("sign_in_rate_limit"),

		TimeZone:             appValues.String("time_zone"),
		CacheRefreshInterval: appValues.Duration("cache_refresh_interval", 5*time.Minute),

		ReadTimeout:     appValues.Duration("read_timeout", 0),
		MutationTimeout: appValues.Duration("mutation_timeout", 0),

		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// The API base URL and time zone are always needed; the MongoDB URI only
// when the mongo store is selected.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	return validateAppConfig(appCfg, logger)
}

func validateAppConfig(appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.AssignmentStore {
	case StoreMemory, StoreAPI:
	case StoreMongo:
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			return fmt.Errorf("mongo_database is required when assignment_store is %q", StoreMongo)
		}
	default:
		return fmt.Errorf("assignment_store must be %q, %q or %q, got %q", StoreMemory, StoreMongo, StoreAPI, appCfg.AssignmentStore)
	}

	if _, err := apiclient.NewClient(apiclient.Config{BaseURL: appCfg.APIBaseURL}); err != nil {
		return fmt.Errorf("invalid api_base_url: %w", err)
	}
	if _, err := time.LoadLocation(appCfg.TimeZone); err != nil {
		return fmt.Errorf("invalid time_zone: %w", err)
	}
	if appCfg.SignInRateLimit < 0 {
		return fmt.Errorf("sign_in_rate_limit must not be negative")
	}
	if appCfg.CacheRefreshInterval < 0 {
		return fmt.Errorf("cache_refresh_interval must not be negative")
	}

	for key, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_admin": appCfg.AuditLogAdmin} {
		switch v {
		case "", "all", "db", "log", "off":
		default:
			return fmt.Errorf("%s must be 'all', 'db', 'log' or 'off', got %q", key, v)
		}
	}
	return nil
}
