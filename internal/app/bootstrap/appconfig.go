// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles the
// framework-level settings (ports, TLS, logging level, CORS, body limits);
// everything specific to danahub lives here.
type AppConfig struct {
	// External temple API (danas, families, temples; assignments when
	// AssignmentStore is "api").
	APIBaseURL string
	APITimeout time.Duration

	// Assignment persistence: "memory", "mongo" or "api".
	AssignmentStore string
	SeedSampleData  bool // load the three sample assignments into an empty store

	// MongoDB connection configuration (only used if AssignmentStore is "mongo")
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: danahub-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// SignInRateLimit caps sign-in attempts per client IP per minute; 0 disables.
	SignInRateLimit int

	// TimeZone decides which calendar day "today" is when confirming.
	TimeZone string

	// CacheRefreshInterval reloads every cache in the background; 0 disables.
	CacheRefreshInterval time.Duration

	// Operation timeouts (0 keeps the defaults in system/timeouts)
	ReadTimeout     time.Duration
	MutationTimeout time.Duration

	// Audit logging: "all" (db+log), "db", "log" or "off"
	AuditLogAuth  string // sign-in / sign-out
	AuditLogAdmin string // dana, family and assignment changes
}
