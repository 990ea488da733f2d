// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings like HTTP ports, TLS, and log level; AppConfig
// is everything specific to DialogueDock.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Bearer-token configuration
	TokenSecret string        // HS256 signing secret (must be strong in production)
	TokenTTL    time.Duration // Token lifetime (default: 1h)

	// Stripe configuration
	StripeSecretKey string // Stripe API secret key; payments are disabled when blank
	Currency        string // Payment currency code (default: usd)

	// CORS configuration
	AllowedOrigins []string // Origins allowed to call the API

	// Admin bootstrap
	AdminEmail string // Email promoted/created as admin on startup (blank disables)

	// Notification pruning
	NotificationRetention     time.Duration // How long notifications are kept (0 disables pruning)
	NotificationPruneInterval time.Duration // How often the prune sweep runs

	// Handler operation timeouts
	TimeoutPing   time.Duration // Health-check budget
	TimeoutShort  time.Duration // Single-document operation budget
	TimeoutMedium time.Duration // List query and multi-step flow budget
}
