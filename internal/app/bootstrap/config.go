// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"

	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
)

// appConfigKeys defines the configuration keys for DialogueDock.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: DIALOGUEDOCK_MONGO_URI, DIALOGUEDOCK_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "DialogueDock", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Bearer tokens
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Token signing secret (must be strong in production)"},
	{Name: "token_ttl", Default: "1h", Desc: "Token lifetime (e.g., 1h, 30m)"},

	// Stripe
	{Name: "stripe_secret_key", Default: "", Desc: "Stripe API secret key (blank disables payments)"},
	{Name: "currency", Default: "usd", Desc: "Payment currency code"},

	// CORS
	{Name: "allowed_origins", Default: "*", Desc: "Comma-separated origins allowed to call the API"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promotes/creates on startup)"},

	// Notification pruning
	{Name: "notification_retention", Default: "720h", Desc: "How long notifications are kept (0 disables pruning)"},
	{Name: "notification_prune_interval", Default: "1h", Desc: "How often the notification prune sweep runs"},

	// Handler operation timeouts
	{Name: "timeout_ping", Default: "2s", Desc: "Health-check timeout"},
	{Name: "timeout_short", Default: "5s", Desc: "Single-document operation timeout"},
	{Name: "timeout_medium", Default: "10s", Desc: "List query and multi-step flow timeout"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, DIALOGUEDOCK_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "DIALOGUEDOCK", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret: appValues.String("token_secret"),
		TokenTTL:    appValues.Duration("token_ttl", time.Hour),

		StripeSecretKey: appValues.String("stripe_secret_key"),
		Currency:        appValues.String("currency"),

		AllowedOrigins: splitOrigins(appValues.String("allowed_origins")),

		AdminEmail: appValues.String("admin_email"),

		NotificationRetention:     appValues.Duration("notification_retention", 720*time.Hour),
		NotificationPruneInterval: appValues.Duration("notification_prune_interval", time.Hour),

		TimeoutPing:   appValues.Duration("timeout_ping", timeouts.DefaultPing),
		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
	}

	return coreCfg, appCfg, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// ValidateConfig performs app-specific config validation.
//
// DialogueDock validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and rejects an empty token
// secret since every protected route depends on it.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.TokenSecret == "" {
		return fmt.Errorf("token_secret must not be empty")
	}
	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive, got %s", appCfg.TokenTTL)
	}

	if appCfg.StripeSecretKey == "" {
		logger.Warn("stripe_secret_key is blank; payment routes will be disabled")
	}

	return nil
}
