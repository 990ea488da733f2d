// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	notificationstore "github.com/dialoguedock/dialoguedock/internal/app/store/notifications"
	userstore "github.com/dialoguedock/dialoguedock/internal/app/store/users"
	"github.com/dialoguedock/dialoguedock/internal/app/system/normalize"
	"github.com/dialoguedock/dialoguedock/internal/app/system/timeouts"
	"github.com/dialoguedock/dialoguedock/internal/app/system/workers"
	"github.com/dialoguedock/dialoguedock/internal/domain/models"
)

// pruneWorker is started here and stopped in Shutdown.
var pruneWorker *workers.NotificationPrune

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Ping:   appCfg.TimeoutPing,
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
	})

	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}

	if appCfg.NotificationRetention > 0 {
		pruneWorker = workers.NewNotificationPrune(
			notificationstore.New(deps.MongoDatabase),
			logger,
			appCfg.NotificationPruneInterval,
			appCfg.NotificationRetention,
		)
		pruneWorker.Start()
	}

	return nil
}

// ensureAdmin guarantees an admin account exists for the configured email.
// An existing user is promoted; a missing one is created already promoted.
// Without this a fresh deployment has no way to mint its first admin, since
// promotion itself is an admin-only route.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		id, created, err := users.CreateIfAbsent(ctx, models.User{
			Email: email,
			Role:  models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		if created {
			logger.Info("created admin user",
				zap.String("email", email), zap.String("id", id.Hex()))
			return nil
		}
		// Lost the race to a concurrent registration; fall through and
		// promote the record that won.
		u, err = users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
	}

	if u.IsAdmin() {
		return nil
	}
	if _, err := users.SetRoleByID(ctx, u.ID, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("promoted user to admin", zap.String("email", email))
	return nil
}
