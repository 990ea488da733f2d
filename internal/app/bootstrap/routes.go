// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	commentsfeature "github.com/dialoguedock/dialoguedock/internal/app/features/comments"
	healthfeature "github.com/dialoguedock/dialoguedock/internal/app/features/health"
	messagesfeature "github.com/dialoguedock/dialoguedock/internal/app/features/messages"
	notificationsfeature "github.com/dialoguedock/dialoguedock/internal/app/features/notifications"
	paymentsfeature "github.com/dialoguedock/dialoguedock/internal/app/features/payments"
	tokenfeature "github.com/dialoguedock/dialoguedock/internal/app/features/token"
	usersfeature "github.com/dialoguedock/dialoguedock/internal/app/features/users"
	commentstore "github.com/dialoguedock/dialoguedock/internal/app/store/comments"
	messagestore "github.com/dialoguedock/dialoguedock/internal/app/store/messages"
	notificationstore "github.com/dialoguedock/dialoguedock/internal/app/store/notifications"
	userstore "github.com/dialoguedock/dialoguedock/internal/app/store/users"
	"github.com/dialoguedock/dialoguedock/internal/app/system/auth"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The API is a browser-facing JSON
// surface, so CORS runs before everything else, followed by the usual chi
// request middleware.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	users := userstore.New(deps.MongoDatabase)
	messages := messagestore.New(deps.MongoDatabase)
	comments := commentstore.New(deps.MongoDatabase)
	notifications := notificationstore.New(deps.MongoDatabase)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	// Liveness and health
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/", healthfeature.Routes(healthHandler))

	// Token issuing
	tokenHandler := tokenfeature.NewHandler(tokens, logger)
	r.Mount("/jwt", tokenfeature.Routes(tokenHandler))

	// Accounts
	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/users", usersfeature.Routes(usersHandler, tokens, logger))

	// Discussion board
	messagesHandler := messagesfeature.NewHandler(messages, users, logger)
	r.Mount("/allMsg", messagesfeature.Routes(messagesHandler, tokens))

	// Comments
	commentsHandler := commentsfeature.NewHandler(comments, logger)
	r.Mount("/comments", commentsfeature.Routes(commentsHandler))

	// Notifications
	notificationsHandler := notificationsfeature.NewHandler(notifications, logger)
	r.Mount("/notification", notificationsfeature.Routes(notificationsHandler))

	// Payments, only when a Stripe key is configured
	if appCfg.StripeSecretKey != "" {
		gateway, err := paymentsfeature.NewStripeGateway(appCfg.StripeSecretKey)
		if err != nil {
			logger.Error("stripe gateway init failed", zap.Error(err))
			return nil, err
		}
		paymentsHandler := paymentsfeature.NewHandler(gateway, appCfg.Currency, logger)
		r.Mount("/create-payment-intent", paymentsfeature.Routes(paymentsHandler))
	}

	return r, nil
}
