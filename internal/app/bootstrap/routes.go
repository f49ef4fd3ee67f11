// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	authapifeature "github.com/ckluximon/ubuntoo/internal/app/features/authapi"
	badgesfeature "github.com/ckluximon/ubuntoo/internal/app/features/badges"
	challengesfeature "github.com/ckluximon/ubuntoo/internal/app/features/challenges"
	healthfeature "github.com/ckluximon/ubuntoo/internal/app/features/health"
	postsfeature "github.com/ckluximon/ubuntoo/internal/app/features/posts"
	usersfeature "github.com/ckluximon/ubuntoo/internal/app/features/users"
	userstore "github.com/ckluximon/ubuntoo/internal/app/store/users"
	"github.com/ckluximon/ubuntoo/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// Registration, login, and the health probe are open; every other route goes
// through the bearer-token middleware, which resolves the token and loads a
// fresh principal from the user directory on each request.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenIssuer(appCfg.TokenKey, appCfg.TokenTTL, logger)
	if err != nil {
		logger.Error("token issuer init failed", zap.Error(err))
		return nil, err
	}

	// Fresh user data on every request so profile updates and removed
	// accounts take effect immediately.
	fetcher := userstore.NewFetcher(deps.MongoDatabase)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication (open routes)
	authHandler := authapifeature.NewHandler(deps.MongoDatabase, tokens, appCfg.BcryptCost, logger)
	r.Mount("/auth", authapifeature.Routes(authHandler))

	// Everything else requires a bearer token.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireBearer(tokens, fetcher, logger))

		usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger)
		r.Mount("/users", usersfeature.Routes(usersHandler))

		postsHandler := postsfeature.NewHandler(deps.MongoDatabase, logger)
		r.Mount("/posts", postsfeature.Routes(postsHandler))

		badgesHandler := badgesfeature.NewHandler(deps.MongoDatabase, logger)
		r.Mount("/badges", badgesfeature.Routes(badgesHandler))

		challengesHandler := challengesfeature.NewHandler(deps.MongoDatabase, logger)
		r.Mount("/challenges", challengesfeature.Routes(challengesHandler))
	})

	return r, nil
}
