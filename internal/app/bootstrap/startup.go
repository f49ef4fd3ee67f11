// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/ckluximon/ubuntoo/internal/app/store/reconcile"
	"github.com/ckluximon/ubuntoo/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// Post and comment counters are maintained by best-effort increments at
// request time; the reconciliation pass here repairs any drift left by
// partial failures before the service starts taking traffic.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	if err := reconcile.Counters(ctx, deps.MongoDatabase, logger); err != nil {
		// Drift repair failing should not keep the service down; the pass
		// runs again on the next start.
		logger.Warn("counter reconciliation failed", zap.Error(err))
	}
	return nil
}
