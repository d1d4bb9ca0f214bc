package worker

import (
	"context"
	"time"

	"hotel/shared/constant"
	"hotel/shared/identity"

	"github.com/rs/zerolog/log"
)

const defaultReconcileInterval = time.Hour

func (w *Worker) schedule(ctx context.Context) {
	interval := time.Duration(w.cfg.Booking.ReconcileIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = defaultReconcileInterval
	}

	log.Info().Dur("interval", interval).Msg("Starting room status reconcile scheduler.")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Reconcile(ctx)
		}
	}
}

// Reconcile runs the room status reconcile command once as the system actor.
func (w *Worker) Reconcile(ctx context.Context) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".Reconcile")
	defer scope.End()

	ctx = identity.WithIdentity(ctx, identity.Identity{UserID: constant.ContextSystem, Role: constant.RoleAdmin})

	summary, err := w.room.ReconcileAll(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile room statuses")

		return
	}

	log.Info().Int("checked", summary.Checked).Int("changed", len(summary.Changed)).Msg("Room statuses reconciled.")
}
