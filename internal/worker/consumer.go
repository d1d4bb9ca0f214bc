package worker

import (
	"context"
	"net/http"

	"hotel/infras/kafka"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// HandleAudit records every message of topic in the audit log. Messages that
// can never be recorded are committed and skipped; other failures are retried.
func (w *Worker) HandleAudit(topic string) kafka.Handler {
	return func(ctx context.Context, message kafkaGo.Message) error {
		ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".HandleAudit")
		defer scope.End()

		err := w.audit.Record(ctx, topic, message.Value)
		if err == nil {
			return nil
		}

		if code := failure.GetCode(err); code >= http.StatusBadRequest && code < http.StatusInternalServerError {
			log.Warn().Err(err).Str("topic", topic).Int64("offset", message.Offset).Msg("skipping event that cannot be audited")

			return nil
		}

		scope.TraceError(err)

		return err
	}
}
