package workers

import (
	"context"

	"rates-service/internal/models"

	"go.uber.org/zap"
)

type Worker interface {
	Start(ctx context.Context)
}

type GenericWorker struct {
	messages <-chan models.RefreshArgs
	handler  Handler
	logger   *zap.Logger
}

func NewGenericWorker(messages <-chan models.RefreshArgs, handler Handler, logger *zap.Logger) *GenericWorker {
	return &GenericWorker{
		messages: messages,
		handler:  handler,
		logger:   logger.With(zap.String("worker", handler.Type())),
	}
}

// Start handles commands until ctx is done. Failures are logged and the
// command is dropped; the next prewarm tick retries.
func (w *GenericWorker) Start(ctx context.Context) {
	w.logger.Info("worker started")

	for {
		select {
		case args := <-w.messages:
			if err := w.handler.Handle(ctx, args); err != nil {
				w.logger.Warn("refresh failed", zap.Any("args", args), zap.Error(err))
				continue
			}
			w.logger.Debug("refreshed", zap.Any("args", args))

		case <-ctx.Done():
			w.logger.Info("worker stopped")
			return
		}
	}
}
