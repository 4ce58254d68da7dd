package workers

import (
	"context"

	"go.uber.org/zap"
)

const channelBuffer = 100

// Subscriber delivers raw messages to a callback until ctx is done.
type Subscriber interface {
	Start(ctx context.Context, handler func(key, value []byte))
}

type WorkerBundle struct {
	Multiplexer *Multiplexer
	Workers     []*GenericWorker
}

// StartAllWorkers starts one worker per handler and subscribes the
// multiplexer that feeds them.
func StartAllWorkers(ctx context.Context, consumer Subscriber, handlers []Handler, logger *zap.Logger) *WorkerBundle {
	types := make([]string, 0, len(handlers))
	for _, h := range handlers {
		types = append(types, h.Type())
	}
	mux := NewMultiplexer(logger, channelBuffer, types...)

	bundle := &WorkerBundle{Multiplexer: mux}
	for _, h := range handlers {
		w := NewGenericWorker(mux.Channel(h.Type()), h, logger)
		bundle.Workers = append(bundle.Workers, w)
		go w.Start(ctx)
	}

	consumer.Start(ctx, mux.Dispatch)
	return bundle
}
