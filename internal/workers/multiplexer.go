package workers

import (
	"encoding/json"

	"rates-service/internal/models"

	"go.uber.org/zap"
)

// Multiplexer routes refresh commands to a channel per command type.
type Multiplexer struct {
	routes map[string]chan models.RefreshArgs
	logger *zap.Logger
}

func NewMultiplexer(logger *zap.Logger, buffer int, types ...string) *Multiplexer {
	routes := make(map[string]chan models.RefreshArgs, len(types))
	for _, t := range types {
		routes[t] = make(chan models.RefreshArgs, buffer)
	}
	return &Multiplexer{routes: routes, logger: logger}
}

func (m *Multiplexer) Channel(typ string) <-chan models.RefreshArgs {
	return m.routes[typ]
}

// Dispatch is the consumer callback. It never blocks: invalid messages,
// unknown types and commands for a full channel are dropped.
func (m *Multiplexer) Dispatch(key, value []byte) {
	var cmd models.RefreshCommand
	if err := json.Unmarshal(value, &cmd); err != nil {
		m.logger.Warn("invalid message in multiplexer", zap.ByteString("key", key), zap.Error(err))
		return
	}

	ch, ok := m.routes[cmd.Type]
	if !ok {
		m.logger.Warn("unknown message type", zap.String("type", cmd.Type))
		return
	}

	select {
	case ch <- cmd.Args:
	default:
		m.logger.Warn("channel full, dropping message", zap.String("type", cmd.Type), zap.ByteString("key", key))
	}
}
