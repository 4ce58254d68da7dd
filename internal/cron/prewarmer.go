package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"rates-service/internal/models"

	"go.uber.org/zap"
)

// CommandPublisher sends one refresh command to the refresh topic.
type CommandPublisher interface {
	Publish(key, value []byte) error
}

// Prewarmer periodically asks the refresh workers to run the configured rate
// operations. A refresh goes through the cache, so a tick only refills
// entries that have already expired; live entries are left as they are.
type Prewarmer struct {
	commands []models.RefreshCommand
	producer CommandPublisher
	interval time.Duration
	logger   *zap.Logger
}

func NewPrewarmer(
	commands []models.RefreshCommand,
	producer CommandPublisher,
	interval time.Duration,
	logger *zap.Logger,
) *Prewarmer {
	return &Prewarmer{
		commands: commands,
		producer: producer,
		interval: interval,
		logger:   logger,
	}
}

// Start publishes once right away and then on every tick until ctx is done.
func (p *Prewarmer) Start(ctx context.Context) {
	p.logger.Info("prewarmer started", zap.Duration("interval", p.interval), zap.Int("commands", len(p.commands)))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.run(ctx)
	for {
		select {
		case <-ticker.C:
			p.run(ctx)

		case <-ctx.Done():
			p.logger.Info("prewarmer stopped")
			return
		}
	}
}

func (p *Prewarmer) run(ctx context.Context) {
	if err := p.RunOnce(ctx); err != nil {
		p.logger.Warn("prewarm iteration failed", zap.Error(err))
	}
}

// RunOnce publishes every command. A failed publish is logged and the rest
// still go out; the returned error reports how many failed.
func (p *Prewarmer) RunOnce(ctx context.Context) error {
	failed := 0
	for _, cmd := range p.commands {
		if err := ctx.Err(); err != nil {
			return err
		}

		value, err := json.Marshal(cmd)
		if err != nil {
			p.logger.Warn("marshal refresh command", zap.String("type", cmd.Type), zap.Error(err))
			failed++
			continue
		}

		key := generateKey(cmd)
		if err := p.producer.Publish(key, value); err != nil {
			p.logger.Warn("kafka publish failed", zap.ByteString("key", key), zap.Error(err))
			failed++
			continue
		}
		p.logger.Debug("published", zap.ByteString("key", key))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d refresh commands not published", failed, len(p.commands))
	}
	return nil
}

func generateKey(cmd models.RefreshCommand) []byte {
	keys := make([]string, 0, len(cmd.Args))
	for k := range cmd.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("refresh:")
	b.WriteString(cmd.Type)
	for _, k := range keys {
		b.WriteString(":")
		b.WriteString(cmd.Args[k])
	}
	return []byte(b.String())
}

var knownTypes = []string{
	models.RefreshBTCCoingecko,
	models.RefreshNimiqCryptoComp,
	models.RefreshNimiqPoloniex,
	models.RefreshNimiqBTC,
	models.RefreshBTCLocalBitcoins,
}

// positional names the argument a bare word stands for, per command type.
var positional = map[string]string{
	models.RefreshBTCCoingecko:     "currencies",
	models.RefreshBTCLocalBitcoins: "coin",
}

// ParseCommand reads a command such as "btc_coingecko currencies=USD,EUR" or
// "btc_localbitcoins VES".
func ParseCommand(text string) (models.RefreshCommand, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return models.RefreshCommand{}, fmt.Errorf("empty command")
	}

	cmd := models.RefreshCommand{Type: strings.ToLower(fields[0])}
	if !slices.Contains(knownTypes, cmd.Type) {
		return models.RefreshCommand{}, fmt.Errorf("unknown command type %q", fields[0])
	}

	for _, f := range fields[1:] {
		name, value, ok := strings.Cut(f, "=")
		if !ok {
			name, value = positional[cmd.Type], f
			if name == "" {
				return models.RefreshCommand{}, fmt.Errorf("%s takes no arguments, got %q", cmd.Type, f)
			}
		}
		if cmd.Args == nil {
			cmd.Args = models.RefreshArgs{}
		}
		if prev, ok := cmd.Args[name]; ok && name == "currencies" {
			value = prev + "," + value
		}
		cmd.Args[name] = value
	}
	return cmd, nil
}

// ParseCommands parses every non-blank entry and stops at the first invalid one.
func ParseCommands(texts []string) ([]models.RefreshCommand, error) {
	cmds := make([]models.RefreshCommand, 0, len(texts))
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			continue
		}
		cmd, err := ParseCommand(text)
		if err != nil {
			return nil, fmt.Errorf("parse prewarm command %q: %w", text, err)
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}
