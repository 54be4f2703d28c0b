package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jloaiza/melisearch/internal/badges"
	"github.com/jloaiza/melisearch/internal/logger"
)

// BadgeReloader handles periodic reloading of the badge rules file so
// rule edits take effect without a restart.
type BadgeReloader struct {
	loader        *badges.Loader
	rules         *badges.RuleSet
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewBadgeReloader creates a badge rules reloader.
func NewBadgeReloader(
	rulesFile string,
	rules *badges.RuleSet,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *BadgeReloader {
	return &BadgeReloader{
		loader:        badges.NewLoader(rulesFile),
		rules:         rules,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the rules once, then begins the periodic reload loop.
func (br *BadgeReloader) Start(ctx context.Context) error {
	if err := br.Reload(ctx); err != nil {
		return fmt.Errorf("initial badge rules load failed: %w", err)
	}

	ticker := time.NewTicker(br.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload badge rules",
						logger.Error(err))
				}
			case <-br.manualTrigger:
				br.logger.Info("manual badge rules reload triggered")
				if err := br.Reload(ctx); err != nil {
					br.logger.Error("failed to reload badge rules",
						logger.Error(err))
				}
			case <-br.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader.
func (br *BadgeReloader) Stop() {
	close(br.stopCh)
}

// Reload reads the rules file and swaps the active rule set.
func (br *BadgeReloader) Reload(_ context.Context) error {
	rules, err := br.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load badge rules: %w", err)
	}

	br.rules.Update(rules)
	br.logger.Info("badge rules reloaded",
		logger.Int("count", len(rules)))

	return nil
}
