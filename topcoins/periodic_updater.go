package topcoins

import (
	"context"
	"log"

	"github.com/cgweb/market-proxy/config"
	"github.com/cgweb/market-proxy/scheduler"
)

// PeriodicUpdater keeps the configured snapshot page warm so the UI datalist
// and the default top page are served from cache
type PeriodicUpdater struct {
	config    *config.TopCoinsConfig
	service   *Service
	scheduler *scheduler.Scheduler
}

// NewPeriodicUpdater creates an updater refreshing the first page of the
// configured currency
func NewPeriodicUpdater(cfg *config.TopCoinsConfig, service *Service) *PeriodicUpdater {
	updater := &PeriodicUpdater{
		config:  cfg,
		service: service,
	}

	updater.scheduler = scheduler.New(cfg.UpdateInterval, updater.update)
	return updater
}

// Start launches the refresh loop with an immediate first run
func (u *PeriodicUpdater) Start(ctx context.Context) {
	u.scheduler.Start(ctx, true)
}

// Stop terminates the refresh loop
func (u *PeriodicUpdater) Stop() {
	u.scheduler.Stop()
}

func (u *PeriodicUpdater) update(ctx context.Context) {
	params := TopParams{
		Currency: u.config.WarmCurrency,
		PerPage:  u.config.WarmPageSize,
		Page:     1,
	}.Normalize()

	// Bypass the cache so the entry is rewritten before it goes stale
	snapshot, err := u.service.refresh(ctx, params)
	if err != nil {
		log.Printf("TopCoins: warm refresh failed: %v", err)
		return
	}

	log.Printf("TopCoins: warm refresh cached %d records for %s", snapshot.Count, params.Currency)
}
