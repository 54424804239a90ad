package scrape

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/sync/errgroup"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/metrics"
	"jobhunt-workbench/internal/ratelimit"
	"jobhunt-workbench/internal/scrape/greenhouse"
	"jobhunt-workbench/internal/scrape/lever"
	"jobhunt-workbench/internal/scrape/smartrecruiters"
	"jobhunt-workbench/internal/scrape/types"
)

// Fetchers builds the fetchers enabled in cfg, sharing one per-host limiter.
func Fetchers(cfg config.Config, log *logging.Logger) []types.Fetcher {
	limiter := HostLimits(cfg)

	var fetchers []types.Fetcher
	if cfg.Sources.Greenhouse.Enabled && len(cfg.Sources.Greenhouse.Companies) > 0 {
		fetchers = append(fetchers, greenhouse.New(greenhouse.Config{
			Companies: MapGreenhouseCompanies(cfg.Sources.Greenhouse.Companies),
		}, limiter, log))
	}
	if cfg.Sources.Lever.Enabled && len(cfg.Sources.Lever.Companies) > 0 {
		fetchers = append(fetchers, lever.New(lever.Config{
			Companies: MapLeverCompanies(cfg.Sources.Lever.Companies),
		}, limiter, log))
	}
	if cfg.Sources.SmartRecruiters.Enabled && len(cfg.Sources.SmartRecruiters.Companies) > 0 {
		fetchers = append(fetchers, smartrecruiters.New(smartrecruiters.Config{
			Companies: MapSmartRecruitersCompanies(cfg.Sources.SmartRecruiters.Companies),
		}, limiter, log))
	}
	return fetchers
}

// HostLimits builds the shared per-host limiter from cfg.RateLimits.
func HostLimits(cfg config.Config) *ratelimit.Hosts {
	d := cfg.RateLimits.Default
	h := ratelimit.New(ratelimit.Limit{PerSecond: d.PerSecond, Burst: d.Burst})
	for host, l := range cfg.RateLimits.Hosts {
		h.Set(host, ratelimit.Limit{PerSecond: l.PerSecond, Burst: l.Burst})
	}
	return h
}

// RunOnce runs every enabled fetcher and stores what they find.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, log *logging.Logger, onNewJob func()) (added int, err error) {
	return RunFetchers(ctx, db, cfg, log, Fetchers(cfg, log), onNewJob)
}

// RunFetchers runs fetchers in parallel. A failing fetcher is logged and
// skipped; its siblings keep going.
func RunFetchers(ctx context.Context, db *sql.DB, cfg config.Config, log *logging.Logger, fetchers []types.Fetcher, onNewJob func()) (added int, err error) {
	if log == nil {
		log = logging.Nop()
	}

	var g errgroup.Group
	results := make(chan types.ScrapeResult, len(fetchers))

	for _, f := range fetchers {
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
			defer cancel()

			start := time.Now()
			log.Info("fetcher running", "source", f.Name())
			res, err := f.Fetch(fctx)
			metrics.FetchDuration.WithLabelValues(f.Name()).Observe(time.Since(start).Seconds())
			if err != nil {
				log.Warn("fetcher failed", "source", f.Name(), "err", err)
				return nil
			}
			results <- res
			return nil
		})
	}

	_ = g.Wait()
	close(results)

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Minute)
	defer cancel()

	for res := range results {
		log.Info("fetcher done", "source", res.Source, "leads", len(res.Leads))
		if len(res.Leads) > 0 {
			added += ProcessLeads(insertCtx, db, cfg, log, res.Leads, onNewJob)
		}
	}

	return added, ctx.Err()
}
