package scrape

import (
	"context"
	"database/sql"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/metrics"
	"jobhunt-workbench/internal/rank"
)

// ProcessLeads filters, scores and stores leads, calling onNewJob once per
// inserted job.
func ProcessLeads(ctx context.Context, db *sql.DB, cfg config.Config, log *logging.Logger, leads []domain.JobLead, onNewJob func()) (added int) {
	scorer := rank.YAMLScorer{Cfg: cfg}

	for _, lead := range leads {
		keep, why := ShouldKeepJob(cfg, lead)
		if !keep {
			log.Debug("lead skipped", "source", lead.FirstSeenSource, "reason", why,
				"title", lead.Title, "location", lead.LocationRaw, "url", lead.URL)
			metrics.LeadsSkipped.WithLabelValues(why).Inc()
			continue
		}

		j := jobRowFromLead(lead, scorer)

		ok, err := InsertJobIfNew(ctx, db, j)
		if err != nil {
			log.Warn("insert failed", "source", lead.FirstSeenSource, "err", err,
				"title", lead.Title, "url", lead.URL, "source_id", j.SourceID)
			continue
		}
		if !ok {
			continue
		}

		added++
		metrics.JobsIngested.WithLabelValues(j.Source).Inc()
		if onNewJob != nil {
			onNewJob()
		}
	}

	return added
}
