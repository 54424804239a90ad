package scrape

import (
	"strings"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
)

func ShouldKeepJob(cfg config.Config, j domain.JobLead) (keep bool, reason string) {
	if strings.TrimSpace(j.Title) == "" {
		return false, "no_title"
	}
	if !passesLocation(cfg, j) {
		return false, "location"
	}
	if !matchesAnyRule(cfg, j) {
		return false, "no_keyword_match"
	}

	return true, ""
}

func passesLocation(cfg config.Config, j domain.JobLead) bool {
	text := strings.ToLower(strings.TrimSpace(j.LocationRaw))
	title := strings.ToLower(strings.TrimSpace(j.Title))
	desc := strings.ToLower(strings.TrimSpace(j.Description))

	isRemote := j.WorkType == domain.WorkTypeRemote ||
		strings.Contains(text, "remote") || strings.Contains(title, "remote") || strings.Contains(desc, "remote")

	// blocklist wins
	for _, b := range cfg.Filters.LocationsBlock {
		b = strings.ToLower(strings.TrimSpace(b))
		if b == "" {
			continue
		}
		if strings.Contains(text, b) || strings.Contains(title, b) || strings.Contains(desc, b) {
			return false
		}
	}

	if isRemote {
		return cfg.Filters.RemoteOK
	}

	// empty allowlist allows everything not blocked
	allow := cfg.Filters.LocationsAllow
	if len(allow) == 0 {
		return true
	}

	for _, a := range allow {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if strings.Contains(text, a) || strings.Contains(title, a) || strings.Contains(desc, a) {
			return true
		}
	}
	return false
}

func matchesAnyRule(cfg config.Config, j domain.JobLead) bool {
	text := strings.ToLower(j.Title + " " + j.Description)

	hit := func(rules []config.Rule) bool {
		for _, r := range rules {
			for _, needle := range r.Any {
				n := strings.ToLower(strings.TrimSpace(needle))
				if n == "" {
					continue
				}
				if strings.Contains(text, n) {
					return true
				}
			}
		}
		return false
	}

	return hit(cfg.Scoring.TitleRules) || hit(cfg.Scoring.KeywordRules)
}
