package config

import (
	"fmt"
	"strings"

	"jobhunt-workbench/internal/domain"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a copy with trimmed, de-duplicated lists and
// the problems found in it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	trimCompanies := func(cs []Company) []Company {
		seen := map[string]bool{}
		var ys []Company
		for _, c := range cs {
			c.Slug = strings.ToLower(strings.TrimSpace(c.Slug))
			c.Name = strings.TrimSpace(c.Name)
			if c.Slug == "" || seen[c.Slug] {
				continue
			}
			seen[c.Slug] = true
			ys = append(ys, c)
		}
		return ys
	}

	out.Filters.LocationsAllow = trimList(out.Filters.LocationsAllow)
	out.Filters.LocationsBlock = trimList(out.Filters.LocationsBlock)
	out.Sources.Greenhouse.Companies = trimCompanies(out.Sources.Greenhouse.Companies)
	out.Sources.Lever.Companies = trimCompanies(out.Sources.Lever.Companies)
	out.Sources.SmartRecruiters.Companies = trimCompanies(out.Sources.SmartRecruiters.Companies)
	out.App.LogLevel = strings.ToLower(strings.TrimSpace(out.App.LogLevel))
	out.Workbench.EngineURL = strings.TrimRight(strings.TrimSpace(out.Workbench.EngineURL), "/")

	if len(out.Scoring.WorkTypes) > 0 {
		wts := make(map[string]int, len(out.Scoring.WorkTypes))
		for k, w := range out.Scoring.WorkTypes {
			if n := domain.NormalizeWorkType(k); n != "" {
				k = n
			}
			wts[k] += w
		}
		out.Scoring.WorkTypes = wts
	}

	if len(out.RateLimits.Hosts) > 0 {
		hosts := make(map[string]RateLimit, len(out.RateLimits.Hosts))
		for h, l := range out.RateLimits.Hosts {
			h = strings.ToLower(strings.TrimSpace(h))
			if h == "" {
				continue
			}
			hosts[h] = l
		}
		out.RateLimits.Hosts = hosts
	}

	if err := Validate(out); err != nil {
		res.addErr("%s", err.Error())
	}

	// polling sanity
	if out.Polling.IngestSeconds <= 0 {
		res.addErr("polling.ingest_seconds must be > 0")
	} else if out.Polling.IngestSeconds < 60 {
		res.addWarn("polling.ingest_seconds is very low (%d) and may cause rate limits.", out.Polling.IngestSeconds)
	}

	switch out.App.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		res.addWarn("app.log_level %q is unknown; info is used.", out.App.LogLevel)
	}

	if !out.AnySourceEnabled() {
		res.addWarn("No sources enabled: ingest will only ever see seeded jobs.")
	}
	if out.Sources.Greenhouse.Enabled && len(out.Sources.Greenhouse.Companies) == 0 {
		res.addWarn("sources.greenhouse is enabled but has no companies.")
	}
	if out.Sources.Lever.Enabled && len(out.Sources.Lever.Companies) == 0 {
		res.addWarn("sources.lever is enabled but has no companies.")
	}
	if out.Sources.SmartRecruiters.Enabled && len(out.Sources.SmartRecruiters.Companies) == 0 {
		res.addWarn("sources.smartrecruiters is enabled but has no companies.")
	}

	checkRate := func(name string, l RateLimit) {
		if l.PerSecond < 0 {
			res.addErr("%s.per_second must be >= 0", name)
		}
		if l.Burst < 0 {
			res.addErr("%s.burst must be >= 0", name)
		}
	}
	checkRate("rate_limits.default", out.RateLimits.Default)
	for h, l := range out.RateLimits.Hosts {
		checkRate("rate_limits.hosts."+h, l)
	}
	if out.RateLimits.Default.PerSecond == 0 {
		res.addWarn("rate_limits.default.per_second is 0; ATS hosts are fetched without pacing.")
	}

	if out.Workbench.EngineURL == "" {
		res.addWarn("workbench.engine_url is empty; the workbench falls back to the local engine port.")
	}

	// filters sanity
	if !out.Filters.RemoteOK && len(out.Filters.LocationsAllow) == 0 {
		res.addWarn("remote_ok is false and locations_allow is empty; you may filter out almost everything.")
	}
	if len(out.Filters.LocationsAllow) > 50 {
		res.addWarn("locations_allow has %d entries; consider tightening it for faster filtering.", len(out.Filters.LocationsAllow))
	}

	blockSet := map[string]bool{}
	for _, b := range out.Filters.LocationsBlock {
		blockSet[strings.ToLower(b)] = true
	}
	for _, a := range out.Filters.LocationsAllow {
		if blockSet[strings.ToLower(a)] {
			res.addWarn("location appears in both allow and block: %q", a)
		}
	}

	return out, res
}
