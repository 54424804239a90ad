package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"jobhunt-workbench/internal/domain"
)

// Validate reports hard errors only; see NormalizeAndValidate for warnings.
func Validate(cfg Config) error {
	var errs []string

	if cfg.App.Port <= 0 || cfg.App.Port > 65535 {
		errs = append(errs, "app.port must be 1..65535")
	}
	if cfg.Engine.SearchLimit < 0 {
		errs = append(errs, "engine.search_limit must be >= 0")
	}
	if cfg.Workbench.RequestTimeoutSeconds < 0 {
		errs = append(errs, "workbench.request_timeout_seconds must be >= 0")
	}
	if cfg.Workbench.RequestsPerSecond < 0 {
		errs = append(errs, "workbench.requests_per_second must be >= 0")
	}

	checkRules := func(name string, rules []Rule) {
		for i, r := range rules {
			if r.Tag == "" {
				errs = append(errs, fmt.Sprintf("%s[%d].tag is required", name, i))
			}
			if len(r.Any) == 0 {
				errs = append(errs, fmt.Sprintf("%s[%d].any must have at least 1 term", name, i))
			}
			for j, term := range r.Any {
				if term == "" {
					errs = append(errs, fmt.Sprintf("%s[%d].any[%d] cannot be empty", name, i, j))
				}
			}
		}
	}

	checkPenalties := func(pens []Penalty) {
		for i, p := range pens {
			if p.Reason == "" {
				errs = append(errs, fmt.Sprintf("scoring.penalties[%d].reason is required", i))
			}
			if len(p.Any) == 0 {
				errs = append(errs, fmt.Sprintf("scoring.penalties[%d].any must have at least 1 term", i))
			}
			for j, term := range p.Any {
				if term == "" {
					errs = append(errs, fmt.Sprintf("scoring.penalties[%d].any[%d] cannot be empty", i, j))
				}
			}
		}
	}

	checkCompanies := func(name string, cs []Company) {
		for i, c := range cs {
			if strings.TrimSpace(c.Slug) == "" {
				errs = append(errs, fmt.Sprintf("sources.%s.companies[%d].slug is required", name, i))
			}
		}
	}

	checkRules("scoring.title_rules", cfg.Scoring.TitleRules)
	checkRules("scoring.keyword_rules", cfg.Scoring.KeywordRules)
	checkPenalties(cfg.Scoring.Penalties)
	for wt := range cfg.Scoring.WorkTypes {
		if !slices.Contains(domain.WorkTypes, wt) {
			errs = append(errs, fmt.Sprintf("scoring.work_types: unknown work type %q", wt))
		}
	}
	checkCompanies("greenhouse", cfg.Sources.Greenhouse.Companies)
	checkCompanies("lever", cfg.Sources.Lever.Companies)
	checkCompanies("smartrecruiters", cfg.Sources.SmartRecruiters.Companies)

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// SaveAtomic validates cfg, writes it next to path and swaps it in, keeping
// the previous file as path.bak.
func SaveAtomic(path string, cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	bak := path + ".bak"

	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	_ = os.Remove(bak)
	_ = os.Rename(path, bak)

	return os.Rename(tmp, path)
}
