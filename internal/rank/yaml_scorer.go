package rank

import (
	"strings"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
)

// YAMLScorer scores leads with the rules under scoring: in config.yml.
// Title rules see the title only; keyword rules and penalties see title and
// description. Each rule counts once however many of its terms match.
type YAMLScorer struct {
	Cfg config.Config
}

func (s YAMLScorer) Score(job domain.JobLead) (int, []string) {
	title := strings.ToLower(job.Title)
	text := title + " " + strings.ToLower(job.Description)
	sc := s.Cfg.Scoring

	score := 0
	var tags []string

	for _, r := range sc.TitleRules {
		if containsAny(title, r.Any) {
			score += r.Weight
			tags = append(tags, r.Tag)
		}
	}
	for _, r := range sc.KeywordRules {
		if containsAny(text, r.Any) {
			score += r.Weight
			tags = append(tags, r.Tag)
		}
	}
	for _, p := range sc.Penalties {
		if containsAny(text, p.Any) {
			score -= abs(p.Weight)
		}
	}

	if wt := domain.NormalizeWorkType(job.WorkType); wt != "" {
		if w, ok := sc.WorkTypes[wt]; ok {
			score += w
			tags = append(tags, wt)
		}
	}
	if sc.SalaryListed != 0 && strings.TrimSpace(job.Salary) != "" {
		score += sc.SalaryListed
		tags = append(tags, "salary")
	}

	return score, uniq(tags)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(text, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, t := range in {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
