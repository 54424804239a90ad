package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/domain"
)

func TestYAMLScorer(t *testing.T) {
	var cfg config.Config
	cfg.Scoring.TitleRules = []config.Rule{
		{Tag: "engineer", Weight: 10, Any: []string{"Engineer", "developer"}},
		{Tag: "backend", Weight: 5, Any: []string{"backend"}},
	}
	cfg.Scoring.KeywordRules = []config.Rule{
		{Tag: "go", Weight: 4, Any: []string{"golang"}},
		{Tag: "engineer", Weight: 1, Any: []string{"engineering"}},
	}
	cfg.Scoring.Penalties = []config.Penalty{
		{Reason: "senior", Weight: -8, Any: []string{"principal"}},
	}

	var s Scorer = YAMLScorer{Cfg: cfg}

	score, tags := s.Score(domain.JobLead{Title: "Backend Engineer", Description: "Golang engineering team"})
	assert.Equal(t, 20, score)
	assert.Equal(t, []string{"engineer", "backend", "go"}, tags)

	score, tags = s.Score(domain.JobLead{Title: "Principal Developer"})
	assert.Equal(t, 2, score)
	assert.Equal(t, []string{"engineer"}, tags)

	score, tags = s.Score(domain.JobLead{Title: "Barista"})
	assert.Zero(t, score)
	assert.Empty(t, tags)
}

func TestYAMLScorerWorkTypeAndSalary(t *testing.T) {
	var cfg config.Config
	cfg.Scoring.WorkTypes = map[string]int{domain.WorkTypeRemote: 4, domain.WorkTypeOnsite: -3}
	cfg.Scoring.SalaryListed = 2
	s := YAMLScorer{Cfg: cfg}

	tests := []struct {
		name  string
		lead  domain.JobLead
		score int
		tags  []string
	}{
		{"remote with salary", domain.JobLead{Title: "Dev", WorkType: "remote", Salary: "$100k"}, 6, []string{"remote", "salary"}},
		{"free text work type", domain.JobLead{Title: "Dev", WorkType: "On-site"}, -3, []string{"onsite"}},
		{"unweighted work type", domain.JobLead{Title: "Dev", WorkType: "hybrid"}, 0, []string{}},
		{"blank salary", domain.JobLead{Title: "Dev", Salary: "  "}, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, tags := s.Score(tt.lead)
			assert.Equal(t, tt.score, score)
			assert.Equal(t, tt.tags, tags)
		})
	}
}

func TestYAMLScorerTitleRulesIgnoreDescription(t *testing.T) {
	var cfg config.Config
	cfg.Scoring.TitleRules = []config.Rule{{Tag: "engineer", Weight: 10, Any: []string{"engineer"}}}
	cfg.Scoring.Penalties = []config.Penalty{{Reason: "senior", Weight: 8, Any: []string{"principal"}}}
	s := YAMLScorer{Cfg: cfg}

	score, tags := s.Score(domain.JobLead{Title: "Analyst", Description: "work with engineers"})
	assert.Zero(t, score)
	assert.Empty(t, tags)

	// penalties subtract whatever sign the weight was written with
	score, _ = s.Score(domain.JobLead{Title: "Principal Engineer"})
	assert.Equal(t, 2, score)
}
