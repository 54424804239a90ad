package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Rule struct {
	Tag    string   `yaml:"tag" json:"tag"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

type Penalty struct {
	Reason string   `yaml:"reason" json:"reason"`
	Weight int      `yaml:"weight" json:"weight"`
	Any    []string `yaml:"any" json:"any"`
}

// Company is one board on an ATS, addressed by its slug.
type Company struct {
	Slug string `yaml:"slug" json:"slug"`
	Name string `yaml:"name" json:"name"`
}

// RateLimit paces requests to one host. PerSecond 0 means unlimited.
type RateLimit struct {
	PerSecond float64 `yaml:"per_second" json:"per_second"`
	Burst     int     `yaml:"burst" json:"burst"`
}

type Source struct {
	Enabled   bool      `yaml:"enabled" json:"enabled"`
	Companies []Company `yaml:"companies" json:"companies"`
}

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		LogLevel string `yaml:"log_level" json:"log_level"`
	} `yaml:"app" json:"app"`

	Engine struct {
		SearchLimit int `yaml:"search_limit" json:"search_limit"`
	} `yaml:"engine" json:"engine"`

	Polling struct {
		IngestSeconds int `yaml:"ingest_seconds" json:"ingest_seconds"`
	} `yaml:"polling" json:"polling"`

	Filters struct {
		RemoteOK       bool     `yaml:"remote_ok" json:"remote_ok"`
		LocationsAllow []string `yaml:"locations_allow" json:"locations_allow"`
		LocationsBlock []string `yaml:"locations_block" json:"locations_block"`
	} `yaml:"filters" json:"filters"`

	Scoring struct {
		TitleRules   []Rule    `yaml:"title_rules" json:"title_rules"`
		KeywordRules []Rule    `yaml:"keyword_rules" json:"keyword_rules"`
		Penalties    []Penalty `yaml:"penalties" json:"penalties"`
		// WorkTypes weights a lead by its work_type (remote, hybrid, onsite).
		WorkTypes map[string]int `yaml:"work_types" json:"work_types"`
		// SalaryListed is added when a lead carries a salary.
		SalaryListed int `yaml:"salary_listed" json:"salary_listed"`
	} `yaml:"scoring" json:"scoring"`

	Sources struct {
		Greenhouse      Source `yaml:"greenhouse" json:"greenhouse"`
		Lever           Source `yaml:"lever" json:"lever"`
		SmartRecruiters Source `yaml:"smartrecruiters" json:"smartrecruiters"`
	} `yaml:"sources" json:"sources"`

	// RateLimits paces ingest fetches per host. Hosts overrides Default.
	RateLimits struct {
		Default RateLimit            `yaml:"default" json:"default"`
		Hosts   map[string]RateLimit `yaml:"hosts" json:"hosts"`
	} `yaml:"rate_limits" json:"rate_limits"`

	Workbench struct {
		EngineURL             string  `yaml:"engine_url" json:"engine_url"`
		RequestTimeoutSeconds int     `yaml:"request_timeout_seconds" json:"request_timeout_seconds"`
		RequestsPerSecond     float64 `yaml:"requests_per_second" json:"requests_per_second"`
	} `yaml:"workbench" json:"workbench"`
}

// Default is the configuration written when the data dir has none.
func Default() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.App.DataDir = "."
	cfg.App.LogLevel = "info"
	cfg.Engine.SearchLimit = 500
	cfg.Polling.IngestSeconds = 900
	cfg.Filters.RemoteOK = true
	cfg.Scoring.TitleRules = []Rule{
		{Tag: "engineer", Weight: 10, Any: []string{"engineer", "developer"}},
	}
	cfg.Scoring.KeywordRules = []Rule{
		{Tag: "go", Weight: 5, Any: []string{"golang", " go "}},
	}
	cfg.Sources.Greenhouse.Enabled = true
	cfg.Sources.Lever.Enabled = true
	cfg.RateLimits.Default = RateLimit{PerSecond: 1, Burst: 2}
	cfg.Workbench.EngineURL = "http://127.0.0.1:38471"
	cfg.Workbench.RequestTimeoutSeconds = 30
	cfg.Workbench.RequestsPerSecond = 5
	return cfg
}

// AnySourceEnabled reports whether ingest has anything to poll.
func (c Config) AnySourceEnabled() bool {
	return c.Sources.Greenhouse.Enabled || c.Sources.Lever.Enabled || c.Sources.SmartRecruiters.Enabled
}

// Load reads a YAML file on top of Default, so omitted keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
