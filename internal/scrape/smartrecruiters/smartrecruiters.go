package smartrecruiters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/ratelimit"
	"jobhunt-workbench/internal/scrape/types"
	"jobhunt-workbench/internal/scrape/util"
)

const (
	DefaultBaseURL = "https://api.smartrecruiters.com"
	jobsHost       = "https://jobs.smartrecruiters.com"
	pageLimit      = 100
	maxOffset      = 5000
)

type Config struct {
	Companies []Company
	BaseURL   string // DefaultBaseURL when empty
}

type Company struct {
	// Slug is the company identifier, as in jobs.smartrecruiters.com/<slug>
	Slug string
	Name string
}

type Scraper struct {
	cfg     Config
	hc      *http.Client
	limiter *ratelimit.Hosts
	log     *logging.Logger
}

func New(cfg Config, limiter *ratelimit.Hosts, log *logging.Logger) *Scraper {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if log == nil {
		log = logging.Nop()
	}
	return &Scraper{
		cfg:     cfg,
		hc:      &http.Client{Timeout: 25 * time.Second},
		limiter: limiter,
		log:     log.With("source", "smartrecruiters"),
	}
}

func (s *Scraper) Name() string { return "smartrecruiters" }

type postingsPage struct {
	Content    []posting `json:"content"`
	TotalFound int       `json:"totalFound"`
}

type posting struct {
	ID           string    `json:"id"`
	UUID         string    `json:"uuid"`
	Name         string    `json:"name"`
	ReleasedDate time.Time `json:"releasedDate"`
	Ref          string    `json:"ref"`
	Location     struct {
		City    string `json:"city"`
		Region  string `json:"region"`
		Country string `json:"country"`
		Remote  bool   `json:"remote"`
		Hybrid  bool   `json:"hybrid"`
	} `json:"location"`
}

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	const workers = 8

	companies := s.cfg.Companies
	jobsCh := make(chan []domain.JobLead, len(companies))
	workCh := make(chan Company)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for co := range workCh {
				cctx, cancel := context.WithTimeout(ctx, 30*time.Second)
				jobs, err := s.fetchCompany(cctx, co)
				cancel()
				if err != nil {
					s.log.Warn("company fetch failed", "company", co.Name, "slug", co.Slug, "err", err)
				}
				if len(jobs) > 0 {
					jobsCh <- jobs
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, co := range companies {
			select {
			case <-ctx.Done():
				return
			case workCh <- co:
			}
		}
	}()

	wg.Wait()
	close(jobsCh)

	var out []domain.JobLead
	for batch := range jobsCh {
		out = append(out, batch...)
	}

	s.log.Info("fetched", "leads", len(out))
	return types.ScrapeResult{Source: s.Name(), Leads: out}, nil
}

// fetchCompany pages through the postings API. Leads from pages read before
// an error are still returned.
func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.JobLead, error) {
	slug := strings.TrimSpace(co.Slug)
	if slug == "" {
		return nil, fmt.Errorf("empty slug")
	}
	name := co.Name
	if strings.TrimSpace(name) == "" {
		name = slug
	}

	base := fmt.Sprintf("%s/v1/companies/%s/postings", s.cfg.BaseURL, url.PathEscape(slug))
	var out []domain.JobLead

	for offset := 0; offset <= maxOffset; offset += pageLimit {
		page, err := s.fetchPage(ctx, fmt.Sprintf("%s?limit=%d&offset=%d", base, pageLimit, offset))
		if err != nil {
			return out, err
		}
		if len(page.Content) == 0 {
			break
		}
		for _, p := range page.Content {
			if lead, ok := toLead(p, slug, name); ok {
				out = append(out, lead)
			}
		}
		if page.TotalFound > 0 && offset+pageLimit >= page.TotalFound {
			break
		}
	}
	return out, nil
}

func (s *Scraper) fetchPage(ctx context.Context, u string) (postingsPage, error) {
	var page postingsPage
	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return page, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return page, err
	}
	req.Header.Set("User-Agent", "JobHunt/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := s.hc.Do(req)
	if err != nil {
		return page, fmt.Errorf("smartrecruiters get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return page, fmt.Errorf("smartrecruiters status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return page, fmt.Errorf("smartrecruiters decode: %w", err)
	}
	return page, nil
}

func toLead(p posting, slug, company string) (domain.JobLead, bool) {
	title := strings.TrimSpace(p.Name)
	id := strings.TrimSpace(firstNonEmpty(p.ID, p.UUID, p.Ref))
	if title == "" || id == "" {
		return domain.JobLead{}, false
	}

	loc := util.NormalizeLocation(strings.Join(nonEmpty(p.Location.City, p.Location.Region, p.Location.Country), ", "))
	var mode string
	switch {
	case p.Location.Remote:
		mode = domain.WorkTypeRemote
	case p.Location.Hybrid:
		mode = domain.WorkTypeHybrid
	default:
		mode = util.InferWorkType(loc, title, "")
	}

	var postedAt *time.Time
	if !p.ReleasedDate.IsZero() {
		t := p.ReleasedDate
		postedAt = &t
	}

	return domain.JobLead{
		CompanyName:     company,
		Title:           title,
		LocationRaw:     loc,
		WorkType:        mode,
		URL:             fmt.Sprintf("%s/%s/%s", jobsHost, url.PathEscape(slug), url.PathEscape(id)),
		PostedAt:        postedAt,
		FirstSeenSource: "SmartRecruiters",
		ATSJobID:        fmt.Sprintf("smartrecruiters:%s:%s", slug, id),
	}, true
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(vals ...string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
