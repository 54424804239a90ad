package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/ratelimit"
	"jobhunt-workbench/internal/scrape/types"
	"jobhunt-workbench/internal/scrape/util"
)

const DefaultBaseURL = "https://api.lever.co"

type Config struct {
	Companies []Company
	BaseURL   string // DefaultBaseURL when empty
}

type Company struct {
	Slug string // api.lever.co/v0/postings/<slug>
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
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		log:     log.With("source", "lever"),
	}
}

func (s *Scraper) Name() string { return "lever" }

type leverPosting struct {
	ID         string `json:"id"`
	Text       string `json:"text"` // title
	HostedURL  string `json:"hostedUrl"`
	CreatedAt  int64  `json:"createdAt"` // ms epoch
	Categories struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
	WorkplaceType    string `json:"workplaceType"` // remote | hybrid | on-site | unspecified
	DescriptionPlain string `json:"descriptionPlain"`
	SalaryRange      *struct {
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
		Currency string  `json:"currency"`
		Interval string  `json:"interval"`
	} `json:"salaryRange"`
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
					continue
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
	return types.ScrapeResult{
		Source: s.Name(),
		Leads:  out,
	}, nil
}

func (s *Scraper) do(ctx context.Context, u string) (*http.Response, error) {
	if s.limiter != nil {
		if err := s.limiter.WaitURL(ctx, u); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "JobHunt/1.0 (+local)")
	res, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return res, nil
}

func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.JobLead, error) {
	apiURL := fmt.Sprintf("%s/v0/postings/%s?mode=json", s.cfg.BaseURL, co.Slug)

	res, err := s.do(ctx, apiURL)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()

	var postings []leverPosting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	name := co.Name
	if strings.TrimSpace(name) == "" {
		name = co.Slug
	}

	out := make([]domain.JobLead, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" || p.HostedURL == "" || strings.TrimSpace(p.Text) == "" {
			continue
		}
		t := time.Now()
		if p.CreatedAt > 0 {
			t = time.UnixMilli(p.CreatedAt)
		}
		loc := util.NormalizeLocation(p.Categories.Location)

		mode := domain.NormalizeWorkType(p.WorkplaceType)
		if mode == "" {
			mode = util.InferWorkType(loc, p.Text, "")
		}

		salary := ""
		if p.SalaryRange != nil {
			salary = util.FormatSalary(p.SalaryRange.Min, p.SalaryRange.Max, p.SalaryRange.Currency)
		}

		out = append(out, domain.JobLead{
			CompanyName:     name,
			Title:           strings.TrimSpace(p.Text),
			LocationRaw:     loc,
			Salary:          salary,
			WorkType:        mode,
			URL:             p.HostedURL,
			PostedAt:        &t,
			Description:     util.CleanText(p.DescriptionPlain),
			FirstSeenSource: "Lever",
			ATSJobID:        fmt.Sprintf("lever:%s:%s", co.Slug, p.ID),
		})
	}
	for i := range out {
		if out[i].LocationRaw == "" {
			if err := s.hydrateJob(ctx, &out[i]); err != nil {
				s.log.Debug("hydrate failed", "url", out[i].URL, "err", err)
			}
		}
	}

	return out, nil
}

func (s *Scraper) hydrateJob(ctx context.Context, j *domain.JobLead) error {
	res, err := s.do(ctx, j.URL)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	candidates := []string{
		"[itemprop='jobLocation']",
		"[data-qa='location']",
		".posting-categories .location",
		".location",
		".posting-categories li",
	}
	for _, sel := range candidates {
		if t := util.CleanText(doc.Find(sel).First().Text()); t != "" {
			j.LocationRaw = util.NormalizeLocation(t)
			break
		}
	}

	if j.WorkType == "" {
		j.WorkType = util.InferWorkType(j.LocationRaw, j.Title, "")
	}
	return nil
}
