package greenhouse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/logging"
	"jobhunt-workbench/internal/ratelimit"
	"jobhunt-workbench/internal/scrape/types"
	"jobhunt-workbench/internal/scrape/util"
)

const DefaultBaseURL = "https://boards.greenhouse.io"

type Config struct {
	Companies []Company // list of boards
	BaseURL   string    // DefaultBaseURL when empty
}

type Company struct {
	Slug string // boards.greenhouse.io/<slug>
	Name string // display name
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
		log:     log.With("source", "greenhouse"),
	}
}

func (s *Scraper) Name() string { return "greenhouse" }

func (s *Scraper) Fetch(ctx context.Context) (types.ScrapeResult, error) {
	var out []domain.JobLead
	for _, co := range s.cfg.Companies {
		if err := ctx.Err(); err != nil {
			return types.ScrapeResult{Source: s.Name(), Leads: out}, err
		}
		jobs, err := s.fetchCompany(ctx, co)
		if err != nil {
			// one board being down does not fail the run
			s.log.Warn("board fetch failed", "company", co.Name, "slug", co.Slug, "err", err)
			continue
		}
		out = append(out, jobs...)
	}
	s.log.Info("fetched", "leads", len(out))
	return types.ScrapeResult{Source: s.Name(), Leads: out}, nil
}

func (s *Scraper) get(ctx context.Context, u string) (*goquery.Document, error) {
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
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("status %d", res.StatusCode)
	}
	return goquery.NewDocumentFromReader(res.Body)
}

func (s *Scraper) fetchCompany(ctx context.Context, co Company) ([]domain.JobLead, error) {
	boardURL := fmt.Sprintf("%s/%s", s.cfg.BaseURL, co.Slug)

	doc, err := s.get(ctx, boardURL)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get board: %w", err)
	}

	// anchors point at /<slug>/jobs/<id> or absolute /jobs/<id>
	seen := map[string]bool{}

	var jobs []domain.JobLead
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		abs := href
		if strings.HasPrefix(href, "/") {
			abs = s.cfg.BaseURL + href
		}
		if !strings.HasPrefix(abs, s.cfg.BaseURL) || !strings.Contains(strings.ToLower(abs), "/jobs/") {
			return
		}

		jobID := extractJobID(abs)
		if jobID == "" {
			return
		}

		sourceID := fmt.Sprintf("greenhouse:%s:%s", co.Slug, jobID)
		if seen[sourceID] {
			return
		}
		seen[sourceID] = true

		title := util.CleanText(a.Text())
		if util.LooksLikeJunkTitle(title) {
			// the job page carries the real title
			title = ""
		}

		jobs = append(jobs, domain.JobLead{
			CompanyName:     companyName(co),
			Title:           title,
			URL:             abs,
			FirstSeenSource: "Greenhouse",
			ATSJobID:        sourceID,
		})
	})

	for i := range jobs {
		if err := s.hydrateJob(ctx, &jobs[i]); err != nil {
			s.log.Debug("hydrate failed", "url", jobs[i].URL, "err", err)
		}
	}

	return jobs, nil
}

func (s *Scraper) hydrateJob(ctx context.Context, j *domain.JobLead) error {
	doc, err := s.get(ctx, j.URL)
	if err != nil {
		return err
	}

	if j.Title == "" {
		if t := util.CleanText(doc.Find("h1").First().Text()); t != "" {
			j.Title = t
		}
	}

	if loc := util.FindLocation(doc); loc != "" {
		j.LocationRaw = loc
	}

	if sel := doc.Find("#content").First(); sel.Length() > 0 {
		j.Description = util.CleanText(sel.Text())
	}

	if j.Salary == "" {
		j.Salary = util.CleanText(doc.Find(".pay-range, .pay-input").First().Text())
	}

	if j.PostedAt == nil {
		t := time.Now()
		j.PostedAt = &t
	}

	j.WorkType = util.InferWorkType(j.LocationRaw, j.Title, "")
	return nil
}

func companyName(co Company) string {
	if strings.TrimSpace(co.Name) != "" {
		return co.Name
	}
	return co.Slug
}

func extractJobID(u string) string {
	parts := strings.Split(u, "/jobs/")
	if len(parts) < 2 {
		return ""
	}
	tail := parts[1]
	end := 0
	for end < len(tail) && tail[end] >= '0' && tail[end] <= '9' {
		end++
	}
	return tail[:end]
}
