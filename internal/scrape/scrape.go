package scrape

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"jobhunt-workbench/internal/domain"
	"jobhunt-workbench/internal/rank"
	"jobhunt-workbench/internal/scrape/types"
	"jobhunt-workbench/internal/scrape/util"
	"jobhunt-workbench/internal/store"
)

func InsertJobIfNew(ctx context.Context, db *sql.DB, j types.JobRow) (bool, error) {
	if j.Company == "" {
		j.Company = "Unknown"
	}
	if j.Title == "" {
		j.Title = "Job Posting"
	}
	if j.URL == "" {
		return false, errors.New("missing url")
	}
	if j.ReceivedAt.IsZero() {
		j.ReceivedAt = time.Now().UTC()
	}
	if j.SourceID == "" {
		j.SourceID = util.SourceIDForURL(j.URL)
	} else {
		j.SourceID = strings.TrimSpace(j.SourceID)
	}

	tagsB, _ := json.Marshal(j.Tags)
	if j.Tags == nil {
		tagsB = []byte("[]")
	}

	return store.InsertJobIgnore(ctx, db, store.JobInsert{
		Company:     j.Company,
		Title:       j.Title,
		Salary:      j.Salary,
		Location:    j.Location,
		WorkType:    j.WorkType,
		Source:      j.Source,
		URL:         j.URL,
		Description: j.Description,
		Score:       j.Score,
		TagsJSON:    string(tagsB),
		Date:        j.ReceivedAt.UTC().Format(time.RFC3339),
		SourceID:    j.SourceID,
	})
}

func jobRowFromLead(lead domain.JobLead, s rank.Scorer) types.JobRow {
	recv := time.Now().UTC()
	if lead.PostedAt != nil && !lead.PostedAt.IsZero() {
		recv = lead.PostedAt.UTC()
	}

	score, tags := s.Score(lead)

	sourceID := strings.TrimSpace(lead.ATSJobID)
	if sourceID == "" {
		sourceID = util.SourceIDForURL(lead.URL)
	}

	return types.JobRow{
		Company:     strings.TrimSpace(lead.CompanyName),
		Title:       strings.TrimSpace(lead.Title),
		Salary:      strings.TrimSpace(lead.Salary),
		Location:    strings.TrimSpace(lead.LocationRaw),
		WorkType:    domain.NormalizeWorkType(lead.WorkType),
		Description: strings.TrimSpace(lead.Description),
		URL:         strings.TrimSpace(lead.URL),
		Score:       score,
		Tags:        tags,
		ReceivedAt:  recv,
		SourceID:    sourceID,
		Source:      strings.TrimSpace(lead.FirstSeenSource),
	}
}
