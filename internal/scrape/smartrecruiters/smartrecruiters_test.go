package smartrecruiters

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPagesThroughPostings(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/companies/acme/postings", func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
		assert.Equal(t, "100", r.URL.Query().Get("limit"))
		switch offset {
		case 0:
			fmt.Fprint(w, `{"totalFound":150,"content":[
				{"id":"1","name":"Backend Engineer","releasedDate":"2025-01-02T03:04:05Z",
				 "location":{"city":"Toronto","region":"ON","country":"ca","remote":true}},
				{"id":"","uuid":"","ref":"","name":"No Id"}
			]}`)
		case 100:
			fmt.Fprint(w, `{"totalFound":150,"content":[
				{"uuid":"u-2","name":"Data Analyst","location":{"city":"Austin","hybrid":true}}
			]}`)
		default:
			t.Errorf("unexpected offset %d", offset)
		}
	})
	mux.HandleFunc("/v1/companies/broken/postings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s := New(Config{
		BaseURL:   srv.URL,
		Companies: []Company{{Slug: "acme", Name: "Acme"}, {Slug: "broken"}},
	}, nil, nil)

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "smartrecruiters", res.Source)
	require.Len(t, res.Leads, 2)

	byID := map[string]int{}
	for i, l := range res.Leads {
		byID[l.ATSJobID] = i
	}
	first := res.Leads[byID["smartrecruiters:acme:1"]]
	assert.Equal(t, "Acme", first.CompanyName)
	assert.Equal(t, "remote", first.WorkType)
	assert.Equal(t, "https://jobs.smartrecruiters.com/acme/1", first.URL)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, 2025, first.PostedAt.Year())

	second := res.Leads[byID["smartrecruiters:acme:u-2"]]
	assert.Equal(t, "hybrid", second.WorkType)
	assert.Nil(t, second.PostedAt)
}

func TestToLeadSkipsIncomplete(t *testing.T) {
	_, ok := toLead(posting{ID: "1"}, "acme", "Acme")
	assert.False(t, ok)

	lead, ok := toLead(posting{Ref: "r-9", Name: " Go Dev "}, "acme", "Acme")
	require.True(t, ok)
	assert.Equal(t, "Go Dev", lead.Title)
	assert.Equal(t, "smartrecruiters:acme:r-9", lead.ATSJobID)
}
