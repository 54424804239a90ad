package lever

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPostings(t *testing.T) {
	var srvURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/postings/plaid", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("mode"))
		fmt.Fprintf(w, `[
			{"id":"a1","text":"Backend Engineer","hostedUrl":"%[1]s/plaid/a1","createdAt":1700000000000,
			 "categories":{"location":"Toronto, ON"},"workplaceType":"hybrid",
			 "salaryRange":{"min":120000,"max":150000,"currency":"USD","interval":"per-year-salary"}},
			{"id":"a2","text":"Support Specialist","hostedUrl":"%[1]s/plaid/a2","categories":{"location":""}},
			{"id":"","text":"Broken","hostedUrl":"x"}
		]`, srvURL)
	})
	mux.HandleFunc("/plaid/a2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><div class="posting-categories"><div class="location">Remote - Canada</div></div></body></html>`)
	})
	mux.HandleFunc("/v0/postings/gone", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	srvURL = srv.URL

	s := New(Config{
		BaseURL:   srv.URL,
		Companies: []Company{{Slug: "plaid", Name: "Plaid"}, {Slug: "gone"}},
	}, nil, nil)

	res, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "lever", res.Source)
	require.Len(t, res.Leads, 2)
	sort.Slice(res.Leads, func(i, j int) bool { return res.Leads[i].ATSJobID < res.Leads[j].ATSJobID })

	a1 := res.Leads[0]
	assert.Equal(t, "lever:plaid:a1", a1.ATSJobID)
	assert.Equal(t, "Plaid", a1.CompanyName)
	assert.Equal(t, "hybrid", a1.WorkType)
	assert.Equal(t, "$120,000 - $150,000", a1.Salary)
	assert.Equal(t, int64(1700000000000), a1.PostedAt.UnixMilli())

	a2 := res.Leads[1]
	assert.Equal(t, "Remote - Canada", a2.LocationRaw)
	assert.Equal(t, "remote", a2.WorkType)
	assert.Empty(t, a2.Salary)
}
