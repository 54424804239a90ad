package util

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLocation(t *testing.T) {
	assert.Equal(t, "Toronto, ON", NormalizeLocation("  Location: Toronto,  ON, toronto "))
	assert.Equal(t, "", NormalizeLocation("   "))
}

func TestInferWorkType(t *testing.T) {
	assert.Equal(t, "remote", InferWorkType("Remote - Canada", "", ""))
	assert.Equal(t, "hybrid", InferWorkType("Toronto", "Engineer (Hybrid)", ""))
	assert.Equal(t, "onsite", InferWorkType("", "", "This role is on-site"))
	assert.Equal(t, "", InferWorkType("Toronto", "Engineer", ""))
}

func TestFormatSalary(t *testing.T) {
	assert.Equal(t, "$120,000 - $150,000", FormatSalary(120000, 150000, "USD"))
	assert.Equal(t, "£60,000", FormatSalary(60000, 0, "GBP"))
	assert.Equal(t, "$90,000", FormatSalary(0, 90000, ""))
	assert.Equal(t, "", FormatSalary(0, 0, "USD"))
}

func TestSourceIDForURLIgnoresTracking(t *testing.T) {
	a := SourceIDForURL("https://Jobs.Example.com/1?utm_source=x&ref=2#top")
	b := SourceIDForURL("https://jobs.example.com/1?ref=2")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, SourceIDForURL("https://jobs.example.com/2"))
}

func TestFindLocation(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><div class="location"> Toronto, ON </div></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Toronto, ON", FindLocation(doc))

	doc, err = goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>Job Location: Berlin | Full time</p></body></html>`))
	require.NoError(t, err)
	assert.Equal(t, "Berlin", FindLocation(doc))
}

