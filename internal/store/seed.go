package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

var seedJobs = []JobInsert{
	{Company: "SeedCo", Title: "SRE / Platform Engineer", Salary: "$140,000 - $170,000", Location: "Dallas-Fort Worth, TX", WorkType: "remote", Score: 88},
	{Company: "TechCorp", Title: "Senior Go Developer", Salary: "$95,000", Location: "Toronto, ON", WorkType: "hybrid", Score: 80},
	{Company: "WebCorp", Title: "Frontend Developer", Salary: "$75,000", Location: "Montreal, QC", WorkType: "onsite", Score: 40},
	{Company: "DataCorp", Title: "Backend Engineer", Salary: "", Location: "Toronto, ON", WorkType: "remote", Score: 72},
	{Company: "Northwind", Title: "Data Analyst", Salary: "$60,000", Location: "Vancouver, BC", WorkType: "onsite", Score: 20},
	{Company: "Initech", Title: "Staff Software Engineer", Salary: "$180,000", Location: "Remote - Canada", WorkType: "remote", Score: 85},
	{Company: "Globex", Title: "DevOps Engineer", Salary: "$110,000", Location: "Ottawa, ON", WorkType: "hybrid", Score: 60},
	{Company: "Umbrella", Title: "QA Engineer", Salary: "", Location: "Calgary, AB", WorkType: "onsite", Score: 25},
	{Company: "Hooli", Title: "Site Reliability Engineer", Salary: "$150,000", Location: "Toronto, ON", WorkType: "remote", Score: 78},
	{Company: "Soylent", Title: "Full Stack Developer", Salary: "$90,000", Location: "Waterloo, ON", WorkType: "hybrid", Score: 55},
	{Company: "Vandelay", Title: "Junior Developer", Salary: "$55,000", Location: "Halifax, NS", WorkType: "onsite", Score: 15},
	{Company: "Stark Industries", Title: "Platform Engineer (Go)", Salary: "$130,000", Location: "Remote", WorkType: "remote", Score: 82},
}

// SeedJobs inserts the demo jobs that are not already present.
func SeedJobs(ctx context.Context, db *sql.DB) (added int, err error) {
	now := time.Now().UTC()
	for i, j := range seedJobs {
		j.Source = "Seed"
		j.URL = "https://example.com/apply"
		j.Description = j.Title + " at " + j.Company
		j.SourceID = "seed:" + j.Company + ":" + j.Title
		j.Date = now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339)
		tags, _ := json.Marshal([]string{j.WorkType})
		j.TagsJSON = string(tags)

		ok, err := InsertJobIgnore(ctx, db, j)
		if err != nil {
			return added, err
		}
		if ok {
			added++
		}
	}
	return added, nil
}
