package scrape

import (
	"jobhunt-workbench/internal/config"
	"jobhunt-workbench/internal/scrape/greenhouse"
	"jobhunt-workbench/internal/scrape/lever"
	"jobhunt-workbench/internal/scrape/smartrecruiters"
)

func MapGreenhouseCompanies(in []config.Company) []greenhouse.Company {
	out := make([]greenhouse.Company, 0, len(in))
	for _, c := range in {
		out = append(out, greenhouse.Company{
			Slug: c.Slug,
			Name: c.Name,
		})
	}
	return out
}

func MapLeverCompanies(in []config.Company) []lever.Company {
	out := make([]lever.Company, 0, len(in))
	for _, c := range in {
		out = append(out, lever.Company{
			Slug: c.Slug,
			Name: c.Name,
		})
	}
	return out
}

func MapSmartRecruitersCompanies(in []config.Company) []smartrecruiters.Company {
	out := make([]smartrecruiters.Company, 0, len(in))
	for _, c := range in {
		out = append(out, smartrecruiters.Company{
			Slug: c.Slug,
			Name: c.Name,
		})
	}
	return out
}
