package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"job-finder/internal/model"
)

var DefaultLocale = language.English

// Filter keeps jobs whose title or company name contains search,
// ignoring case. An empty search keeps everything.
func Filter(jobs []model.Job, search string) []model.Job {
	needle := strings.ToLower(search)
	out := make([]model.Job, 0, len(jobs))
	for _, j := range jobs {
		if needle == "" ||
			strings.Contains(strings.ToLower(j.Title), needle) ||
			strings.Contains(strings.ToLower(j.CompanyName), needle) {
			out = append(out, j)
		}
	}
	return out
}

// SortJobs orders jobs in place. The sort is stable so ties keep their
// input order; SortNone leaves the slice untouched.
func SortJobs(jobs []model.Job, key model.SortKey, locale language.Tag) {
	switch key {
	case model.SortCompany:
		c := collate.New(locale)
		slices.SortStableFunc(jobs, func(a, b model.Job) int {
			return c.CompareString(a.CompanyName, b.CompanyName)
		})
	case model.SortTitle:
		c := collate.New(locale)
		slices.SortStableFunc(jobs, func(a, b model.Job) int {
			return c.CompareString(a.Title, b.Title)
		})
	case model.SortSalary:
		slices.SortStableFunc(jobs, func(a, b model.Job) int {
			ma, mb := a.SalaryMidpoint(), b.SalaryMidpoint()
			switch {
			case ma < mb:
				return -1
			case ma > mb:
				return 1
			default:
				return 0
			}
		})
	}
}

// Project is the filter-then-sort pipeline shared by the catalog and the
// saved set. It always returns a fresh slice.
func Project(jobs []model.Job, search string, key model.SortKey, locale language.Tag) []model.Job {
	out := Filter(jobs, search)
	SortJobs(out, key, locale)
	return out
}
