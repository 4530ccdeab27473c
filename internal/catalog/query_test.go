package catalog

import (
	"strings"
	"testing"

	"job-finder/internal/model"
)

func sampleJobs() []model.Job {
	return []model.Job{
		{ID: "1", Title: "Backend Engineer", CompanyName: "Zed Labs", MinSalary: 90000, MaxSalary: 110000},
		{ID: "2", Title: "sales manager", CompanyName: "acorn", MinSalary: 40000, MaxSalary: 60000},
		{ID: "3", Title: "Data Analyst", CompanyName: "Beta Engineering", MinSalary: 50000, MaxSalary: 50000},
		{ID: "4", Title: "Frontend Developer", CompanyName: "Acme", MinSalary: 30000, MaxSalary: 70000},
		{ID: "5", Title: "Analyst", CompanyName: "Zed Labs", MinSalary: 0, MaxSalary: 0},
	}
}

func ids(jobs []model.Job) string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return strings.Join(out, ",")
}

func TestFilterMatchesTitleOrCompanyCaseInsensitive(t *testing.T) {
	jobs := sampleJobs()
	got := Filter(jobs, "ENGINEER")
	if ids(got) != "1,3" {
		t.Fatalf("expected 1,3, got %s", ids(got))
	}

	search := "zed"
	matched := map[string]bool{}
	for _, j := range Filter(jobs, search) {
		matched[j.ID] = true
		if !strings.Contains(strings.ToLower(j.Title), search) && !strings.Contains(strings.ToLower(j.CompanyName), search) {
			t.Fatalf("job %s should not match %q", j.ID, search)
		}
	}
	for _, j := range jobs {
		if matched[j.ID] {
			continue
		}
		if strings.Contains(strings.ToLower(j.Title), search) || strings.Contains(strings.ToLower(j.CompanyName), search) {
			t.Fatalf("job %s should have matched %q", j.ID, search)
		}
	}
}

func TestFilterEmptySearchKeepsAll(t *testing.T) {
	jobs := sampleJobs()
	if got := Filter(jobs, ""); ids(got) != "1,2,3,4,5" {
		t.Fatalf("expected all jobs in order, got %s", ids(got))
	}
}

func TestSortByCompanyIsLocaleAwareAndStable(t *testing.T) {
	got := Project(sampleJobs(), "", model.SortCompany, DefaultLocale)
	// Collation compares letters before case, so Acme precedes acorn. The
	// two Zed Labs rows keep their input order.
	if ids(got) != "4,2,3,1,5" {
		t.Fatalf("unexpected company order: %s", ids(got))
	}
}

func TestSortByTitle(t *testing.T) {
	got := Project(sampleJobs(), "", model.SortTitle, DefaultLocale)
	if ids(got) != "5,1,3,4,2" {
		t.Fatalf("unexpected title order: %s", ids(got))
	}
}

func TestSortBySalaryIsNonDecreasingAndStable(t *testing.T) {
	jobs := sampleJobs()
	jobs = append(jobs, model.Job{ID: "6", MinSalary: 50000, MaxSalary: 50000})
	got := Project(jobs, "", model.SortSalary, DefaultLocale)
	for i := 1; i < len(got); i++ {
		if got[i-1].SalaryMidpoint() > got[i].SalaryMidpoint() {
			t.Fatalf("salary order decreases at %d: %s", i, ids(got))
		}
	}
	// 2, 3, 4 and 6 all have midpoint 50000 and must keep input order.
	if ids(got) != "5,2,3,4,6,1" {
		t.Fatalf("unexpected salary order: %s", ids(got))
	}
}

func TestSortNoneKeepsInputOrder(t *testing.T) {
	got := Project(sampleJobs(), "", model.SortNone, DefaultLocale)
	if ids(got) != "1,2,3,4,5" {
		t.Fatalf("expected load order, got %s", ids(got))
	}
}

func TestProjectDoesNotMutateInput(t *testing.T) {
	jobs := sampleJobs()
	_ = Project(jobs, "", model.SortCompany, DefaultLocale)
	if ids(jobs) != "1,2,3,4,5" {
		t.Fatalf("input slice was reordered: %s", ids(jobs))
	}
}
