package model

import (
	"errors"
	"math"
	"testing"
)

func TestJobValidate(t *testing.T) {
	cases := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"ok", Job{ID: "1", MinSalary: 10, MaxSalary: 20}, false},
		{"zero salaries", Job{ID: "1"}, false},
		{"empty id", Job{ID: "  "}, true},
		{"negative", Job{ID: "1", MinSalary: -1, MaxSalary: 5}, true},
		{"inverted range", Job{ID: "1", MinSalary: 90, MaxSalary: 50}, true},
		{"nan salary", Job{ID: "1", MinSalary: math.NaN(), MaxSalary: math.NaN()}, true},
		{"infinite max", Job{ID: "1", MinSalary: 10, MaxSalary: math.Inf(1)}, true},
	}
	for _, tc := range cases {
		err := tc.job.Validate()
		if tc.wantErr && !errors.Is(err, ErrInvalidJob) {
			t.Fatalf("%s: expected ErrInvalidJob, got %v", tc.name, err)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

func TestSalaryMidpoint(t *testing.T) {
	j := Job{MinSalary: 50000, MaxSalary: 70000}
	if got := j.SalaryMidpoint(); got != 60000 {
		t.Fatalf("midpoint mismatch: got %v want 60000", got)
	}
}

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":             SortNone,
		"None":         SortNone,
		"CompanyName":  SortCompany,
		"Company Name": SortCompany,
		"company":      SortCompany,
		"JobTitle":     SortTitle,
		"job-title":    SortTitle,
		"Salary":       SortSalary,
	}
	for raw, want := range cases {
		got, err := ParseSortKey(raw)
		if err != nil {
			t.Fatalf("ParseSortKey(%q) error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseSortKey(%q) = %q, want %q", raw, got, want)
		}
	}

	if _, err := ParseSortKey("rating"); !errors.Is(err, ErrUnknownSortKey) {
		t.Fatalf("expected ErrUnknownSortKey, got %v", err)
	}
}

func TestSortKeyLabel(t *testing.T) {
	if got := SortCompany.Label(); got != "Company Name" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := SortKey("weird").Label(); got != "weird" {
		t.Fatalf("unexpected fallback label %q", got)
	}
}
