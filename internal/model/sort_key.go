package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSortKey = errors.New("unknown sort key")

type SortKey string

const (
	SortNone    SortKey = "none"
	SortCompany SortKey = "company"
	SortTitle   SortKey = "title"
	SortSalary  SortKey = "salary"
)

var sortKeyLabels = map[SortKey]string{
	SortNone:    "None",
	SortCompany: "Company Name",
	SortTitle:   "Job Title",
	SortSalary:  "Salary",
}

func (k SortKey) Label() string {
	if label, ok := sortKeyLabels[k]; ok {
		return label
	}
	return string(k)
}

// ParseSortKey accepts the canonical keys plus the display spellings used
// by the sort picker ("Company Name", "CompanyName", "JobTitle", ...).
func ParseSortKey(raw string) (SortKey, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
	switch s {
	case "", "none":
		return SortNone, nil
	case "company", "companyname":
		return SortCompany, nil
	case "title", "jobtitle":
		return SortTitle, nil
	case "salary":
		return SortSalary, nil
	default:
		return SortNone, fmt.Errorf("%w %q (expected none, company, title, or salary)", ErrUnknownSortKey, strings.TrimSpace(raw))
	}
}
