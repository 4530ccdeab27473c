package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidJob = errors.New("invalid job record")

// Job is one normalized job posting. Loaded records are never edited in
// place; a reload replaces the whole snapshot.
type Job struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	CompanyName     string  `json:"companyName"`
	CompanyLogo     string  `json:"companyLogo"`
	MinSalary       float64 `json:"minSalary"`
	MaxSalary       float64 `json:"maxSalary"`
	JobType         string  `json:"jobType"`
	WorkModel       string  `json:"workModel"`
	SeniorityLevel  string  `json:"seniorityLevel"`
	ApplicationLink string  `json:"applicationLink,omitempty"`
}

func (j Job) SalaryMidpoint() float64 {
	return (j.MinSalary + j.MaxSalary) / 2
}

// Validate checks the invariants the provider does not enforce.
func (j Job) Validate() error {
	if strings.TrimSpace(j.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidJob)
	}
	if !isFinite(j.MinSalary) || !isFinite(j.MaxSalary) {
		return fmt.Errorf("%w: non-finite salary (id=%s min=%v max=%v)", ErrInvalidJob, j.ID, j.MinSalary, j.MaxSalary)
	}
	if j.MinSalary < 0 || j.MaxSalary < 0 {
		return fmt.Errorf("%w: negative salary (id=%s min=%v max=%v)", ErrInvalidJob, j.ID, j.MinSalary, j.MaxSalary)
	}
	if j.MinSalary > j.MaxSalary {
		return fmt.Errorf("%w: min salary above max (id=%s min=%v max=%v)", ErrInvalidJob, j.ID, j.MinSalary, j.MaxSalary)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type SavedState string

const (
	SavedStateSaved   SavedState = "saved"
	SavedStateRemoved SavedState = "removed"
)
