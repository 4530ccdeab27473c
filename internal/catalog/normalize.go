package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"job-finder/internal/model"
)

const (
	DefaultTitle       = "No title"
	DefaultDescription = "No description"
	DefaultCompanyName = "Unknown company"
	DefaultAttribute   = "Unknown"
	PlaceholderLogo    = "https://via.placeholder.com/50"
)

type PayloadShape string

const (
	ShapeArray      PayloadShape = "array"
	ShapeJobsObject PayloadShape = "jobs_object"
	ShapeUnknown    PayloadShape = "unknown"
)

type normalizeResult struct {
	Jobs         []model.Job
	Shape        PayloadShape
	Entries      int
	Skipped      int
	Duplicates   int
	GeneratedIDs int
	Invalid      int
	Warnings     []string
}

// normalizePayload is lenient: a payload that is neither a bare array nor
// an object with a "jobs" array yields zero jobs plus a warning, never an
// error.
func normalizePayload(payload []byte, newID func() string) normalizeResult {
	if newID == nil {
		newID = uuid.NewString
	}
	res := normalizeResult{Shape: ShapeUnknown, Jobs: []model.Job{}}

	entries, shape, warning := splitEntries(payload)
	res.Shape = shape
	if warning != "" {
		res.Warnings = append(res.Warnings, warning)
	}
	res.Entries = len(entries)

	mapped := make([]model.Job, 0, len(entries))
	for i, raw := range entries {
		obj, ok := raw.(map[string]any)
		if !ok {
			res.Skipped++
			res.Warnings = append(res.Warnings, fmt.Sprintf("entry %d is not an object (%T); skipped", i, raw))
			continue
		}
		job, generated := mapJob(obj, newID)
		if generated {
			res.GeneratedIDs++
		}
		if err := job.Validate(); err != nil {
			res.Invalid++
			res.Warnings = append(res.Warnings, fmt.Sprintf("entry %d: %v", i, err))
		}
		mapped = append(mapped, job)
	}

	res.Jobs = dedupeByID(mapped)
	res.Duplicates = len(mapped) - len(res.Jobs)
	return res
}

func splitEntries(payload []byte) ([]any, PayloadShape, string) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ShapeUnknown, "empty payload; treating as zero jobs"
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, ShapeUnknown, fmt.Sprintf("payload is not valid JSON (%v); treating as zero jobs", err)
	}

	switch v := doc.(type) {
	case []any:
		return v, ShapeArray, ""
	case map[string]any:
		rawJobs, ok := v["jobs"]
		if !ok {
			return nil, ShapeUnknown, "payload object has no \"jobs\" property; treating as zero jobs"
		}
		list, ok := rawJobs.([]any)
		if !ok {
			if rawJobs == nil {
				return nil, ShapeJobsObject, ""
			}
			return nil, ShapeUnknown, fmt.Sprintf("payload \"jobs\" is %T, not an array; treating as zero jobs", rawJobs)
		}
		return list, ShapeJobsObject, ""
	default:
		return nil, ShapeUnknown, fmt.Sprintf("payload is a JSON %T, not an array or object; treating as zero jobs", doc)
	}
}

// mapJob fills missing fields with placeholders. When the upstream entry
// has no id a random one is generated, so the same posting gets a new
// identity on every load and bookmarks for it will not survive a refresh.
func mapJob(raw map[string]any, newID func() string) (model.Job, bool) {
	id, ok := idField(raw["id"])
	generated := false
	if !ok {
		id = newID()
		generated = true
	}
	return model.Job{
		ID:              id,
		Title:           stringOr(raw["title"], DefaultTitle),
		Description:     stringOr(raw["description"], DefaultDescription),
		CompanyName:     stringOr(raw["companyName"], DefaultCompanyName),
		CompanyLogo:     stringOr(raw["companyLogo"], PlaceholderLogo),
		MinSalary:       numberOrZero(raw["minSalary"]),
		MaxSalary:       numberOrZero(raw["maxSalary"]),
		JobType:         capitalizedOr(raw["jobType"], DefaultAttribute),
		WorkModel:       capitalizedOr(raw["workModel"], DefaultAttribute),
		SeniorityLevel:  capitalizedOr(raw["seniorityLevel"], DefaultAttribute),
		ApplicationLink: stringOr(raw["applicationLink"], ""),
	}, generated
}

func idField(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if strings.TrimSpace(t) == "" {
			return "", false
		}
		return t, true
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	default:
		return "", false
	}
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

func capitalizedOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return capitalize(s)
}

// capitalize upper-cases the first rune and leaves the rest untouched.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// numberOrZero reads a salary. Anything that is not a finite number,
// including the "NaN" and "Inf" spellings ParseFloat accepts, becomes 0.
func numberOrZero(v any) float64 {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func dedupeByID(jobs []model.Job) []model.Job {
	out := make([]model.Job, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if seen[j.ID] {
			continue
		}
		seen[j.ID] = true
		out = append(out, j)
	}
	return out
}
