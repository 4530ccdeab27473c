package saved

import (
	"errors"
	"strings"
	"testing"

	"job-finder/internal/model"
)

func listIDs(jobs []model.Job) string {
	out := make([]string, len(jobs))
	for i, j := range jobs {
		out[i] = j.ID
	}
	return strings.Join(out, ",")
}

func TestToggleSavesThenRemoves(t *testing.T) {
	s := New()
	job := model.Job{ID: "x", Title: "Engineer", CompanyName: "Acme"}

	state, err := s.Toggle(job)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if state != model.SavedStateSaved {
		t.Fatalf("expected saved, got %q", state)
	}
	if !s.IsSaved("x") {
		t.Fatal("expected x to be saved")
	}

	state, err = s.Toggle(job)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if state != model.SavedStateRemoved {
		t.Fatalf("expected removed, got %q", state)
	}
	if s.IsSaved("x") {
		t.Fatal("expected x to be removed")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty set, got %d", s.Len())
	}
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	s := New()
	s.Add(model.Job{ID: "keep"})
	for _, id := range []string{"keep", "new"} {
		before := s.IsSaved(id)
		if _, err := s.Toggle(model.Job{ID: id}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.Toggle(model.Job{ID: id}); err != nil {
			t.Fatal(err)
		}
		if s.IsSaved(id) != before {
			t.Fatalf("double toggle changed membership of %q", id)
		}
	}
}

func TestToggleRejectsEmptyID(t *testing.T) {
	s := New()
	if _, err := s.Toggle(model.Job{ID: "  "}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatal("invalid toggle must not mutate the set")
	}
}

func TestMembershipIsKeyedByID(t *testing.T) {
	s := New()
	if !s.Add(model.Job{ID: "1", Title: "first"}) {
		t.Fatal("expected first add to succeed")
	}
	if s.Add(model.Job{ID: "1", Title: "second"}) {
		t.Fatal("expected duplicate id add to be rejected")
	}
	list := s.List()
	if len(list) != 1 || list[0].Title != "first" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestListKeepsInsertionOrderAfterRemoval(t *testing.T) {
	s := New()
	for _, id := range []string{"c", "a", "d", "b"} {
		s.Add(model.Job{ID: id})
	}
	if !s.Remove("a") {
		t.Fatal("expected a to be removed")
	}
	if s.Remove("a") {
		t.Fatal("expected second remove to report false")
	}
	if got := listIDs(s.List()); got != "c,d,b" {
		t.Fatalf("expected c,d,b, got %s", got)
	}
	if !s.IsSaved("b") || !s.IsSaved("d") {
		t.Fatal("index bookkeeping lost entries after removal")
	}
	s.Remove("b")
	if got := listIDs(s.List()); got != "c,d" {
		t.Fatalf("expected c,d, got %s", got)
	}
}

func TestSavedJobIsSnapshotCopy(t *testing.T) {
	s := New()
	job := model.Job{ID: "1", Title: "Original"}
	s.Add(job)
	job.Title = "Changed"
	if got := s.List()[0].Title; got != "Original" {
		t.Fatalf("saved job changed with caller's copy: %q", got)
	}
	list := s.List()
	list[0].Title = "Mutated"
	if got := s.List()[0].Title; got != "Original" {
		t.Fatalf("List result aliases the set: %q", got)
	}
}

func TestQueryUsesCatalogRules(t *testing.T) {
	s := New()
	s.Add(model.Job{ID: "a", Title: "Sales Lead", CompanyName: "Zed"})
	s.Add(model.Job{ID: "b", Title: "Engineer", CompanyName: "Acorn"})
	s.Add(model.Job{ID: "c", Title: "Analyst", CompanyName: "zed labs"})

	if got := listIDs(s.Query("", model.SortCompany)); got != "b,a,c" {
		t.Fatalf("company order mismatch: %s", got)
	}
	if got := listIDs(s.Query("", model.SortTitle)); got != "c,b,a" {
		t.Fatalf("title order mismatch: %s", got)
	}
	if got := listIDs(s.Query("ZED", model.SortNone)); got != "a,c" {
		t.Fatalf("filter mismatch: %s", got)
	}
}
