// Package saved holds the user's bookmarked jobs for the session.
//
// The set is keyed by job id and is deliberately not reconciled with the
// catalog: a job that disappears on refresh stays bookmarked. Nothing is
// written to disk; a new process starts with an empty set.
package saved

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"

	"job-finder/internal/catalog"
	"job-finder/internal/model"
)

var ErrInvalidID = errors.New("job id is required to save a job")

type Set struct {
	mu     sync.RWMutex
	locale language.Tag
	byID   map[string]int
	order  []model.Job
}

func New() *Set {
	return NewWithLocale(catalog.DefaultLocale)
}

// NewWithLocale uses locale for the company/title ordering in Query.
func NewWithLocale(locale language.Tag) *Set {
	return &Set{
		locale: locale,
		byID:   make(map[string]int),
		order:  []model.Job{},
	}
}

// Toggle saves job when its id is not bookmarked yet and removes it
// otherwise. It is the only mutation the views use.
func (s *Set) Toggle(job model.Job) (model.SavedState, error) {
	if strings.TrimSpace(job.ID) == "" {
		return "", ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[job.ID]; ok {
		s.removeLocked(job.ID)
		return model.SavedStateRemoved, nil
	}
	s.addLocked(job)
	return model.SavedStateSaved, nil
}

// Add stores a copy of job. It reports false when the id is already saved
// or empty.
func (s *Set) Add(job model.Job) bool {
	if strings.TrimSpace(job.ID) == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[job.ID]; ok {
		return false
	}
	s.addLocked(job)
	return true
}

func (s *Set) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return false
	}
	s.removeLocked(id)
	return true
}

func (s *Set) IsSaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok
}

// List returns bookmarks in the order they were saved.
func (s *Set) List() []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.order)
}

// Query filters and sorts bookmarks with the same rules as the catalog.
func (s *Set) Query(search string, key model.SortKey) []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Project(s.order, search, key, s.locale)
}

func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Set) addLocked(job model.Job) {
	s.byID[job.ID] = len(s.order)
	s.order = append(s.order, job)
}

func (s *Set) removeLocked(id string) {
	idx := s.byID[id]
	s.order = slices.Delete(s.order, idx, idx+1)
	delete(s.byID, id)
	for i := idx; i < len(s.order); i++ {
		s.byID[s.order[i].ID] = i
	}
}
