package model

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid catalog state transition")

type CatalogState string

const (
	CatalogIdle       CatalogState = "idle"
	CatalogLoading    CatalogState = "loading"
	CatalogLoaded     CatalogState = "loaded"
	CatalogLoadFailed CatalogState = "load_failed"
)

var allowedTransitions = map[CatalogState]map[CatalogState]bool{
	CatalogIdle: {
		CatalogLoading: true,
	},
	CatalogLoading: {
		CatalogLoaded:     true,
		CatalogLoadFailed: true,
	},
	CatalogLoaded: {
		CatalogLoading: true,
	},
	CatalogLoadFailed: {
		CatalogLoading: true, // manual retry
	},
}

func IsKnownCatalogState(state CatalogState) bool {
	_, ok := allowedTransitions[state]
	return ok
}

func CanTransition(from, to CatalogState) bool {
	next, ok := allowedTransitions[from]
	if !ok {
		return false
	}
	return next[to]
}

func TransitionCatalogState(state *CatalogState, to CatalogState) error {
	from := *state
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, from, to)
	}
	*state = to
	return nil
}
