package model

import (
	"errors"
	"testing"
)

func TestCanTransition_AllowsExpectedPaths(t *testing.T) {
	cases := []struct {
		from CatalogState
		to   CatalogState
	}{
		{CatalogIdle, CatalogLoading},
		{CatalogLoading, CatalogLoaded},
		{CatalogLoading, CatalogLoadFailed},
		{CatalogLoaded, CatalogLoading},
		{CatalogLoadFailed, CatalogLoading},
	}

	for _, tc := range cases {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be allowed", tc.from, tc.to)
		}
	}
}

func TestCanTransition_RejectsInvalidPaths(t *testing.T) {
	cases := []struct {
		from CatalogState
		to   CatalogState
	}{
		{CatalogIdle, CatalogLoaded},
		{CatalogIdle, CatalogLoadFailed},
		{CatalogLoading, CatalogLoading},
		{CatalogLoaded, CatalogLoadFailed},
		{CatalogLoadFailed, CatalogLoaded},
		{"not_a_state", CatalogLoading},
	}

	for _, tc := range cases {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("expected transition %q -> %q to be rejected", tc.from, tc.to)
		}
	}
}

func TestTransitionCatalogState_BlocksIllegalTransition(t *testing.T) {
	state := CatalogIdle
	err := TransitionCatalogState(&state, CatalogLoaded)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	if state != CatalogIdle {
		t.Fatalf("state changed on rejected transition: %q", state)
	}

	if err := TransitionCatalogState(&state, CatalogLoading); err != nil {
		t.Fatalf("idle -> loading: %v", err)
	}
	if state != CatalogLoading {
		t.Fatalf("expected loading, got %q", state)
	}
}

func TestIsKnownCatalogState(t *testing.T) {
	for _, s := range []CatalogState{CatalogIdle, CatalogLoading, CatalogLoaded, CatalogLoadFailed} {
		if !IsKnownCatalogState(s) {
			t.Fatalf("expected %q to be known", s)
		}
	}
	if IsKnownCatalogState("paused") {
		t.Fatal("expected paused to be unknown")
	}
}
