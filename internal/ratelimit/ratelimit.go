// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ratelimit turns Capacities rate-limit response headers into the
// delay applied between consecutive API calls.
package ratelimit

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Rate-limit header fields. http.Header.Get matches them case-insensitively.
const (
	RemainingHeader = "RateLimit-Remaining"
	ResetHeader     = "RateLimit-Reset"
)

// State is the throttle input parsed from one response.
type State struct {
	// Remaining is the call count left in the current window. Defaults to 1
	// when the header is absent or malformed, so a response without headers
	// never looks like an exhausted window.
	Remaining int

	// ResetSeconds is the delay until the window resets. Defaults to the
	// configured fallback.
	ResetSeconds int
}

// Exhausted reports whether the window has no calls left.
func (s State) Exhausted() bool { return s.Remaining <= 0 }

// FromHeader parses h into a State, substituting fallbackSeconds for an
// absent or malformed reset header.
func FromHeader(h http.Header, fallbackSeconds int) State {
	return State{
		Remaining:    intHeader(h, RemainingHeader, 1),
		ResetSeconds: intHeader(h, ResetHeader, fallbackSeconds),
	}
}

func intHeader(h http.Header, name string, def int) int {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Delay computes the sleep applied after a call: max(reset, fallback) once
// the window is exhausted, exactly the fallback otherwise. The throttle
// always sleeps at least the fallback, whether or not the limit was hit.
func Delay(remaining, resetSeconds, fallbackSeconds int) time.Duration {
	wait := fallbackSeconds
	if remaining <= 0 && resetSeconds > wait {
		wait = resetSeconds
	}
	return time.Duration(wait) * time.Second
}

// Wait sleeps for d, returning ctx.Err() if the context is cancelled first.
// A non-positive d returns immediately.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
