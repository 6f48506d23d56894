// Package model defines the request-scoped value objects shared across the
// validation pipeline. All entities are created fresh per validation call and
// never mutated after construction.
package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Verdict is the final recommendation for an idea.
type Verdict string

const (
	VerdictYes     Verdict = "YES"
	VerdictNo      Verdict = "NO"
	VerdictMaybe   Verdict = "MAYBE"
	VerdictUnclear Verdict = "UNCLEAR"
)

// MinIdeaLength is the minimum trimmed length of an accepted idea.
const MinIdeaLength = 10

// ErrIdeaTooShort is returned for idea text under MinIdeaLength characters.
var ErrIdeaTooShort = eris.New("model: idea text must be at least 10 characters")

// ValidateIdea rejects idea text that is too short to research. It runs
// before any network call is attempted.
func ValidateIdea(idea string) error {
	if len(strings.TrimSpace(idea)) < MinIdeaLength {
		return ErrIdeaTooShort
	}
	return nil
}

// NormalizeIdea lower-cases and trims idea text for use as a cache key.
func NormalizeIdea(idea string) string {
	return strings.ToLower(strings.TrimSpace(idea))
}
