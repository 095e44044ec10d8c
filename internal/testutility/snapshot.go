// Package testutility holds helpers shared by the test suites.
package testutility

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

type Snapshot struct {
	replacements map[string]string
}

// NewSnapshot creates a snapshot that can be passed around within tests
func NewSnapshot() Snapshot {
	return Snapshot{replacements: map[string]string{}}
}

// WithReplacements adds strings to replace before comparing the snapshot,
// used to scrub absolute temp-dir paths out of results.
func (s Snapshot) WithReplacements(replacements map[string]string) Snapshot {
	s.replacements = replacements

	return s
}

// MatchJSON asserts the existing snapshot matches what was gotten in the test,
// after being marshalled as JSON
func (s Snapshot) MatchJSON(t *testing.T, got any) {
	t.Helper()

	j, err := json.MarshalIndent(got, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal JSON: %s", err)
	}

	s.MatchText(t, string(j))
}

// MatchText asserts the existing snapshot matches what was gotten in the test
func (s Snapshot) MatchText(t *testing.T, got string) {
	t.Helper()

	for old, new := range s.replacements {
		got = strings.ReplaceAll(got, old, new)
	}

	snaps.MatchSnapshot(t, got)
}
