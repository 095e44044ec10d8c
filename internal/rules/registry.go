package rules

import (
	"fmt"
	"sort"
)

// Registry is an append-only set of rules keyed by ID. It is built
// explicitly via NewRegistry rather than at package load, so tests can
// compose reduced or extended rule sets without hidden global state.
type Registry struct {
	rules []Rule
	byID  map[string]Rule
}

// NewRegistry returns a registry holding every built-in rule.
func NewRegistry() *Registry {
	r := &Registry{byID: map[string]Rule{}}

	for _, rule := range []Rule{
		newCameraRule(),
		newMicrophoneRule(),
		newPhotoLibraryRule(),
		newLocationRule(),
		newSpeechRule(),
		newBluetoothRule(),
		newTrackingRule(),
		newSignInWithAppleRule(),
		newBackgroundModesRule(),
		newEncryptionRule(),
		newLaunchScreenRule(),
		newOrientationRule(),
	} {
		if err := r.Register(rule); err != nil {
			// Built-in IDs are fixed at compile time; a collision here is a
			// programming error, not an input error.
			panic(err)
		}
	}

	return r
}

// Register adds a rule, rejecting duplicate IDs.
func (r *Registry) Register(rule Rule) error {
	if _, exists := r.byID[rule.ID()]; exists {
		return fmt.Errorf("rule %q is already registered", rule.ID())
	}

	r.byID[rule.ID()] = rule
	r.rules = append(r.rules, rule)

	return nil
}

// All returns the registered rules in registration order.
func (r *Registry) All() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)

	return out
}

// Lookup returns the rule with the given ID.
func (r *Registry) Lookup(id string) (Rule, bool) {
	rule, ok := r.byID[id]

	return rule, ok
}

// IDs returns every registered rule ID, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.rules))
	for _, rule := range r.rules {
		ids = append(ids, rule.ID())
	}
	sort.Strings(ids)

	return ids
}
