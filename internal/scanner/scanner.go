// Package scanner orchestrates a scan: project discovery, context
// construction, rule selection, and evaluation.
package scanner

import (
	"slices"
	"time"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/dependencies"
	"github.com/apptriage/apptriage/internal/discovery"
	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

// Options are the per-invocation inputs to a scan. There is no persisted
// configuration beyond these.
type Options struct {
	// Path is the file or directory to analyze.
	Path string

	// Rules, when non-empty, is the explicit include list of rule IDs.
	Rules []string

	// Exclude lists rule IDs to skip.
	Exclude []string

	// Registry overrides the built-in rule set, primarily for tests.
	Registry *rules.Registry
}

// Result is the terminal artifact of a scan, consumed only by formatters
// and the protocol adapter.
type Result struct {
	ProjectPath        string                    `json:"project_path"`
	ScopeDir           string                    `json:"scope_dir"`
	Findings           []rules.Finding           `json:"findings"`
	RulesRun           []string                  `json:"rules_run"`
	Dependencies       []dependencies.Dependency `json:"dependencies"`
	SourceFilesScanned int                       `json:"source_files_scanned"`
	Duration           time.Duration             `json:"duration_ns"`
	Timestamp          time.Time                 `json:"timestamp"`
}

// Scan runs the selected rules against the project at opts.Path.
//
// Rule selection is validated before any filesystem work so a typo fails
// fast. Each rule reads the same immutable context; evaluation happens to
// run sequentially here, but nothing depends on the order.
func Scan(opts Options) (*Result, error) {
	registry := opts.Registry
	if registry == nil {
		registry = rules.NewRegistry()
	}

	selected, err := selectRules(registry, opts.Rules, opts.Exclude)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	proj, err := discovery.Locate(opts.Path)
	if err != nil {
		return nil, err
	}

	cmdlogger.Debugf("Scanning %s (scope %s)", proj.Path, proj.ScopeDir)

	deps := dependencies.Load(proj)
	usage := sourcescan.Detect(proj.ScopeDir)
	ctx := scancontext.Build(proj, deps, usage)

	result := &Result{
		ProjectPath:        proj.Path,
		ScopeDir:           proj.ScopeDir,
		Findings:           []rules.Finding{},
		Dependencies:       deps,
		SourceFilesScanned: usage.FilesScanned(),
		Timestamp:          start,
	}

	for _, rule := range selected {
		result.Findings = append(result.Findings, rule.Evaluate(ctx)...)
		result.RulesRun = append(result.RulesRun, rule.ID())
	}

	result.Duration = time.Since(start)

	return result, nil
}

// selectRules resolves the include/exclude lists against the registry.
func selectRules(registry *rules.Registry, include, exclude []string) ([]rules.Rule, error) {
	var unknown []string
	for _, id := range include {
		if _, ok := registry.Lookup(id); !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return nil, &InvalidRulesError{UnknownIDs: unknown, AvailableIDs: registry.IDs()}
	}

	var selected []rules.Rule
	for _, rule := range registry.All() {
		if len(include) > 0 && !slices.Contains(include, rule.ID()) {
			continue
		}
		if slices.Contains(exclude, rule.ID()) {
			continue
		}
		selected = append(selected, rule)
	}

	if len(selected) == 0 {
		return nil, &NoRulesError{}
	}

	return selected, nil
}
