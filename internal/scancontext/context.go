// Package scancontext assembles the read-only aggregate every rule
// evaluates against.
//
// The Context is built once per scan and never mutated afterwards; that
// immutability is the concurrency-safety boundary that lets rules run in
// any order, or concurrently, without synchronization.
package scancontext

import (
	"strings"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/dependencies"
	"github.com/apptriage/apptriage/internal/discovery"
	"github.com/apptriage/apptriage/internal/plist"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

// Context exposes plist, entitlement, build-setting, framework, and
// dependency lookups plus target-classification predicates. All accessors
// are read-only.
type Context struct {
	proj *discovery.Project

	infoPlist     plist.Value
	entitlements  plist.Value
	buildSettings map[string]string
	infoPlistKeys map[string]string
	generates     bool
	productType   string

	frameworks map[string]bool
	deps       []dependencies.Dependency
	depNames   map[string]bool

	usage *sourcescan.Evidence
}

// Build constructs the Context from the discovery, dependency, and source
// evidence stages. Unreadable or malformed artifacts degrade to empty
// values with a warning; reporting on missing configuration is the entire
// point of the tool, so absence is never fatal here.
func Build(proj *discovery.Project, deps []dependencies.Dependency, usage *sourcescan.Evidence) *Context {
	ctx := &Context{
		proj:          proj,
		infoPlist:     plist.Absent,
		entitlements:  plist.Absent,
		buildSettings: map[string]string{},
		infoPlistKeys: map[string]string{},
		frameworks:    map[string]bool{},
		deps:          deps,
		depNames:      map[string]bool{},
		usage:         usage,
	}

	if proj.InfoPlistPath != "" {
		value, err := plist.Load(proj.InfoPlistPath)
		if err != nil {
			cmdlogger.Warnf("Failed to parse %s: %v", proj.InfoPlistPath, err)
		} else {
			ctx.infoPlist = value
		}
	}

	if proj.EntitlementsPath != "" {
		value, err := plist.Load(proj.EntitlementsPath)
		if err != nil {
			cmdlogger.Warnf("Failed to parse %s: %v", proj.EntitlementsPath, err)
		} else {
			ctx.entitlements = value
		}
	}

	if proj.Pbx != nil {
		ctx.buildSettings = proj.Pbx.BuildSettings
		ctx.infoPlistKeys = proj.Pbx.InfoPlistKeys
		ctx.generates = proj.Pbx.GeneratesInfoPlist
		ctx.productType = proj.Pbx.ProductType

		for _, name := range proj.Pbx.LinkedFrameworks {
			ctx.frameworks[strings.ToLower(name)] = true
		}
	}

	for _, dep := range deps {
		ctx.depNames[strings.ToLower(dep.Name)] = true
	}

	return ctx
}

// PlistValue looks up an Info.plist key. A literal plist value always
// shadows the INFOPLIST_KEY_* build-setting equivalent, because the
// generated-plist build step performs the same substitution.
func (c *Context) PlistValue(key string) plist.Value {
	if v := c.infoPlist.Get(key); v.Present() {
		return v
	}

	if c.generates {
		if raw, ok := c.infoPlistKeys[key]; ok {
			return plist.String(raw)
		}
	}

	return plist.Absent
}

// EntitlementValue looks up a key in the entitlements file.
func (c *Context) EntitlementValue(key string) plist.Value {
	return c.entitlements.Get(key)
}

// BuildSetting returns the named setting from the first build
// configuration block.
func (c *Context) BuildSetting(name string) (string, bool) {
	v, ok := c.buildSettings[name]

	return v, ok
}

// HasFramework reports whether the project links the named framework,
// matched case-insensitively.
func (c *Context) HasFramework(name string) bool {
	return c.frameworks[strings.ToLower(name)]
}

// HasDependency reports whether the named package is a dependency, at
// either base or subspec granularity.
func (c *Context) HasDependency(name string) bool {
	return c.depNames[strings.ToLower(name)]
}

// DependenciesMatching returns dependencies whose name contains the given
// fragment, case-insensitively.
func (c *Context) DependenciesMatching(fragment string) []dependencies.Dependency {
	fragment = strings.ToLower(fragment)

	var matched []dependencies.Dependency
	for _, dep := range c.deps {
		if strings.Contains(strings.ToLower(dep.Name), fragment) {
			matched = append(matched, dep)
		}
	}

	return matched
}

// Dependencies returns all loaded dependencies.
func (c *Context) Dependencies() []dependencies.Dependency { return c.deps }

// Usage returns the source usage evidence for this scan.
func (c *Context) Usage() *sourcescan.Evidence { return c.usage }

// InfoPlistPath returns the resolved Info.plist path, or "" when the
// project has none (for example when the plist is generated).
func (c *Context) InfoPlistPath() string { return c.proj.InfoPlistPath }

// EntitlementsPath returns the resolved entitlements path, or "".
func (c *Context) EntitlementsPath() string { return c.proj.EntitlementsPath }

// ProjectPath returns the canonical project path for this scan.
func (c *Context) ProjectPath() string { return c.proj.Path }

// ScopeDir returns the directory bounding this scan.
func (c *Context) ScopeDir() string { return c.proj.ScopeDir }

// GeneratesInfoPlist reports whether the project synthesizes its Info.plist
// from build settings.
func (c *Context) GeneratesInfoPlist() bool { return c.generates }

// IsExtension reports whether the analyzed target is an app extension.
// App-only checks (launch screen, orientations, encryption flag) are
// suppressed for extensions.
func (c *Context) IsExtension() bool {
	if c.infoPlist.Get("NSExtension").Present() || c.infoPlist.Get("NSExtensionPointIdentifier").Present() {
		return true
	}

	return strings.Contains(c.productType, "app-extension")
}

// IsFrameworkTarget reports whether the analyzed target builds a framework
// rather than an application.
func (c *Context) IsFrameworkTarget() bool {
	if pkgType, ok := c.infoPlist.Get("CFBundlePackageType").AsString(); ok && pkgType == "FMWK" {
		return true
	}

	return strings.Contains(c.productType, "product-type.framework")
}
