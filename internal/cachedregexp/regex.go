// Package cachedregexp memoizes compiled regular expressions.
//
// The pbxproj and source-usage scanners build their patterns inside hot
// per-file loops, so compilation is cached process-wide by expression text.
package cachedregexp

import (
	"regexp"
	"sync"
)

var cache sync.Map

func MustCompile(exp string) *regexp.Regexp {
	compiled, ok := cache.Load(exp)
	if !ok {
		compiled, _ = cache.LoadOrStore(exp, regexp.MustCompile(exp))
	}

	return compiled.(*regexp.Regexp)
}
