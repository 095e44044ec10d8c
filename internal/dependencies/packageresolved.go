package dependencies

import (
	"os"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/tidwall/gjson"
)

// parsePackageResolved extracts dependencies from a Swift Package Manager
// Package.resolved file. Two schema shapes exist in the wild: version 2+
// has a flat "pins" array keyed by "identity", version 1 nests an
// "object.pins" array keyed by "package". Unknown or malformed JSON yields
// an empty list rather than an error.
func parsePackageResolved(path string) []Dependency {
	data, err := os.ReadFile(path)
	if err != nil {
		cmdlogger.Warnf("Failed to read %s: %v", path, err)
		return nil
	}

	if !gjson.ValidBytes(data) {
		cmdlogger.Warnf("Skipping malformed Package.resolved at %s", path)
		return nil
	}

	root := gjson.ParseBytes(data)

	if pins := root.Get("pins"); pins.IsArray() {
		return pinsToDeps(pins, "identity")
	}

	if pins := root.Get("object.pins"); pins.IsArray() {
		return pinsToDeps(pins, "package")
	}

	return nil
}

func pinsToDeps(pins gjson.Result, nameField string) []Dependency {
	var deps []Dependency

	pins.ForEach(func(_, pin gjson.Result) bool {
		name := pin.Get(nameField).String()
		if name == "" {
			return true
		}

		deps = append(deps, Dependency{
			Name:    name,
			Version: pin.Get("state.version").String(),
			Source:  SourceSPM,
		})

		return true
	})

	return deps
}
