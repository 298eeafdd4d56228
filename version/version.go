// Package version implements the name-suffix convention for versioned
// imports ("libc-1.0.0"). Validation itself matches import names exactly;
// this package exists for tooling that wants to explain near-misses or
// check whether an offered instance is a compatible upgrade of a
// requirement.
package version

import (
	"strings"

	"github.com/coreos/go-semver/semver"

	"github.com/wippyai/module-linking/linking"
)

// Parse splits an import name into its base and semver suffix.
// ok is false when the name carries no parseable version.
func Parse(name string) (base string, v *semver.Version, ok bool) {
	i := strings.LastIndexByte(name, '-')
	if i < 0 || i == len(name)-1 {
		return name, nil, false
	}
	ver, err := semver.NewVersion(name[i+1:])
	if err != nil {
		return name, nil, false
	}
	return name[:i], ver, true
}

// Compatible reports whether a definition offered under the name offered
// can stand in for the requirement named required: identical names, or the
// same base with an equal major version and an offered version no older
// than required. Minor and patch upgrades are compatible; major bumps and
// downgrades are not.
func Compatible(required, offered string) bool {
	if required == offered {
		return true
	}
	rbase, rver, rok := Parse(required)
	obase, over, ook := Parse(offered)
	if !rok || !ook || rbase != obase {
		return false
	}
	if rver.Major != over.Major {
		return false
	}
	return !over.LessThan(*rver)
}

// FindArg returns the argument satisfying importName, preferring an exact
// name match and falling back to a version-compatible one.
func FindArg(args []linking.NamedArg, importName string) (linking.NamedArg, bool) {
	for _, arg := range args {
		if arg.Name == importName {
			return arg, true
		}
	}
	for _, arg := range args {
		if Compatible(importName, arg.Name) {
			return arg, true
		}
	}
	return linking.NamedArg{}, false
}
