// Package draftsmith carries the library version.
package draftsmith

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version returns the library version without a leading v.
func Version() string { return strings.TrimSpace(rawVersion) }

// VersionTag returns Version in git tag form.
func VersionTag() string { return "v" + Version() }

// VersionIsSemver reports whether the embedded version is valid SemVer.
func VersionIsSemver() bool { return IsSemver(Version()) }

// IsSemver reports whether v is a bare MAJOR.MINOR.PATCH version with
// optional pre-release and build suffixes. A leading v does not count.
func IsSemver(v string) bool {
	v = strings.TrimSpace(v)
	if i := strings.IndexByte(v, '+'); i >= 0 {
		if !validSuffix(v[i+1:]) {
			return false
		}
		v = v[:i]
	}
	if i := strings.IndexByte(v, '-'); i >= 0 {
		if !validSuffix(v[i+1:]) {
			return false
		}
		v = v[:i]
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if !validNumber(p) {
			return false
		}
	}
	return true
}

func validNumber(s string) bool {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return false
	}
	_, err := strconv.ParseUint(s, 10, 64)
	return err == nil
}

func validSuffix(s string) bool {
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			alnum := r == '-' || (r >= '0' && r <= '9') ||
				(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if !alnum {
				return false
			}
		}
	}
	return true
}
