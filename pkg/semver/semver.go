package semver

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version. The canonical string form is "v1.2.3".
// Versions are value types and compare lexicographically on
// (Major, Minor, Patch).
type Version struct {
	Major uint64
	Minor uint64
	Patch uint64
}

// Parse attempts to read a tag name as a full semantic version tag of the
// exact shape "v<major>.<minor>.<patch>". Any other shape reports ok=false
// so callers can silently skip unrelated tags. That includes a missing "v"
// prefix, two-component forms, and prerelease or build suffixes.
func Parse(tag string) (Version, bool) {
	if !strings.HasPrefix(tag, "v") {
		return Version{}, false
	}
	parsed, err := mm.StrictNewVersion(strings.TrimPrefix(tag, "v"))
	if err != nil {
		return Version{}, false
	}
	if parsed.Prerelease() != "" || parsed.Metadata() != "" {
		return Version{}, false
	}

	v := Version{Major: parsed.Major(), Minor: parsed.Minor(), Patch: parsed.Patch()}
	// The tag must round-trip to its canonical form; anything the strict
	// parser tolerated beyond that (e.g. a dangling separator) is not a
	// version tag.
	if v.String() != tag {
		return Version{}, false
	}
	return v, true
}

// String returns the canonical full tag name, e.g. "v1.2.3".
func (v Version) String() string {
	return fmt.Sprintf("v%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// MinorAlias returns the minor alias tag name, e.g. "v1.2".
func (v Version) MinorAlias() string {
	return fmt.Sprintf("v%d.%d", v.Major, v.Minor)
}

// MajorAlias returns the major alias tag name, e.g. "v1".
func (v Version) MajorAlias() string {
	return fmt.Sprintf("v%d", v.Major)
}

// Compare returns -1 when v sorts before other, 0 when equal, 1 when after.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return order(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return order(v.Minor, other.Minor)
	}
	return order(v.Patch, other.Patch)
}

func order(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Bump returns the next version along the given axis. Lower components
// reset to zero.
func (v Version) Bump(kind BumpKind) Version {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// BumpKind selects which component of a version increments.
type BumpKind int

const (
	BumpMajor BumpKind = iota
	BumpMinor
	BumpPatch
)

// ParseBumpKind reads a bump directive from configuration. Anything other
// than "major", "minor", or "patch" is a configuration error.
func ParseBumpKind(s string) (BumpKind, error) {
	switch s {
	case "major":
		return BumpMajor, nil
	case "minor":
		return BumpMinor, nil
	case "patch":
		return BumpPatch, nil
	default:
		return 0, fmt.Errorf("invalid version bump %q (expected major, minor, or patch)", s)
	}
}

func (k BumpKind) String() string {
	switch k {
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	case BumpPatch:
		return "patch"
	default:
		return "unknown"
	}
}
