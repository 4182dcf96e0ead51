package resolver

import (
	"errors"
	"fmt"

	"github.com/semver-release-tagger/pkg/semver"
)

// ErrTagExists reports that the computed next-version tag is already
// present in the repository.
var ErrTagExists = errors.New("tag already exists")

// Resolution is the outcome of a version scan: the highest existing version
// (nil when the repository has no semantic version tags) and the version
// this run will publish.
type Resolution struct {
	Current *semver.Version
	Next    semver.Version
}

// Resolve scans the repository's tag names for the highest semantic version
// and computes its successor along the given bump axis. Tags that are not
// full version tags are skipped. A repository with no version tags gets
// v1.0.0 as its first release no matter which bump was requested.
func Resolve(tags []string, kind semver.BumpKind) Resolution {
	var current *semver.Version
	for _, tag := range tags {
		v, ok := semver.Parse(tag)
		if !ok {
			continue
		}
		if current == nil || v.Compare(*current) > 0 {
			vv := v
			current = &vv
		}
	}

	if current == nil {
		return Resolution{Next: semver.Version{Major: 1}}
	}
	return Resolution{Current: current, Next: current.Bump(kind)}
}

// Guard fails when the full-version tag for next already exists in the
// repository. It runs before any write so a colliding run never touches a
// ref. Alias names (v1, v1.2) never collide: those refs are expected to
// exist and are moved, not created.
func Guard(next semver.Version, tags []string) error {
	name := next.String()
	for _, tag := range tags {
		if tag == name {
			return fmt.Errorf("%w: %s", ErrTagExists, name)
		}
	}
	return nil
}
