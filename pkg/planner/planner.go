package planner

import "github.com/semver-release-tagger/pkg/semver"

// Action describes how a planned tag is written.
type Action string

const (
	// Create writes a new ref; it fails if the ref already exists.
	Create Action = "create"

	// ForceMove re-points an existing ref at a new commit, discarding its
	// previous target.
	ForceMove Action = "force_move"
)

// TagUpdate is a single planned ref write.
type TagUpdate struct {
	Name   string
	Action Action
}

// Plan is the ordered list of ref writes for one run. The full-version tag
// always comes first so no alias ever points where the full tag is missing.
type Plan struct {
	Updates []TagUpdate
}

// TagNames returns the tag names in plan order.
func (p Plan) TagNames() []string {
	names := make([]string, 0, len(p.Updates))
	for _, u := range p.Updates {
		names = append(names, u.Name)
	}
	return names
}

// Build produces the ref-write plan for publishing next.
//
// The full-version tag is always created and is never force-moved. When
// updateParentTags is false that is the entire plan. When true, the alias
// tags follow: an alias whose lineage starts with this bump (the minor
// alias on a minor bump, both on a major bump) is a fresh create, while an
// alias carried over from an earlier release is force-moved onto the new
// tag.
func Build(next semver.Version, kind semver.BumpKind, updateParentTags bool) Plan {
	plan := Plan{Updates: []TagUpdate{{Name: next.String(), Action: Create}}}

	if !updateParentTags {
		return plan
	}

	minorAction := ForceMove
	if kind == semver.BumpMinor || kind == semver.BumpMajor {
		minorAction = Create
	}
	majorAction := ForceMove
	if kind == semver.BumpMajor {
		majorAction = Create
	}

	plan.Updates = append(plan.Updates,
		TagUpdate{Name: next.MinorAlias(), Action: minorAction},
		TagUpdate{Name: next.MajorAlias(), Action: majorAction},
	)
	return plan
}
