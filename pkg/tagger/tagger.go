// Package tagger orchestrates one release run: scan the repository's tags,
// compute the next version, plan the ref writes, apply them, and publish
// the release.
//
// Writes are applied in plan order and the first failure aborts the run.
// A failure after the full-version tag is created leaves the applied refs
// in place; there is no compensating rollback. The next run simply bumps
// from the tag that made it through.
package tagger

import (
	"fmt"

	"github.com/semver-release-tagger/pkg/config"
	"github.com/semver-release-tagger/pkg/planner"
	"github.com/semver-release-tagger/pkg/resolver"
	"github.com/semver-release-tagger/pkg/semver"
	"github.com/semver-release-tagger/pkg/vcs"
)

// NoPreviousVersion marks a run against a repository that had no semantic
// version tags.
const NoPreviousVersion = "none"

// Result is the outcome of one run, consumed by the reporters.
type Result struct {
	NewVersion      string   `json:"new_version"`
	MinorVersion    string   `json:"minor_version"`
	MajorVersion    string   `json:"major_version"`
	PreviousVersion string   `json:"previous_version"`
	TagsUpdated     []string `json:"tags_updated"`
	ReleaseID       int64    `json:"release_id,omitempty"`
	DryRun          bool     `json:"dry_run"`
}

type Tagger struct {
	repo vcs.RepoClient
	cfg  *config.Config
}

func New(repo vcs.RepoClient, cfg *config.Config) *Tagger {
	return &Tagger{
		repo: repo,
		cfg:  cfg,
	}
}

// Run executes one release against owner/repo, with sha as the target
// commit for every ref write. In dry-run mode the tag list is still read
// and the plan computed, but nothing is written.
func (t *Tagger) Run(owner, repo, sha string) (*Result, error) {
	kind, err := semver.ParseBumpKind(t.cfg.Bump)
	if err != nil {
		return nil, err
	}

	tags, err := t.repo.ListTags(owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}

	res := resolver.Resolve(names, kind)
	if err := resolver.Guard(res.Next, names); err != nil {
		return nil, err
	}

	plan := planner.Build(res.Next, kind, t.cfg.UpdateParentTags)

	result := &Result{
		NewVersion:      res.Next.String(),
		MinorVersion:    res.Next.MinorAlias(),
		MajorVersion:    res.Next.MajorAlias(),
		PreviousVersion: NoPreviousVersion,
		TagsUpdated:     plan.TagNames(),
		DryRun:          t.cfg.DryRun,
	}
	previousTag := ""
	if res.Current != nil {
		previousTag = res.Current.String()
		result.PreviousVersion = previousTag
	}

	if t.cfg.DryRun {
		return result, nil
	}

	// The tag namespace may have moved since the scan: a racing run may
	// have published, or the scan may have seen an incomplete set. Re-read
	// it so the collision check covers the state the writes land on.
	fresh, err := t.repo.ListTags(owner, repo)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	freshNames := make([]string, 0, len(fresh))
	for _, tag := range fresh {
		freshNames = append(freshNames, tag.Name)
	}
	if err := resolver.Guard(res.Next, freshNames); err != nil {
		return nil, err
	}

	for _, update := range plan.Updates {
		switch update.Action {
		case planner.Create:
			err = t.repo.CreateTag(owner, repo, update.Name, sha)
		case planner.ForceMove:
			err = t.repo.ForceMoveTag(owner, repo, update.Name, sha)
		}
		if err != nil {
			return nil, fmt.Errorf("apply tag %s: %w", update.Name, err)
		}
	}

	if t.cfg.CreateRelease {
		id, err := t.repo.CreateRelease(owner, repo, res.Next.String(), previousTag, true)
		if err != nil {
			return nil, fmt.Errorf("create release: %w", err)
		}
		result.ReleaseID = id
	}

	return result, nil
}
