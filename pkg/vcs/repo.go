package vcs

// Tag is a repository tag as reported by the hosting API.
type Tag struct {
	Name   string
	Commit string
}

// RepoClient is the hosting-side collaborator for a release run: it reads
// the existing tag set and applies the planned ref and release writes.
// Errors are opaque to callers and fatal to the run; no call is retried.
type RepoClient interface {
	// ListTags returns all tags for the given repository.
	ListTags(owner, repo string) ([]Tag, error)

	// CreateTag creates a lightweight tag pointing at the given commit.
	// Creating a tag that already exists is an error.
	CreateTag(owner, repo, name, sha string) error

	// ForceMoveTag re-points an existing tag at the given commit,
	// creating it when it does not exist yet.
	ForceMoveTag(owner, repo, name, sha string) error

	// CreateRelease publishes a release for the given tag and returns its
	// ID. When changelog is true the release notes are generated from the
	// commits between previousTag and tag; an empty previousTag covers
	// the full history.
	CreateRelease(owner, repo, tag, previousTag string, changelog bool) (int64, error)
}
