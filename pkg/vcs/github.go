package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

type GitHubClient struct {
	client *github.Client
	ctx    context.Context
}

func NewGitHubClient(client *github.Client) *GitHubClient {
	return &GitHubClient{
		client: client,
		ctx:    context.Background(),
	}
}

func (g *GitHubClient) ListTags(owner, repo string) ([]Tag, error) {
	var allTags []Tag
	opts := &github.ListOptions{PerPage: 100}

	for {
		tags, resp, err := g.client.Repositories.ListTags(g.ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list tags for %s/%s: %w", owner, repo, err)
		}
		for _, t := range tags {
			allTags = append(allTags, Tag{
				Name:   t.GetName(),
				Commit: t.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return allTags, nil
}

func (g *GitHubClient) CreateTag(owner, repo, name, sha string) error {
	ref := &github.Reference{
		Ref:    github.String("refs/tags/" + name),
		Object: &github.GitObject{SHA: github.String(sha)},
	}
	if _, _, err := g.client.Git.CreateRef(g.ctx, owner, repo, ref); err != nil {
		return fmt.Errorf("create tag %s in %s/%s: %w", name, owner, repo, err)
	}
	return nil
}

func (g *GitHubClient) ForceMoveTag(owner, repo, name, sha string) error {
	ref := &github.Reference{
		Ref:    github.String("refs/tags/" + name),
		Object: &github.GitObject{SHA: github.String(sha)},
	}
	_, _, err := g.client.Git.UpdateRef(g.ctx, owner, repo, ref, true)
	if err == nil {
		return nil
	}

	// Updating a ref that was never created returns 422. Fall back to
	// creating it so first runs against repositories without alias tags
	// still succeed.
	if strings.Contains(err.Error(), "422") {
		_, _, cerr := g.client.Git.CreateRef(g.ctx, owner, repo, ref)
		if cerr == nil {
			return nil
		}
		// The create is the call that actually failed; report it.
		return fmt.Errorf("force-move tag %s in %s/%s: %w", name, owner, repo, cerr)
	}
	return fmt.Errorf("force-move tag %s in %s/%s: %w", name, owner, repo, err)
}

func (g *GitHubClient) CreateRelease(owner, repo, tag, previousTag string, changelog bool) (int64, error) {
	release := &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
	}

	if changelog {
		opts := &github.GenerateNotesOptions{TagName: tag}
		if previousTag != "" {
			opts.PreviousTagName = github.String(previousTag)
		}
		notes, _, err := g.client.Repositories.GenerateReleaseNotes(g.ctx, owner, repo, opts)
		if err != nil {
			return 0, fmt.Errorf("generate release notes for %s in %s/%s: %w", tag, owner, repo, err)
		}
		release.Name = github.String(notes.Name)
		release.Body = github.String(notes.Body)
	}

	created, _, err := g.client.Repositories.CreateRelease(g.ctx, owner, repo, release)
	if err != nil {
		return 0, fmt.Errorf("create release for %s in %s/%s: %w", tag, owner, repo, err)
	}
	return created.GetID(), nil
}

func ParseGitHubRepo(repoURL string) (owner, repo string, err error) {
	repoURL = strings.TrimPrefix(repoURL, "https://")
	repoURL = strings.TrimPrefix(repoURL, "http://")
	repoURL = strings.TrimPrefix(repoURL, "github.com/")
	repoURL = strings.TrimSuffix(repoURL, ".git")
	repoURL = strings.TrimSuffix(repoURL, "/")

	parts := strings.SplitN(repoURL, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse GitHub repo from %q", repoURL)
	}
	return parts[0], parts[1], nil
}
