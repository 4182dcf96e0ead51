package tagger

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semver-release-tagger/pkg/config"
	"github.com/semver-release-tagger/pkg/resolver"
	"github.com/semver-release-tagger/pkg/vcs"
)

// fakeRepo implements vcs.RepoClient, recording every write so tests can
// assert the exact call sequence.
type fakeRepo struct {
	tags          []vcs.Tag
	tagsOnRecheck []vcs.Tag // returned from the second ListTags call when set
	listErr       error
	createErr     map[string]error
	forceErr      map[string]error
	releaseErr    error
	releaseID     int64

	listCalls int
	calls     []string
}

func (f *fakeRepo) ListTags(owner, repo string) ([]vcs.Tag, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.listCalls++
	if f.listCalls > 1 && f.tagsOnRecheck != nil {
		return f.tagsOnRecheck, nil
	}
	return f.tags, nil
}

func (f *fakeRepo) CreateTag(owner, repo, name, sha string) error {
	if err := f.createErr[name]; err != nil {
		return err
	}
	f.calls = append(f.calls, fmt.Sprintf("create %s@%s", name, sha))
	return nil
}

func (f *fakeRepo) ForceMoveTag(owner, repo, name, sha string) error {
	if err := f.forceErr[name]; err != nil {
		return err
	}
	f.calls = append(f.calls, fmt.Sprintf("force-move %s@%s", name, sha))
	return nil
}

func (f *fakeRepo) CreateRelease(owner, repo, tag, previousTag string, changelog bool) (int64, error) {
	if f.releaseErr != nil {
		return 0, f.releaseErr
	}
	f.calls = append(f.calls, fmt.Sprintf("release %s prev=%s changelog=%v", tag, previousTag, changelog))
	return f.releaseID, nil
}

func tagNames(names ...string) []vcs.Tag {
	tags := make([]vcs.Tag, 0, len(names))
	for _, n := range names {
		tags = append(tags, vcs.Tag{Name: n, Commit: "0000000"})
	}
	return tags
}

func testConfig(bump string) *config.Config {
	cfg := config.Default()
	cfg.Bump = bump
	cfg.Repo = "acme/widget"
	cfg.Token = "tok"
	cfg.SHA = "abc123"
	return cfg
}

func TestRunPatchBump(t *testing.T) {
	repo := &fakeRepo{tags: tagNames("v1.0.0", "v1.1.0", "v1.1.1"), releaseID: 77}
	cfg := testConfig("patch")

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)

	assert.Equal(t, "v1.1.2", result.NewVersion)
	assert.Equal(t, "v1.1", result.MinorVersion)
	assert.Equal(t, "v1", result.MajorVersion)
	assert.Equal(t, "v1.1.1", result.PreviousVersion)
	assert.Equal(t, []string{"v1.1.2"}, result.TagsUpdated)
	assert.Equal(t, int64(77), result.ReleaseID)

	assert.Equal(t, []string{
		"create v1.1.2@abc123",
		"release v1.1.2 prev=v1.1.1 changelog=true",
	}, repo.calls)
}

func TestRunPatchBumpWithParentTags(t *testing.T) {
	repo := &fakeRepo{tags: tagNames("v1.0.0", "v1.1.0", "v1.1.1")}
	cfg := testConfig("patch")
	cfg.UpdateParentTags = true
	cfg.CreateRelease = false

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)

	assert.Equal(t, []string{"v1.1.2", "v1.1", "v1"}, result.TagsUpdated)
	assert.Equal(t, []string{
		"create v1.1.2@abc123",
		"force-move v1.1@abc123",
		"force-move v1@abc123",
	}, repo.calls)
	assert.Zero(t, result.ReleaseID)
}

func TestRunMinorBumpWithParentTags(t *testing.T) {
	repo := &fakeRepo{tags: tagNames("v1.0.0", "v1.1.0", "v1.1.1")}
	cfg := testConfig("minor")
	cfg.UpdateParentTags = true
	cfg.CreateRelease = false

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)

	assert.Equal(t, "v1.2.0", result.NewVersion)
	assert.Equal(t, []string{
		"create v1.2.0@abc123",
		"create v1.2@abc123",
		"force-move v1@abc123",
	}, repo.calls)
}

func TestRunInitialRelease(t *testing.T) {
	repo := &fakeRepo{tags: tagNames("latest", "deploy-2024")}
	cfg := testConfig("major")

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0", result.NewVersion)
	assert.Equal(t, NoPreviousVersion, result.PreviousVersion)
	// The changelog for a first release covers the full history.
	assert.Contains(t, repo.calls, "release v1.0.0 prev= changelog=true")
}

func TestRunCollision(t *testing.T) {
	// The scan saw v2.3.4 only, but by write time v2.3.5 exists (a racing
	// run published it, or the scan was incomplete). The pre-write check
	// must fail the run before any ref is touched.
	repo := &fakeRepo{
		tags:          tagNames("v2.3.4"),
		tagsOnRecheck: tagNames("v2.3.4", "v2.3.5"),
	}
	cfg := testConfig("patch")

	_, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.Error(t, err)
	assert.True(t, errors.Is(err, resolver.ErrTagExists))
	assert.Contains(t, err.Error(), "v2.3.5")
	assert.Empty(t, repo.calls, "no writes after a collision")
}

func TestRunStableTagSetNeverCollides(t *testing.T) {
	// When the scan already saw every tag, the computed next version is
	// strictly greater than all of them, so the run proceeds.
	repo := &fakeRepo{tags: tagNames("v2.3.4", "v2.3.5")}
	cfg := testConfig("patch")
	cfg.CreateRelease = false

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)
	assert.Equal(t, "v2.3.6", result.NewVersion)
	assert.Equal(t, []string{"create v2.3.6@abc123"}, repo.calls)
}

func TestRunDryRun(t *testing.T) {
	repo := &fakeRepo{tags: tagNames("v1.0.0")}
	cfg := testConfig("minor")
	cfg.DryRun = true
	cfg.UpdateParentTags = true

	result, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, "v1.1.0", result.NewVersion)
	assert.Equal(t, []string{"v1.1.0", "v1.1", "v1"}, result.TagsUpdated)
	assert.Empty(t, repo.calls, "dry run must not write anything")
}

func TestRunInvalidBump(t *testing.T) {
	repo := &fakeRepo{}
	cfg := testConfig("huge")

	_, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version bump")
	assert.Empty(t, repo.calls)
}

func TestRunListError(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("boom")}
	cfg := testConfig("patch")

	_, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list tags")
}

func TestRunAbortsMidPlan(t *testing.T) {
	repo := &fakeRepo{
		tags:     tagNames("v1.0.0", "v1.1.0", "v1.1.1"),
		forceErr: map[string]error{"v1.1": errors.New("ref conflict")},
	}
	cfg := testConfig("patch")
	cfg.UpdateParentTags = true

	_, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply tag v1.1")

	// The full tag made it through before the failing alias; it stays.
	assert.Equal(t, []string{"create v1.1.2@abc123"}, repo.calls)
}

func TestRunReleaseError(t *testing.T) {
	repo := &fakeRepo{
		tags:       tagNames("v1.0.0"),
		releaseErr: errors.New("denied"),
	}
	cfg := testConfig("patch")

	_, err := New(repo, cfg).Run("acme", "widget", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create release")
	assert.Equal(t, []string{"create v1.0.1@abc123"}, repo.calls)
}
