package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/semver-release-tagger/pkg/tagger"
)

// ActionsReporter writes outputs as the key=value lines GitHub Actions
// reads from the file named by $GITHUB_OUTPUT. When the variable is unset
// the lines go to stdout so local runs stay inspectable.
type ActionsReporter struct{}

func (r *ActionsReporter) Report(result *tagger.Result) error {
	if path := os.Getenv("GITHUB_OUTPUT"); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return writeActionOutputs(f, result)
	}
	return writeActionOutputs(os.Stdout, result)
}

func writeActionOutputs(w io.Writer, result *tagger.Result) error {
	tags, err := json.Marshal(result.TagsUpdated)
	if err != nil {
		return err
	}

	lines := []string{
		"new_version=" + result.NewVersion,
		"minor_version=" + result.MinorVersion,
		"major_version=" + result.MajorVersion,
		"previous_version=" + result.PreviousVersion,
		"tags_updated=" + string(tags),
	}
	if result.ReleaseID != 0 {
		lines = append(lines, fmt.Sprintf("release_id=%d", result.ReleaseID))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
