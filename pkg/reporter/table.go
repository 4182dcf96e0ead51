package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/semver-release-tagger/pkg/tagger"
)

type TableReporter struct {
	// Out defaults to stdout when nil.
	Out io.Writer
}

func (r *TableReporter) Report(result *tagger.Result) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	// tags_updated stays a JSON array in every output format.
	tags, err := json.Marshal(result.TagsUpdated)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OUTPUT\tVALUE")
	fmt.Fprintln(w, "------\t-----")
	fmt.Fprintf(w, "new_version\t%s\n", result.NewVersion)
	fmt.Fprintf(w, "minor_version\t%s\n", result.MinorVersion)
	fmt.Fprintf(w, "major_version\t%s\n", result.MajorVersion)
	fmt.Fprintf(w, "previous_version\t%s\n", result.PreviousVersion)
	fmt.Fprintf(w, "tags_updated\t%s\n", tags)
	if result.ReleaseID != 0 {
		fmt.Fprintf(w, "release_id\t%d\n", result.ReleaseID)
	}
	if result.DryRun {
		fmt.Fprintln(w, "dry_run\ttrue")
	}
	return w.Flush()
}
