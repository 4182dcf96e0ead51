package reporter

import (
	"encoding/json"
	"io"
	"os"

	"github.com/semver-release-tagger/pkg/tagger"
)

type JSONReporter struct {
	// Out defaults to stdout when nil.
	Out io.Writer
}

func (r *JSONReporter) Report(result *tagger.Result) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
