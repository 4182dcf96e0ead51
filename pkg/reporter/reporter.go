package reporter

import (
	"github.com/semver-release-tagger/pkg/tagger"
)

type Reporter interface {
	Report(result *tagger.Result) error
}

func New(format string) Reporter {
	switch format {
	case "json":
		return &JSONReporter{}
	case "actions":
		return &ActionsReporter{}
	default:
		return &TableReporter{}
	}
}
