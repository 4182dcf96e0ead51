package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/semver-release-tagger/pkg/semver"
)

type Config struct {
	Bump             string `yaml:"bump"`
	CreateRelease    bool   `yaml:"create_release"`
	UpdateParentTags bool   `yaml:"update_parent_tags"`
	DryRun           bool   `yaml:"-"`
	Output           string `yaml:"-"`
	Repo             string `yaml:"-"`
	Token            string `yaml:"-"`
	SHA              string `yaml:"-"`
}

func Default() *Config {
	return &Config{
		CreateRelease: true,
		Output:        "table",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func MergeFlags(cfg *Config, flags *pflag.FlagSet) *Config {
	if v, err := flags.GetString("bump"); err == nil && v != "" {
		cfg.Bump = v
	}
	if v, err := flags.GetString("repo"); err == nil && v != "" {
		cfg.Repo = v
	}
	if v, err := flags.GetString("github-token"); err == nil && v != "" {
		cfg.Token = v
	}
	if v, err := flags.GetString("sha"); err == nil && v != "" {
		cfg.SHA = v
	}
	if v, err := flags.GetString("output"); err == nil && v != "" {
		cfg.Output = v
	}
	if v, err := flags.GetBool("dry-run"); err == nil {
		cfg.DryRun = v
	}
	// Booleans with a config-file counterpart only apply when set on the
	// command line, so a file value survives the flag default.
	if flags.Changed("create-release") {
		if v, err := flags.GetBool("create-release"); err == nil {
			cfg.CreateRelease = v
		}
	}
	if flags.Changed("update-parent-tags") {
		if v, err := flags.GetBool("update-parent-tags"); err == nil {
			cfg.UpdateParentTags = v
		}
	}
	return cfg
}

// Validate rejects unusable configuration before any API client is built.
// An invalid bump value must fail the run before anything else happens.
func (c *Config) Validate() error {
	if _, err := semver.ParseBumpKind(c.Bump); err != nil {
		return err
	}
	if c.Repo == "" {
		return fmt.Errorf("repository is required (set --repo or GITHUB_REPOSITORY)")
	}
	if !c.DryRun {
		if c.Token == "" {
			return fmt.Errorf("github token is required (set --github-token or GITHUB_TOKEN)")
		}
		if c.SHA == "" {
			return fmt.Errorf("target commit is required (set --sha or GITHUB_SHA)")
		}
	}
	return nil
}
