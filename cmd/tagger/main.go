package main

import (
	"fmt"
	"os"

	"github.com/google/go-github/v60/github"
	"github.com/spf13/cobra"

	"github.com/semver-release-tagger/pkg/config"
	"github.com/semver-release-tagger/pkg/reporter"
	"github.com/semver-release-tagger/pkg/tagger"
	"github.com/semver-release-tagger/pkg/vcs"
)

var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "semver-release-tagger",
		Short:   "Compute the next semantic version and publish its tags",
		Long:    `Scans a repository's tags for the highest semantic version, bumps it, creates the new version tag (plus optional parent alias tags like v1 and v1.2), and optionally publishes a release with generated notes.`,
		Version: fmt.Sprintf("%s (%s)", version, commit),
		RunE:    run,
	}

	rootCmd.Flags().String("bump", "", "Version bump to apply: major | minor | patch")
	rootCmd.Flags().String("repo", os.Getenv("GITHUB_REPOSITORY"), "GitHub repo (owner/repo) to tag")
	rootCmd.Flags().String("github-token", os.Getenv("GITHUB_TOKEN"), "GitHub token for API access")
	rootCmd.Flags().String("sha", os.Getenv("GITHUB_SHA"), "Commit SHA the new tags point at")
	rootCmd.Flags().Bool("dry-run", false, "Compute and report the plan without writing tags or releases")
	rootCmd.Flags().Bool("create-release", true, "Create a GitHub release for the new version tag")
	rootCmd.Flags().Bool("update-parent-tags", false, "Also create or move the major/minor alias tags (v1, v1.2)")
	rootCmd.Flags().String("output", "table", "Output format: json | table | actions")
	rootCmd.Flags().String("config", ".semver-tagger.yml", "Path to config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(2)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if cmd.Flags().Changed("config") {
			fmt.Fprintf(os.Stderr, "warning: could not load config file: %v (using defaults)\n", err)
		}
		cfg = config.Default()
	}

	cfg = config.MergeFlags(cfg, cmd.Flags())

	if err := cfg.Validate(); err != nil {
		return err
	}

	owner, repo, err := vcs.ParseGitHubRepo(cfg.Repo)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Println("dry-run mode: no tags or releases will be created")
	}

	client := github.NewClient(nil)
	if cfg.Token != "" {
		client = client.WithAuthToken(cfg.Token)
	}

	result, err := tagger.New(vcs.NewGitHubClient(client), cfg).Run(owner, repo, cfg.SHA)
	if err != nil {
		return err
	}

	return reporter.New(cfg.Output).Report(result)
}
