package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"ghcommit.dev/ghcommit/internal/commit"
	"ghcommit.dev/ghcommit/internal/config"
	"ghcommit.dev/ghcommit/internal/files"
	"ghcommit.dev/ghcommit/internal/git"
	"ghcommit.dev/ghcommit/internal/github"
	"ghcommit.dev/ghcommit/internal/output"
)

// newPushCmd creates the push command
func newPushCmd(resolver github.DefaultsResolver) *cobra.Command {
	var (
		owner   string
		repo    string
		branch  string
		message string
		baseSHA string
		all     bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "push [files...]",
		Short: "Commit files to a branch via the GitHub API",
		Long: `Commit the given files (or directories, which are expanded recursively) to
a branch. With --all, the files are auto-detected from the working tree
instead of being listed on the command line.

The branch is updated fast-forward only: if someone else pushes between base
resolution and the ref update, the push fails instead of overwriting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !all {
				return fmt.Errorf("no files given: pass file paths or use --all")
			}
			if len(args) > 0 && all {
				return fmt.Errorf("cannot combine file arguments with --all")
			}

			ctx := cmd.Context()
			splog, err := output.NewSplogWithLogFile(os.Getenv("GHCOMMIT_LOG_FILE"))
			if err != nil {
				return err
			}
			defer splog.Close()

			// Expand the file list before anything touches the network
			var paths []string
			if all {
				repoRoot, err := git.GetRepoRoot()
				if err != nil {
					return err
				}
				paths, err = git.ChangedFiles(repoRoot)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no changed files in working tree")
				}
			} else {
				paths, err = files.ExpandPaths(args)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no files found under the given paths")
				}
			}

			info, branchName, err := resolveTarget(cmd, resolver, owner, repo, branch)
			if err != nil {
				return err
			}

			if !yes && output.IsTTY() {
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Commit %d file(s) to %s/%s@%s?", len(paths), info.Owner, info.Repo, branchName),
					Default: true,
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return fmt.Errorf("canceled")
				}
				if !confirmed {
					splog.Info("Aborted.")
					return nil
				}
			}

			client, err := github.NewRealClient(ctx, info)
			if err != nil {
				return err
			}

			splog.Debug("committing %d files to %s/%s@%s", len(paths), info.Owner, info.Repo, branchName)

			result, err := commit.Commit(ctx, client, commit.Options{
				Owner:    info.Owner,
				Repo:     info.Repo,
				Branch:   branchName,
				Message:  message,
				Files:    paths,
				BaseSHA:  baseSHA,
				Progress: output.NewUploadProgress(splog),
			})
			if err != nil {
				return err
			}

			splog.Info("%s Committed %d file(s) to %s (%s)",
				output.ColorGreen("✓"),
				result.FileCount,
				output.ColorBranch(branchName),
				output.ColorSHA(result.CommitSHA))

			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner. Defaults to the GITHUB_REPOSITORY env or the origin remote")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name. Defaults to the GITHUB_REPOSITORY env or the origin remote")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "Branch to commit to. Defaults to GITHUB_REF_NAME or the configured branch")
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVar(&baseSHA, "base", "", "Base commit SHA to parent on, skipping branch resolution")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Commit all changed files in the working tree")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}

// resolveTarget combines explicit flags with the injected ambient defaults
// and, for the branch, the repo config fallback.
func resolveTarget(cmd *cobra.Command, resolver github.DefaultsResolver, owner, repo, branch string) (*github.RepoInfo, string, error) {
	var defaults *github.Defaults
	if owner == "" || repo == "" || branch == "" {
		resolved, err := resolver(cmd.Context())
		if err != nil && (owner == "" || repo == "") {
			return nil, "", fmt.Errorf("cannot determine repository: %w (use --owner and --repo)", err)
		}
		defaults = resolved
	}

	info := &github.RepoInfo{Hostname: "github.com", Owner: owner, Repo: repo}
	if defaults != nil && defaults.Repo != nil {
		if info.Owner == "" {
			info.Owner = defaults.Repo.Owner
		}
		if info.Repo == "" {
			info.Repo = defaults.Repo.Repo
		}
		if defaults.Repo.Hostname != "" {
			info.Hostname = defaults.Repo.Hostname
		}
	}
	if info.Owner == "" || info.Repo == "" {
		return nil, "", fmt.Errorf("cannot determine repository: use --owner and --repo")
	}

	if branch == "" && defaults != nil {
		branch = defaults.Branch
	}
	if branch == "" {
		if repoRoot, err := git.GetRepoRoot(); err == nil {
			branch, _ = config.GetBranch(repoRoot)
		}
	}
	if branch == "" {
		return nil, "", fmt.Errorf("cannot determine branch: use --branch")
	}

	return info, branch, nil
}
