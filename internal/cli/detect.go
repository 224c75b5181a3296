package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghcommit.dev/ghcommit/internal/git"
)

// newDetectCmd creates the detect command
func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "List the changed files that push --all would commit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repoRoot, err := git.GetRepoRoot()
			if err != nil {
				return err
			}

			paths, err := git.ChangedFiles(repoRoot)
			if err != nil {
				return err
			}

			for _, path := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			return nil
		},
	}
}
