// Package cli wires the cobra commands for the ghcommit binary.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"ghcommit.dev/ghcommit/internal/github"
)

// NewRootCmd creates the root cobra command
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ghcommit",
		Short: "Commit files to a GitHub branch through the API, producing signed commits",
		Long: `ghcommit commits local file changes to a GitHub branch using the REST API
instead of a local git push. Because the commit objects are created
server-side, GitHub signs them with its own key, so the result can satisfy
branch-protection rulesets that require signed commits.`,
		SilenceUsage: true,
	}

	// Ambient repo/branch resolution is injected here so commands below
	// never read environment or git state directly.
	resolver := github.ResolveDefaults

	rootCmd.AddCommand(newPushCmd(resolver))
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}

// newVersionCmd creates the version command
func newVersionCmd(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ghcommit %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
