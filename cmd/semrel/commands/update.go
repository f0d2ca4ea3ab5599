package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"semrel.dev/semrel/internal/change"
	"semrel.dev/semrel/internal/semver"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Write the inferred next version into the project manifest",
	Long: `update computes the next version (from history, or from --bump
if given) and writes it into the project's manifest file, preserving the
file's existing formatting. It does not create a git commit: the printed
release-commit message is left for the caller to commit with whatever
tooling it prefers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}

		next, err := resolveNextVersion(cmd, p, flags)
		if err != nil {
			return err
		}

		if err := p.manifest.WriteVersion(p.manifestPath, next); err != nil {
			return fmt.Errorf("semrel: %w", err)
		}

		fmt.Println(releaseCommitMessage(next.String()))
		return nil
	},
}

// resolveNextVersion computes the version update.go and "show
// release-commit" both need: the forced --bump override when given,
// otherwise the result of walking and collecting history.
func resolveNextVersion(cmd *cobra.Command, p *project, flags cmdFlags) (semver.Version, error) {
	if flags.forcedBump != "" {
		bump, err := change.ParseBump(flags.forcedBump)
		if err != nil {
			return semver.Version{}, fmt.Errorf("semrel: invalid --bump: %w", err)
		}
		return p.current.Bump(bump), nil
	}
	cl, err := p.collect(cmd.Context(), flags)
	if err != nil {
		return semver.Version{}, err
	}
	return cl.NextVersion(p.ruleMap), nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
