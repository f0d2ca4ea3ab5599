package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"semrel.dev/semrel/internal/release"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Inspect the current project's version, history, and configuration",
}

var showCurrentCmd = &cobra.Command{
	Use:   "current",
	Short: "Print the current version recorded in the project manifest",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}
		fmt.Println(p.current.String())
		return nil
	},
}

var showNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Print the inferred next version",
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
		fmt.Println(next.String())
		return nil
	},
}

var showLogCmd = &cobra.Command{
	Use:   "log",
	Short: "List the commits collected into the pending release",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}
		cl, err := p.collect(cmd.Context(), flags)
		if err != nil {
			return err
		}
		for _, c := range cl.Commits {
			fmt.Printf("%s %-12s %s\n", c.ID.Short(), c.Parsed.Category.String(), c.Parsed.Subject.String())
			for _, tr := range c.Parsed.Trailers() {
				fmt.Printf("%s   %s\n", strings.Repeat(" ", len(c.ID.Short())), tr.String())
			}
		}
		return nil
	},
}

var showNotesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Render the pending release's Markdown release notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}
		cl, err := p.collect(cmd.Context(), flags)
		if err != nil {
			return err
		}
		fmt.Print(release.Render(cl, p.ruleMap, time.Now()))
		return nil
	},
}

var showManifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the detected manifest path and its current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}
		fmt.Printf("%s\t%s\n", p.manifestPath, p.current.String())
		return nil
	},
}

var showRulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the composed rule table (CLI, then config, then defaults)",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		p, err := assemble(flags)
		if err != nil {
			return err
		}
		for _, r := range p.ruleMap {
			fmt.Printf("%s = %s\n", r.Category.String(), r.Bump.String())
		}
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration file path, if any",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()
		path, found := configLocation(flags)
		if !found {
			fmt.Println("(no configuration file found)")
			return nil
		}
		fmt.Println(path)
		return nil
	},
}

var showReleaseCommitCmd = &cobra.Command{
	Use:   "release-commit",
	Short: "Print the Conventional Commit message semrel would use for this release",
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
		fmt.Println(releaseCommitMessage(next.String()))
		return nil
	},
}

func init() {
	showCmd.AddCommand(
		showCurrentCmd,
		showNextCmd,
		showLogCmd,
		showNotesCmd,
		showManifestCmd,
		showRulesCmd,
		showConfigCmd,
		showReleaseCommitCmd,
	)
	rootCmd.AddCommand(showCmd)
}
