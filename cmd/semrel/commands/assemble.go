package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"semrel.dev/semrel/internal/changelog"
	"semrel.dev/semrel/internal/config"
	"semrel.dev/semrel/internal/gitrepo"
	"semrel.dev/semrel/internal/manifest"
	"semrel.dev/semrel/internal/rules"
	"semrel.dev/semrel/internal/semrellog"
	"semrel.dev/semrel/internal/semver"
)

// project bundles the collaborators a subcommand needs once it has
// resolved a project directory: the opened repository, the detected
// manifest, its current version, and the composed RuleMap (CLI flags,
// then the configuration file, then the built-in defaults, per spec
// §4.2's precedence order).
type project struct {
	repo         *gitrepo.Repository
	manifest     manifest.ReaderWriter
	manifestPath string
	current      semver.Version
	ruleMap      rules.RuleMap
	log          semrellog.Logger
}

// assemble resolves everything a "show" or "update" subcommand needs from
// the global --project/--rule/--config flags.
func assemble(cmd cmdFlags) (*project, error) {
	log := cmd.logger.Component("assemble")

	root, err := gitrepo.FindRoot(cmd.projectPath)
	if err != nil {
		log.Err(err, "could not locate repository root")
		return nil, fmt.Errorf("semrel: %w", err)
	}

	repo, err := gitrepo.Open(root)
	if err != nil {
		log.Err(err, "could not open repository")
		return nil, fmt.Errorf("semrel: %w", err)
	}
	log.Debugf("opened repository at %s", root)

	rw, manifestPath, err := manifest.Detect(cmd.projectPath)
	if err != nil {
		log.Err(err, "could not detect a manifest")
		return nil, fmt.Errorf("semrel: %w", err)
	}
	log.Debugf("detected manifest %s", manifestPath)

	current, _, err := rw.ReadCurrent(cmd.projectPath)
	if err != nil {
		log.Err(err, "could not read the current version")
		return nil, fmt.Errorf("semrel: %w", err)
	}

	cliRules, err := rules.ParseRuleStrings(cmd.ruleStrings)
	if err != nil {
		log.Err(err, "invalid --rule flag")
		return nil, fmt.Errorf("semrel: invalid --rule: %w", err)
	}

	configRules, err := config.Load(cmd.configPath, cmd.projectPath)
	if err != nil {
		log.Err(err, "could not load the rules configuration file")
		return nil, fmt.Errorf("semrel: %w", err)
	}

	return &project{
		repo:         repo,
		manifest:     rw,
		manifestPath: manifestPath,
		current:      current,
		ruleMap:      rules.Compose(cliRules, configRules, rules.DefaultRules),
		log:          cmd.logger,
	}, nil
}

// collect runs the walker and the streaming collector over p, rooted at
// the project subtree cmd.projectPath was resolved from.
func (p *project) collect(ctx context.Context, cmd cmdFlags) (changelog.Changelog, error) {
	log := p.log.Component("collect")

	it, err := p.repo.WalkFirstParentTopological(ctx, cmd.projectPath)
	if err != nil {
		log.Err(err, "could not start the history walk")
		return changelog.Changelog{}, fmt.Errorf("semrel: %w", err)
	}
	cl, err := changelog.Collect(ctx, it, p.repo, p.manifest, relManifestPath(p), p.current, p.ruleMap)
	if err != nil {
		log.Err(err, "commit collection failed")
		return changelog.Changelog{}, fmt.Errorf("semrel: %w", err)
	}
	log.Infof("collected %d commits since %s", len(cl.Commits), p.current)
	return cl, nil
}

// relManifestPath returns the manifest's path relative to the repository
// root, the form changelog.Collect's touched-paths comparison expects.
func relManifestPath(p *project) string {
	rel, err := filepath.Rel(p.repo.Dir(), p.manifestPath)
	if err != nil {
		return p.manifestPath
	}
	return filepath.ToSlash(rel)
}

// cmdFlags is the set of global flags every subcommand reads, bound
// through viper so they may equally be supplied as flags, environment
// variables, or (for rules) a config file's own CLI-equivalent defaults.
type cmdFlags struct {
	projectPath string
	ruleStrings []string
	forcedBump  string
	configPath  string
	logger      semrellog.Logger
}

func flagsFromViper() cmdFlags {
	return cmdFlags{
		projectPath: viper.GetString("project"),
		ruleStrings: viper.GetStringSlice("rule"),
		forcedBump:  viper.GetString("bump"),
		configPath:  viper.GetString("config"),
		logger:      semrellog.New(viper.GetString("log-level"), os.Stderr),
	}
}
