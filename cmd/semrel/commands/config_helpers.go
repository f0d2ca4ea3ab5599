package commands

import "semrel.dev/semrel/internal/config"

// configLocation resolves which configuration file (if any) the current
// flags would load, without reading it.
func configLocation(flags cmdFlags) (path string, found bool) {
	return config.Locate(flags.configPath, flags.projectPath)
}
