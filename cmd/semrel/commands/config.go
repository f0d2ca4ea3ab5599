package commands

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage semrel's rules configuration file",
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the resolved rules configuration file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := flagsFromViper()

		path, found := configLocation(flags)
		if !found {
			var err error
			path, err = defaultConfigPath(flags)
			if err != nil {
				return fmt.Errorf("semrel: %w", err)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("semrel: create config directory: %w", err)
			}
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		editCmd := exec.Command(editor, path)
		editCmd.Stdin = os.Stdin
		editCmd.Stdout = os.Stdout
		editCmd.Stderr = os.Stderr
		if err := editCmd.Run(); err != nil {
			return fmt.Errorf("semrel: run %s: %w", editor, err)
		}
		return nil
	},
}

// defaultConfigPath is where "config edit" creates a rules file when no
// existing candidate was found: a ".semrel.toml" in the project directory
// itself, the nearest, most specific candidate in spec §6.1's search
// order.
func defaultConfigPath(flags cmdFlags) (string, error) {
	abs, err := filepath.Abs(flags.projectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(abs, ".semrel.toml"), nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}
