// Command semrel infers the next semantic version from a project's
// Conventional Commits history and reports the corresponding release
// notes.
package main

import "semrel.dev/semrel/cmd/semrel/commands"

func main() {
	commands.Execute()
}
