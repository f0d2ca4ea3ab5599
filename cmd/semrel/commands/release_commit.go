package commands

import "fmt"

// releaseCommitCategory is the reserved Conventional Commits category
// semrel uses for its own self-generated release commits. Category.
// HasReservedPrefix (internal/conventional) omits any commit whose
// category textual form starts with this from release notes, so a
// release commit never shows up describing itself.
const releaseCommitCategory = "semrel"

// releaseCommitMessage builds the Conventional Commit message for a
// release bumping the manifest to next.
func releaseCommitMessage(next string) string {
	return fmt.Sprintf("%s(release): %s", releaseCommitCategory, next)
}
