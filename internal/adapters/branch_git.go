package adapters

import (
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"monorel/internal/ports"
	"monorel/internal/shared"
)

// GitBranchAdapter shells out to git to read the checked-out branch.
// Git history itself stays an external collaborator; this adapter only
// answers "which branch am I recording against".
type GitBranchAdapter struct{}

func NewGitBranchAdapter() GitBranchAdapter {
	return GitBranchAdapter{}
}

func (a GitBranchAdapter) CurrentBranch(root string) (string, error) {
	cmd := exec.Command("git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = root
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read current git branch").
			WithCause(shared.CommandError(output, err))
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.BranchPort = GitBranchAdapter{}
